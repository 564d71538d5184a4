package picker

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomfield/quickpick/internal/logging/events"
	"github.com/atomfield/quickpick/internal/theme"
)

var styles = theme.Default()

// Delegate owns the match set, the selection cursor, and row rendering.
// A Picker holds exactly one Delegate for its whole lifetime.
type Delegate interface {
	// MatchCount reports the current number of matches.
	MatchCount() int
	// SelectedIndex reports the selection cursor. Only meaningful while
	// MatchCount is positive.
	SelectedIndex() int
	// SetSelectedIndex moves the selection cursor. Callers pass an index
	// in [0, MatchCount) whenever MatchCount is positive.
	SetSelectedIndex(ix int)
	// UpdateMatches starts recomputing the match set for query. The
	// returned command blocks until the computation settles; the delegate
	// updates its own MatchCount and SelectedIndex as a side effect, at
	// its own pace, so intermediate states may already be visible to
	// reads. A nil return means the matches settled synchronously.
	UpdateMatches(query string) tea.Cmd
	// Confirm accepts the current selection. secondary selects the
	// delegate's alternate action.
	Confirm(secondary bool) tea.Cmd
	// Dismissed reports that the user cancelled the picker.
	Dismissed() tea.Cmd
	// RenderMatch produces the row for match ix. It is only called for
	// indices inside the currently visible range.
	RenderMatch(ix int, selected bool, width int) string
}

// StatusMsg replaces the status row beneath the result list.
type StatusMsg struct {
	Text string
}

// RefreshMsg asks the picker to re-run the match pipeline with its current
// query, typically because the data the delegate matches against changed.
type RefreshMsg struct{}

type matchesSettledMsg struct {
	generation uint64
}

// Picker coordinates a query input, a delegate-owned match set, and a
// virtualized result list.
type Picker struct {
	delegate Delegate
	input    textinput.Model

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	offset     int
	generation uint64
	pending    bool
	closed     bool
	status     string
}

// New constructs a Picker around the supplied delegate. Zero width or
// height mean "track the terminal size".
func New(delegate Delegate, width, height int, showFooter bool) *Picker {
	ti := textinput.New()
	ti.Prompt = "» "
	if styles.Prompt != nil {
		ti.PromptStyle = *styles.Prompt
	}
	if styles.Query != nil {
		ti.TextStyle = *styles.Query
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = *styles.Placeholder
	}
	ti.Placeholder = "type to search"
	ti.Focus()

	p := &Picker{
		delegate:   delegate,
		input:      ti,
		showFooter: showFooter,
	}
	if width > 0 {
		p.width = width
		p.fixedWidth = true
	}
	if height > 0 {
		p.height = height
		p.fixedHeight = true
	}
	return p
}

// Init starts cursor blinking and runs the first match update so the
// delegate populates before any typing happens.
func (p *Picker) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, p.Refresh())
}

// Focus gives keyboard focus to the query input.
func (p *Picker) Focus() tea.Cmd {
	return p.input.Focus()
}

// Close marks the picker as torn down. Settle messages arriving afterwards
// are discarded instead of refreshing a dead view.
func (p *Picker) Close() {
	p.closed = true
}

// Closed reports whether Close has been called.
func (p *Picker) Closed() bool {
	return p.closed
}

// Query returns the current query text.
func (p *Picker) Query() string {
	return p.input.Value()
}

// SetQuery replaces the query text and runs the match pipeline, as if the
// user had edited the input.
func (p *Picker) SetQuery(query string) tea.Cmd {
	p.input.SetValue(query)
	p.input.CursorEnd()
	return p.updateMatches(query)
}

// Refresh re-runs the match pipeline with the current query text.
func (p *Picker) Refresh() tea.Cmd {
	return p.updateMatches(p.input.Value())
}

// Update responds to Bubble Tea messages.
func (p *Picker) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !p.fixedWidth {
			p.width = msg.Width
		}
		if !p.fixedHeight {
			p.height = msg.Height
		}
		p.input.Width = p.width - len([]rune(p.input.Prompt)) - 1
		if p.delegate.MatchCount() > 0 {
			p.scrollTo(p.delegate.SelectedIndex())
		}
		return nil
	case StatusMsg:
		p.status = msg.Text
		return nil
	case RefreshMsg:
		return p.Refresh()
	case matchesSettledMsg:
		return p.handleSettled(msg)
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *Picker) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return p.Cancel()
	case "enter":
		return p.Confirm()
	case "alt+enter":
		return p.SecondaryConfirm()
	case "up", "ctrl+p":
		p.SelectPrev()
		return nil
	case "down", "ctrl+n":
		p.SelectNext()
		return nil
	case "home":
		p.SelectFirst()
		return nil
	case "end":
		p.SelectLast()
		return nil
	case "pgup":
		p.PageUp()
		return nil
	case "pgdown":
		p.PageDown()
		return nil
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if query := p.input.Value(); query != before {
		return tea.Batch(cmd, p.updateMatches(query))
	}
	return cmd
}

// SelectNext advances the selection cursor, saturating at the last match.
func (p *Picker) SelectNext() {
	count := p.delegate.MatchCount()
	if count == 0 {
		return
	}
	ix := p.delegate.SelectedIndex() + 1
	if ix > count-1 {
		ix = count - 1
	}
	p.setSelected(ix)
}

// SelectPrev moves the selection cursor back, saturating at zero.
func (p *Picker) SelectPrev() {
	count := p.delegate.MatchCount()
	if count == 0 {
		return
	}
	ix := p.delegate.SelectedIndex() - 1
	if ix < 0 {
		ix = 0
	}
	p.setSelected(ix)
}

// SelectFirst moves the selection cursor to the first match.
func (p *Picker) SelectFirst() {
	if p.delegate.MatchCount() == 0 {
		return
	}
	p.setSelected(0)
}

// SelectLast moves the selection cursor to the last match.
func (p *Picker) SelectLast() {
	count := p.delegate.MatchCount()
	if count == 0 {
		return
	}
	p.setSelected(count - 1)
}

// PageUp moves the selection cursor up by one visible page.
func (p *Picker) PageUp() {
	p.moveSelectionBy(-p.pageSize())
}

// PageDown moves the selection cursor down by one visible page.
func (p *Picker) PageDown() {
	p.moveSelectionBy(p.pageSize())
}

func (p *Picker) moveSelectionBy(delta int) {
	count := p.delegate.MatchCount()
	if count == 0 || delta == 0 {
		return
	}
	ix := p.delegate.SelectedIndex() + delta
	if ix < 0 {
		ix = 0
	}
	if ix > count-1 {
		ix = count - 1
	}
	p.setSelected(ix)
}

func (p *Picker) setSelected(ix int) {
	p.delegate.SetSelectedIndex(ix)
	p.scrollTo(ix)
	events.Picker.Cursor(ix)
}

// Confirm forwards acceptance of the current selection to the delegate.
func (p *Picker) Confirm() tea.Cmd {
	events.Picker.Confirm(false, p.delegate.SelectedIndex())
	return p.delegate.Confirm(false)
}

// SecondaryConfirm forwards the delegate's alternate confirmation action.
func (p *Picker) SecondaryConfirm() tea.Cmd {
	events.Picker.Confirm(true, p.delegate.SelectedIndex())
	return p.delegate.Confirm(true)
}

// Cancel forwards dismissal to the delegate.
func (p *Picker) Cancel() tea.Cmd {
	events.Picker.Dismiss()
	return p.delegate.Dismissed()
}

// updateMatches runs the query-change pipeline: start the delegate's
// recomputation, refresh immediately with whatever state the delegate
// exposes right now, then register the new update generation. The refresh
// always happens before the generation's settle command can resolve.
func (p *Picker) updateMatches(query string) tea.Cmd {
	p.generation++
	gen := p.generation
	events.Query.Changed(query, gen)

	task := p.delegate.UpdateMatches(query)
	p.matchesUpdated()
	if task == nil {
		// Matches settled synchronously; the refresh above was final.
		return nil
	}
	p.pending = true
	return func() tea.Msg {
		task()
		return matchesSettledMsg{generation: gen}
	}
}

func (p *Picker) handleSettled(msg matchesSettledMsg) tea.Cmd {
	if p.closed {
		events.Query.Dropped(msg.generation)
		return nil
	}
	if msg.generation != p.generation {
		// A newer update superseded this one; its own settle message
		// will perform the refresh.
		events.Query.Stale(msg.generation, p.generation)
		return nil
	}
	events.Query.Settled(msg.generation)
	p.matchesUpdated()
	return nil
}

// matchesUpdated re-anchors the scroll position on the delegate's current
// selection and clears the pending-update slot.
func (p *Picker) matchesUpdated() {
	p.pending = false
	p.scrollTo(p.delegate.SelectedIndex())
}
