// Package commands implements the find-command picker delegate: a command
// palette over a flat registry of named application actions.
package commands

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomfield/quickpick/internal/match"
	"github.com/atomfield/quickpick/internal/picker"
	"github.com/atomfield/quickpick/internal/theme"
)

var styles = theme.Default()

// Command is one palette entry. Run produces the message delivered when
// the entry is confirmed.
type Command struct {
	ID     string
	Title  string
	Detail string
	Run    func() tea.Msg
}

// Registry holds palette entries in a stable display order.
type Registry struct {
	commands []Command
}

// NewRegistry builds a registry from the given commands.
func NewRegistry(cmds ...Command) *Registry {
	return &Registry{commands: append([]Command(nil), cmds...)}
}

// Commands returns the registered commands in order.
func (r *Registry) Commands() []Command {
	return r.commands
}

// Find locates a command by ID.
func (r *Registry) Find(id string) (Command, bool) {
	for _, c := range r.commands {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// Delegate matches registry titles. All matching is synchronous; the
// registry is small and fixed.
type Delegate struct {
	registry *Registry
	matches  []int
	selected int
}

// New constructs the delegate with every command matching initially.
func New(registry *Registry) *Delegate {
	d := &Delegate{registry: registry}
	d.applyQuery("")
	return d
}

func (d *Delegate) MatchCount() int {
	return len(d.matches)
}

func (d *Delegate) SelectedIndex() int {
	return d.selected
}

func (d *Delegate) SetSelectedIndex(ix int) {
	d.selected = ix
}

// UpdateMatches filters synchronously, so no settle task is returned.
func (d *Delegate) UpdateMatches(query string) tea.Cmd {
	d.applyQuery(query)
	return nil
}

func (d *Delegate) applyQuery(query string) {
	cmds := d.registry.Commands()
	titles := make([]string, len(cmds))
	for i, c := range cmds {
		titles[i] = c.Title
	}
	ranked := match.Rank(titles, query)
	d.matches = make([]int, len(ranked))
	for i, r := range ranked {
		d.matches[i] = r.Index
	}
	d.selected = 0
}

// Confirm runs the selected command. The secondary action shows the
// command's detail text instead of running it.
func (d *Delegate) Confirm(secondary bool) tea.Cmd {
	cmd, ok := d.current()
	if !ok {
		return nil
	}
	if secondary {
		return func() tea.Msg {
			return picker.StatusMsg{Text: cmd.Detail}
		}
	}
	run := cmd.Run
	if run == nil {
		return nil
	}
	return func() tea.Msg {
		return run()
	}
}

func (d *Delegate) Dismissed() tea.Cmd {
	return tea.Quit
}

func (d *Delegate) RenderMatch(ix int, selected bool, width int) string {
	cmd, ok := d.at(ix)
	if !ok {
		return ""
	}
	indicator := "▌"
	indicatorStyle := styles.ItemIndicator
	lineStyle := styles.Item
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := " " + cmd.Title
	if width > 0 {
		if pad := width - len([]rune(indicator+text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	head := indicator
	if indicatorStyle != nil {
		head = indicatorStyle.Render(head)
	}
	if lineStyle != nil {
		text = lineStyle.Render(text)
	}
	return head + text
}

func (d *Delegate) current() (Command, bool) {
	return d.at(d.selected)
}

func (d *Delegate) at(ix int) (Command, bool) {
	if ix < 0 || ix >= len(d.matches) {
		return Command{}, false
	}
	ri := d.matches[ix]
	cmds := d.registry.Commands()
	if ri < 0 || ri >= len(cmds) {
		return Command{}, false
	}
	return cmds[ri], true
}
