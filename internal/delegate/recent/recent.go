// Package recent implements a picker delegate over the pick history,
// newest first.
package recent

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomfield/quickpick/internal/history"
	"github.com/atomfield/quickpick/internal/logging"
	"github.com/atomfield/quickpick/internal/match"
	"github.com/atomfield/quickpick/internal/theme"
)

var styles = theme.Default()

// entryLimit bounds how much history one picker invocation loads.
const entryLimit = 500

// Delegate filters remembered picks. Entries are re-read from the store
// on every query change so confirmations elsewhere show up immediately.
type Delegate struct {
	store    *history.Store
	entries  []history.Entry
	matches  []int
	selected int
	chosen   string
}

// New constructs the delegate and loads the initial entry list.
func New(store *history.Store) *Delegate {
	d := &Delegate{store: store}
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

func (d *Delegate) UpdateMatches(query string) tea.Cmd {
	d.applyQuery(query)
	return nil
}

func (d *Delegate) applyQuery(query string) {
	entries, err := d.store.Recent(entryLimit)
	if err != nil {
		logging.Error(err)
	} else {
		d.entries = entries
	}
	paths := make([]string, len(d.entries))
	for i, e := range d.entries {
		paths[i] = e.Path
	}
	// Filter keeps the entry order, so matches stay newest first instead
	// of reshuffling by fuzzy distance.
	d.matches = match.Filter(paths, query)
	d.selected = 0
}

func (d *Delegate) Confirm(secondary bool) tea.Cmd {
	entry, ok := d.current()
	if !ok {
		return nil
	}
	d.chosen = entry.Path
	if err := d.store.Record(entry.Path); err != nil {
		logging.Error(err)
	}
	return tea.Quit
}

func (d *Delegate) Dismissed() tea.Cmd {
	return tea.Quit
}

func (d *Delegate) RenderMatch(ix int, selected bool, width int) string {
	entry, ok := d.at(ix)
	if !ok {
		return ""
	}
	indicator := "▌"
	indicatorStyle := styles.ItemIndicator
	lineStyle := styles.Item
	detailStyle := styles.ItemDetail
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
		detailStyle = styles.SelectedItem
	}
	detail := fmt.Sprintf(" ×%d", entry.Count)
	text := " " + entry.Path
	if width > 0 {
		if pad := width - len([]rune(indicator+text+detail)); pad > 0 {
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
	if detailStyle != nil {
		detail = detailStyle.Render(detail)
	}
	return head + text + detail
}

// Result returns the confirmed path.
func (d *Delegate) Result() (string, bool) {
	if d.chosen == "" {
		return "", false
	}
	return d.chosen, true
}

func (d *Delegate) current() (history.Entry, bool) {
	return d.at(d.selected)
}

func (d *Delegate) at(ix int) (history.Entry, bool) {
	if ix < 0 || ix >= len(d.matches) {
		return history.Entry{}, false
	}
	ei := d.matches[ix]
	if ei < 0 || ei >= len(d.entries) {
		return history.Entry{}, false
	}
	return d.entries[ei], true
}
