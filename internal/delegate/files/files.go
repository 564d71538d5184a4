// Package files implements the find-file picker delegate: fuzzy matching
// over an indexed directory tree, with history-based recency boosting.
package files

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomfield/quickpick/internal/history"
	"github.com/atomfield/quickpick/internal/index"
	"github.com/atomfield/quickpick/internal/logging"
	"github.com/atomfield/quickpick/internal/match"
	"github.com/atomfield/quickpick/internal/theme"
)

var styles = theme.Default()

// Delegate matches file paths beneath an index root. Match state is
// guarded because UpdateMatches replaces it from the settle task's
// goroutine while the UI goroutine keeps reading.
type Delegate struct {
	index   *index.Index
	history *history.Store

	mu       sync.Mutex
	seq      uint64
	query    string
	matches  []string
	selected int
	recency  map[string]int64
	chosen   string
}

// New constructs the delegate. The history store may be nil, in which
// case picks are neither boosted nor recorded.
func New(ix *index.Index, store *history.Store) *Delegate {
	d := &Delegate{
		index:   ix,
		history: store,
		recency: map[string]int64{},
	}
	if store != nil {
		recency, err := store.Recency()
		if err != nil {
			logging.Error(err)
		} else {
			d.recency = recency
		}
	}
	return d
}

func (d *Delegate) MatchCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.matches)
}

func (d *Delegate) SelectedIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

func (d *Delegate) SetSelectedIndex(ix int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = ix
}

// UpdateMatches ranks the current index snapshot against query. Ranking
// runs inside the returned command so large trees never block the UI
// goroutine. Each call claims a sequence number; a task that finds a newer
// claim when it finishes discards its result, so overlapping updates
// converge on the latest query no matter which task completes last.
func (d *Delegate) UpdateMatches(query string) tea.Cmd {
	snapshot := d.index.Snapshot()

	d.mu.Lock()
	d.seq++
	seq := d.seq
	var anchor string
	if query == d.query && d.selected >= 0 && d.selected < len(d.matches) {
		// Same query means the candidates changed underneath us; keep
		// the selection on its path across the re-rank.
		anchor = d.matches[d.selected]
	}
	d.query = query
	d.mu.Unlock()

	return func() tea.Msg {
		matches := d.rank(snapshot, query)
		selected := 0
		if anchor != "" {
			if ix := match.BestIndex(matches, anchor); ix >= 0 {
				selected = ix
			}
		}
		d.mu.Lock()
		if seq == d.seq {
			d.matches = matches
			d.selected = selected
		}
		d.mu.Unlock()
		return nil
	}
}

type scoredPath struct {
	path     string
	distance int
	picked   int64
	order    int
}

// rank orders by fuzzy distance, breaking ties in favour of recently
// picked paths. With an empty query every distance is zero, so the list
// degrades to recent-first, then alphabetical.
func (d *Delegate) rank(snapshot []string, query string) []string {
	d.mu.Lock()
	recency := d.recency
	d.mu.Unlock()

	ranked := match.Rank(snapshot, query)
	scored := make([]scoredPath, 0, len(ranked))
	for order, r := range ranked {
		path := snapshot[r.Index]
		scored = append(scored, scoredPath{
			path:     path,
			distance: r.Distance,
			picked:   recency[path],
			order:    order,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].distance != scored[j].distance {
			return scored[i].distance < scored[j].distance
		}
		if scored[i].picked != scored[j].picked {
			return scored[i].picked > scored[j].picked
		}
		return scored[i].order < scored[j].order
	})
	matches := make([]string, len(scored))
	for i, s := range scored {
		matches[i] = s.path
	}
	return matches
}

// Confirm records the pick and quits. The secondary action additionally
// copies the absolute path to the clipboard.
func (d *Delegate) Confirm(secondary bool) tea.Cmd {
	d.mu.Lock()
	if len(d.matches) == 0 || d.selected < 0 || d.selected >= len(d.matches) {
		d.mu.Unlock()
		return nil
	}
	path := d.matches[d.selected]
	d.chosen = path
	d.mu.Unlock()

	if d.history != nil {
		if err := d.history.Record(path); err != nil {
			logging.Error(err)
		}
	}

	root := d.index.Root()
	return func() tea.Msg {
		if secondary {
			if err := clipboard.WriteAll(filepath.Join(root, path)); err != nil {
				logging.Error(err)
			}
		}
		return tea.Quit()
	}
}

func (d *Delegate) Dismissed() tea.Cmd {
	return tea.Quit
}

func (d *Delegate) RenderMatch(ix int, selected bool, width int) string {
	d.mu.Lock()
	var path string
	if ix >= 0 && ix < len(d.matches) {
		path = d.matches[ix]
	}
	picked := d.recency[path] > 0
	d.mu.Unlock()

	indicator := "▌"
	indicatorStyle := styles.ItemIndicator
	lineStyle := styles.Item
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := " " + path
	if picked {
		text += " •"
	}
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

// Result returns the confirmed path, relative to the index root.
func (d *Delegate) Result() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.chosen == "" {
		return "", false
	}
	return d.chosen, true
}
