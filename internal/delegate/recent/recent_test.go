package recent

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomfield/quickpick/internal/history"
)

func newTestDelegate(t *testing.T) (*Delegate, *history.Store) {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, p := range []string{"old.go", "mid.go", "new.go"} {
		if err := store.Record(p); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	return New(store), store
}

func TestNewListsHistory(t *testing.T) {
	d, _ := newTestDelegate(t)
	if d.MatchCount() != 3 {
		t.Fatalf("expected 3 matches, got %d", d.MatchCount())
	}
}

func TestUpdateMatchesSeesNewPicks(t *testing.T) {
	d, store := newTestDelegate(t)

	if err := store.Record("fresh.go"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if task := d.UpdateMatches(""); task != nil {
		t.Fatalf("expected synchronous settle")
	}
	if d.MatchCount() != 4 {
		t.Fatalf("expected 4 matches after new pick, got %d", d.MatchCount())
	}
}

func TestUpdateMatchesFilters(t *testing.T) {
	d, _ := newTestDelegate(t)

	d.UpdateMatches("mid")
	if d.MatchCount() != 1 {
		t.Fatalf("expected 1 match for mid, got %d", d.MatchCount())
	}
	if row := d.RenderMatch(0, false, 40); !strings.Contains(row, "mid.go") {
		t.Fatalf("expected mid.go in row, got %q", row)
	}
}

func TestFilteredMatchesKeepRecencyOrder(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	// go.md is the tighter fuzzy match for "go"; the nested path is the
	// more recent pick and must still come first.
	if err := store.Record("go.md"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.Record("deep/nested/main.go"); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	d := New(store)
	d.UpdateMatches("go")
	if d.MatchCount() != 2 {
		t.Fatalf("expected 2 matches, got %d", d.MatchCount())
	}
	if row := d.RenderMatch(0, false, 60); !strings.Contains(row, "deep/nested/main.go") {
		t.Fatalf("expected the most recent pick first, got %q", row)
	}
}

func TestConfirmReRecordsPick(t *testing.T) {
	d, store := newTestDelegate(t)

	d.UpdateMatches("old")
	cmd := d.Confirm(false)
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
	chosen, ok := d.Result()
	if !ok || chosen != "old.go" {
		t.Fatalf("expected old.go confirmed, got %q", chosen)
	}

	entries, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "old.go" {
		t.Fatalf("expected old.go to be most recent again, got %v", entries)
	}
	if entries[0].Count != 2 {
		t.Fatalf("expected count bumped to 2, got %d", entries[0].Count)
	}
}

func TestConfirmWithNoMatchesIsNoOp(t *testing.T) {
	d, _ := newTestDelegate(t)

	d.UpdateMatches("zzz")
	if cmd := d.Confirm(false); cmd != nil {
		t.Fatalf("expected nil command")
	}
}
