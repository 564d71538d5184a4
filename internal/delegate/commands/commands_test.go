package commands

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomfield/quickpick/internal/picker"
)

type ranMsg struct{ id string }

func newTestRegistry() *Registry {
	return NewRegistry(
		Command{ID: "history:clear", Title: "history: clear picks", Detail: "forget every remembered pick", Run: func() tea.Msg { return ranMsg{id: "history:clear"} }},
		Command{ID: "trace:enable", Title: "tracing: enable", Detail: "write JSON trace entries", Run: func() tea.Msg { return ranMsg{id: "trace:enable"} }},
		Command{ID: "quit", Title: "quit", Detail: "close the picker", Run: func() tea.Msg { return tea.Quit() }},
	)
}

func TestNewMatchesEverything(t *testing.T) {
	d := New(newTestRegistry())
	if d.MatchCount() != 3 {
		t.Fatalf("expected 3 matches, got %d", d.MatchCount())
	}
}

func TestUpdateMatchesIsSynchronous(t *testing.T) {
	d := New(newTestRegistry())
	if task := d.UpdateMatches("trace"); task != nil {
		t.Fatalf("expected synchronous settle, got a task")
	}
	if d.MatchCount() != 1 {
		t.Fatalf("expected 1 match for trace, got %d", d.MatchCount())
	}
	if d.SelectedIndex() != 0 {
		t.Fatalf("expected selection reset, got %d", d.SelectedIndex())
	}
}

func TestConfirmRunsSelectedCommand(t *testing.T) {
	d := New(newTestRegistry())
	d.UpdateMatches("history")

	cmd := d.Confirm(false)
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg, ok := cmd().(ranMsg)
	if !ok || msg.id != "history:clear" {
		t.Fatalf("expected history:clear to run, got %#v", msg)
	}
}

func TestSecondaryConfirmShowsDetail(t *testing.T) {
	d := New(newTestRegistry())
	d.UpdateMatches("quit")

	cmd := d.Confirm(true)
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	status, ok := cmd().(picker.StatusMsg)
	if !ok || status.Text != "close the picker" {
		t.Fatalf("expected detail status, got %#v", status)
	}
}

func TestConfirmWithNoMatchesIsNoOp(t *testing.T) {
	d := New(newTestRegistry())
	d.UpdateMatches("zzz")
	if d.MatchCount() != 0 {
		t.Fatalf("expected no matches")
	}
	if cmd := d.Confirm(false); cmd != nil {
		t.Fatalf("expected nil command")
	}
}

func TestRenderMatchShowsTitle(t *testing.T) {
	d := New(newTestRegistry())
	d.UpdateMatches("quit")
	if row := d.RenderMatch(0, true, 40); !strings.Contains(row, "quit") {
		t.Fatalf("expected title in row, got %q", row)
	}
}

func TestRegistryFind(t *testing.T) {
	r := newTestRegistry()
	if _, ok := r.Find("quit"); !ok {
		t.Fatalf("expected to find quit")
	}
	if _, ok := r.Find("missing"); ok {
		t.Fatalf("expected missing command to be absent")
	}
}
