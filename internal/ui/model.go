// Package ui assembles the picker and the background file index into the
// root Bubble Tea model.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomfield/quickpick/internal/index"
	"github.com/atomfield/quickpick/internal/logging"
	"github.com/atomfield/quickpick/internal/picker"
)

// indexEventMsg carries one index-change notification into the update loop.
type indexEventMsg struct {
	event index.Event
	ok    bool
}

// Model routes terminal input to the picker and re-runs the match pipeline
// whenever the index reports a change.
type Model struct {
	picker *picker.Picker
	events <-chan index.Event
}

// New builds the root model. events may be nil when the active delegate has
// no backing index.
func New(p *picker.Picker, events <-chan index.Event) *Model {
	return &Model{picker: p, events: events}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.picker.Init(), m.waitForIndexEvent())
}

// waitForIndexEvent blocks on the index channel and surfaces the next
// notification as a message.
func (m *Model) waitForIndexEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-m.events
		return indexEventMsg{event: evt, ok: ok}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case indexEventMsg:
		if !msg.ok {
			// Index stopped; nothing further to wait for.
			return m, nil
		}
		if msg.event.Err != nil {
			logging.Error(msg.event.Err)
			return m, m.waitForIndexEvent()
		}
		return m, tea.Batch(m.picker.Refresh(), m.waitForIndexEvent())
	}
	cmd := m.picker.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	return m.picker.View()
}

// Picker exposes the wrapped picker for post-run inspection.
func (m *Model) Picker() *picker.Picker {
	return m.picker
}
