package picker

import (
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives a Picker programmatically for tests, executing returned
// commands until the message stream drains.
type Harness struct {
	picker *Picker
}

// NewHarness creates a harness for the provided picker. The input cursor is
// switched to static mode so executing commands synchronously cannot loop on
// self-perpetuating blink messages.
func NewHarness(p *Picker) *Harness {
	if p != nil {
		p.input.Cursor.SetMode(cursor.CursorStatic)
	}
	return &Harness{picker: p}
}

// Send routes a message through the picker and executes any returned
// commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.picker == nil {
		return
	}
	h.processCmd(h.picker.Update(msg))
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	for cmd != nil {
		switch c := cmd().(type) {
		case nil:
			return
		case tea.BatchMsg:
			for _, sub := range c {
				h.processCmd(sub)
			}
			return
		default:
			cmd = h.picker.Update(c)
		}
	}
}

// Type simulates typing the given text into the query input.
func (h *Harness) Type(text string) {
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.picker == nil {
		return ""
	}
	return h.picker.View()
}

// Picker exposes the underlying picker.
func (h *Harness) Picker() *Picker {
	return h.picker
}
