package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// View renders the query input, a match counter, and the visible slice of
// the result list. RenderMatch is only invoked for rows inside the
// viewport.
func (p *Picker) View() string {
	count := p.delegate.MatchCount()

	lines := make([]string, 0, 16)
	lines = append(lines, p.fitLine(p.input.View()))
	lines = append(lines, p.fitLine(p.counterLine(count)))

	if count == 0 {
		msg := "(no matches)"
		if query := p.input.Value(); query != "" {
			msg = fmt.Sprintf("No matches for %q", query)
		}
		if styles.Placeholder != nil {
			msg = styles.Placeholder.Render(msg)
		}
		lines = append(lines, p.fitLine(msg))
	} else {
		start := 0
		end := count
		if max := p.visibleRows(); max > 0 && count > max {
			start = p.offset
			if start < 0 {
				start = 0
			}
			if start+max > count {
				start = count - max
				p.offset = start
			}
			end = start + max
		}
		selected := p.delegate.SelectedIndex()
		for ix := start; ix < end; ix++ {
			row := p.delegate.RenderMatch(ix, ix == selected, p.width)
			lines = append(lines, p.fitLine(row))
		}
	}

	if p.status != "" {
		status := p.status
		if styles.Status != nil {
			status = styles.Status.Render(status)
		}
		lines = append(lines, p.fitLine(status))
	}
	if p.showFooter {
		footer := "↑/↓ move  enter confirm  alt+enter alt action  esc cancel"
		if styles.Footer != nil {
			footer = styles.Footer.Render(footer)
		}
		lines = append(lines, p.fitLine(footer))
	}
	return strings.Join(lines, "\n")
}

func (p *Picker) counterLine(count int) string {
	noun := "matches"
	if count == 1 {
		noun = "match"
	}
	text := fmt.Sprintf("%d %s", count, noun)
	if styles.Counter != nil {
		text = styles.Counter.Render(text)
	}
	if p.pending {
		suffix := "updating…"
		if styles.Pending != nil {
			suffix = styles.Pending.Render(suffix)
		}
		text += " " + suffix
	}
	return text
}

// fitLine truncates a rendered line to the picker width. Rows may carry
// ANSI styling, so measurement and truncation are both escape-aware.
func (p *Picker) fitLine(line string) string {
	if p.width <= 0 {
		return line
	}
	if lipgloss.Width(line) <= p.width {
		return line
	}
	return truncate.StringWithTail(line, uint(p.width-1), "…")
}
