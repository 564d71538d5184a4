package picker

import "github.com/atomfield/quickpick/internal/logging/events"

// scrollTo requests that match ix be visible, adjusting the viewport
// offset as little as possible.
func (p *Picker) scrollTo(ix int) {
	count := p.delegate.MatchCount()
	if count == 0 {
		p.offset = 0
		return
	}
	if ix < 0 {
		ix = 0
	}
	if ix >= count {
		ix = count - 1
	}
	max := p.visibleRows()
	if max <= 0 {
		p.offset = 0
		return
	}
	maxOffset := count - max
	if maxOffset < 0 {
		maxOffset = 0
	}
	if p.offset > maxOffset {
		p.offset = maxOffset
	}
	if p.offset < 0 {
		p.offset = 0
	}
	if ix < p.offset {
		p.offset = ix
	}
	if upper := p.offset + max - 1; ix > upper {
		p.offset = ix - max + 1
		if p.offset < 0 {
			p.offset = 0
		}
		if p.offset > maxOffset {
			p.offset = maxOffset
		}
	}
	events.Picker.Scroll(p.offset)
}

// visibleRows returns how many result rows fit in the current height.
// Returns -1 when no height is known, which disables virtualization.
func (p *Picker) visibleRows() int {
	if p.height <= 0 {
		return -1
	}
	used := 2 // query input + match counter
	if p.status != "" {
		used++
	}
	if p.showFooter {
		used++
	}
	remain := p.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

// pageSize returns the step used by PageUp/PageDown.
func (p *Picker) pageSize() int {
	total := p.delegate.MatchCount()
	if total == 0 {
		return 0
	}
	size := p.visibleRows()
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}
