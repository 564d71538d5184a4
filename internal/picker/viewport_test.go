package picker

import "testing"

func TestVisibleRowsReservesChrome(t *testing.T) {
	d := &fakeDelegate{count: 10}
	p := New(d, 80, 10, false)

	if rows := p.visibleRows(); rows != 8 {
		t.Fatalf("expected 8 visible rows, got %d", rows)
	}
	p.status = "note"
	if rows := p.visibleRows(); rows != 7 {
		t.Fatalf("expected 7 visible rows with status, got %d", rows)
	}
	p.showFooter = true
	if rows := p.visibleRows(); rows != 6 {
		t.Fatalf("expected 6 visible rows with footer, got %d", rows)
	}
}

func TestVisibleRowsUnboundedWithoutHeight(t *testing.T) {
	d := &fakeDelegate{count: 10}
	p := New(d, 0, 0, false)

	if rows := p.visibleRows(); rows != -1 {
		t.Fatalf("expected -1 for unknown height, got %d", rows)
	}
}

func TestVisibleRowsNeverBelowOne(t *testing.T) {
	d := &fakeDelegate{count: 10}
	p := New(d, 80, 2, true)

	if rows := p.visibleRows(); rows != 1 {
		t.Fatalf("expected at least one row, got %d", rows)
	}
}

func TestPageSizeClampsToMatchCount(t *testing.T) {
	d := &fakeDelegate{count: 3}
	p := New(d, 80, 24, false)

	if size := p.pageSize(); size != 3 {
		t.Fatalf("expected page size clamped to 3, got %d", size)
	}
	d.count = 0
	if size := p.pageSize(); size != 0 {
		t.Fatalf("expected page size 0 for empty set, got %d", size)
	}
}

func TestPageDownMovesByVisibleRows(t *testing.T) {
	d := &fakeDelegate{count: 100, selected: 0}
	p := New(d, 80, 12, false) // 10 visible rows

	p.PageDown()
	if d.selected != 10 {
		t.Fatalf("expected selection 10 after PageDown, got %d", d.selected)
	}
	p.PageUp()
	if d.selected != 0 {
		t.Fatalf("expected selection 0 after PageUp, got %d", d.selected)
	}
	p.PageUp()
	if d.selected != 0 {
		t.Fatalf("expected PageUp to saturate at 0, got %d", d.selected)
	}
}

func TestScrollToClampsOffsetAfterShrink(t *testing.T) {
	d := &fakeDelegate{count: 100, selected: 0}
	p := New(d, 80, 6, false)
	p.setSelected(90)

	// The match set shrank underneath the viewport.
	d.count = 5
	d.selected = 4
	p.scrollTo(d.selected)
	if p.offset != 1 {
		t.Fatalf("expected offset clamped to 1, got %d", p.offset)
	}
}
