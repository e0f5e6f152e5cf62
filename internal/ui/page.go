package ui

import (
	"fmt"

	"storedash/internal/ui/scroll"
	"storedash/internal/ui/vlist"
)

// wheelLines is how far one mouse wheel notch scrolls
const wheelLines = 3

// pageView is the part of a list page the model drives without knowing the
// item type
type pageView interface {
	Resize(width, height int)
	Navigate(direction string)
	Scroll(lines int)
	Len() int
	Cursor() int
	View() string
	Position() string
	Invalidate()
	Close()
}

// listPage couples a scroll pane with the windowed list rendered in it
type listPage[T vlist.Keyed] struct {
	pane *scroll.Pane
	list *vlist.List[T]
}

func newListPage[T vlist.Keyed](rowHeight, overscan int, render vlist.RowFunc[T]) (*listPage[T], error) {
	list, err := vlist.New(vlist.Options[T]{
		RowHeight: rowHeight,
		Overscan:  overscan,
		Render:    render,
		Scrollbar: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	pane := scroll.NewPane()
	list.Mount(pane)
	return &listPage[T]{pane: pane, list: list}, nil
}

// SetItems replaces the rows; the pane re-clamps if the content shrank
func (p *listPage[T]) SetItems(items []T) {
	p.list.SetItems(items)
	p.list.EnsureVisible(p.list.Cursor())
}

func (p *listPage[T]) Selected() (T, bool) {
	return p.list.Selected()
}

func (p *listPage[T]) Resize(width, height int) {
	// one column is kept for the scrollbar
	p.list.SetWidth(max(0, width-1))
	p.pane.Resize(max(1, height))
	p.list.EnsureVisible(p.list.Cursor())
}

func (p *listPage[T]) Navigate(direction string) {
	switch direction {
	case "up":
		p.list.MoveCursor(-1)
	case "down":
		p.list.MoveCursor(1)
	case "pageup":
		p.list.MoveCursor(-p.list.PageRows())
	case "pagedown":
		p.list.MoveCursor(p.list.PageRows())
	case "home":
		p.list.SetCursor(0)
	case "end":
		p.list.SetCursor(p.list.Len() - 1)
	}
}

// Scroll moves the viewport and drags the cursor along when it would
// otherwise leave the screen
func (p *listPage[T]) Scroll(lines int) {
	p.pane.ScrollBy(lines)

	rowHeight := p.list.Config().RowHeight
	vp := p.list.Viewport()
	first := (vp.ScrollOffset + rowHeight - 1) / rowHeight
	last := (vp.ScrollOffset+vp.Height)/rowHeight - 1
	if last < first {
		last = first
	}
	cursor := p.list.Cursor()
	switch {
	case cursor < first:
		p.list.SetCursor(first)
	case cursor > last:
		p.list.SetCursor(last)
	}
}

func (p *listPage[T]) Len() int {
	return p.list.Len()
}

func (p *listPage[T]) Cursor() int {
	return p.list.Cursor()
}

func (p *listPage[T]) View() string {
	return p.list.View()
}

// Position describes the cursor and the materialized window
func (p *listPage[T]) Position() string {
	n := p.list.Len()
	if n == 0 {
		return "0 items"
	}
	w := p.list.Window()
	return fmt.Sprintf("%d/%d  rows %d-%d", p.list.Cursor()+1, n, w.Start+1, w.End)
}

func (p *listPage[T]) Invalidate() {
	p.list.Invalidate()
}

// Close detaches the list before the pane goes away
func (p *listPage[T]) Close() {
	p.list.Unmount()
	p.pane.Unmount()
}
