// Package vlist renders long collections by materializing only the rows
// that intersect the scroll viewport, plus a few rows of overscan.
package vlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"storedash/internal/ui/scroll"
	"storedash/internal/window"
)

// Keyed items expose a stable identity used for row caching
type Keyed interface {
	Key() string
}

// RowFunc renders one item. It must return the same output for the same
// arguments because rows are re-created as the window slides.
type RowFunc[T Keyed] func(item T, index int, selected bool) string

// Options configures a List
type Options[T Keyed] struct {
	RowHeight int
	Overscan  int // negative selects window.DefaultOverscan; 0 with multi-line rows is raised to 1
	Width     int // 0 leaves row width unconstrained
	Render    RowFunc[T]
	Scrollbar bool
}

// Row is a materialized item positioned inside the full-height content
type Row struct {
	Key   string
	Index int
	Top   int
	Lines []string
}

// List is the windowed renderer
type List[T Keyed] struct {
	cfg       window.Config
	width     int
	render    RowFunc[T]
	scrollbar bool

	items  []T
	cursor int

	container scroll.Scrollable
	handle    *scroll.Handle
	viewport  window.Viewport
	win       window.Window

	cache *rowCache
}

// New builds a list. A non-positive row height or a missing row template
// is a programming error and is reported immediately.
func New[T Keyed](opts Options[T]) (*List[T], error) {
	overscan := opts.Overscan
	if overscan < 0 {
		overscan = window.DefaultOverscan
	}
	if overscan == 0 && opts.RowHeight > 1 {
		// A scroll offset inside a row leaves the row below it partly
		// visible, one past what ceil(height/rowHeight) covers
		overscan = 1
	}
	cfg, err := window.NewConfig(opts.RowHeight, overscan)
	if err != nil {
		return nil, err
	}
	if opts.Render == nil {
		return nil, fmt.Errorf("%w: row template is required", window.ErrInvalidConfig)
	}

	l := &List[T]{
		cfg:       cfg,
		width:     max(0, opts.Width),
		render:    opts.Render,
		scrollbar: opts.Scrollbar,
		cache:     newRowCache(2 * window.MaxRows(cfg, 0)),
	}
	l.recompute()
	return l, nil
}

// Config returns the list geometry
func (l *List[T]) Config() window.Config {
	return l.cfg
}

// Mount attaches the list to a scroll container. Mounting again moves the
// list to the new container.
func (l *List[T]) Mount(c scroll.Scrollable) {
	l.Unmount()
	l.container = c
	if c == nil {
		return
	}
	c.SetContentHeight(l.ContentHeight())
	l.handle = scroll.Attach(c, func(vp window.Viewport) {
		l.viewport = vp
		l.recompute()
	})
	l.viewport = l.handle.State()
	l.recompute()
}

// Unmount stops tracking the container. Safe to call when not mounted.
func (l *List[T]) Unmount() {
	l.handle.Detach()
	l.handle = nil
	l.container = nil
	l.viewport = window.Viewport{}
	l.recompute()
}

// SetItems replaces the collection. The slice is already filtered and
// ordered by the caller and is never modified here.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	l.cache.Purge()
	if l.cursor >= len(items) {
		l.cursor = len(items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.container != nil {
		// May re-clamp the scroll offset, which comes back through the tracker
		l.container.SetContentHeight(l.ContentHeight())
	}
	l.recompute()
}

// Items returns the current collection
func (l *List[T]) Items() []T {
	return l.items
}

// Len returns the number of items
func (l *List[T]) Len() int {
	return len(l.items)
}

// SetWidth changes the row width; cached rows are dropped
func (l *List[T]) SetWidth(width int) {
	width = max(0, width)
	if width != l.width {
		l.width = width
		l.cache.Purge()
	}
}

// Invalidate forgets every cached row, e.g. after a theme change
func (l *List[T]) Invalidate() {
	l.cache.Purge()
}

// ContentHeight is the height of the full, unwindowed content
func (l *List[T]) ContentHeight() int {
	return len(l.items) * l.cfg.RowHeight
}

// Viewport returns the last tracked viewport
func (l *List[T]) Viewport() window.Viewport {
	return l.viewport
}

// Window returns the currently materialized index range
func (l *List[T]) Window() window.Window {
	return l.win
}

func (l *List[T]) recompute() {
	l.win = window.Compute(l.cfg, len(l.items), l.viewport)
	// Keep the previous window around so a one-row slide mostly hits the cache
	l.cache.Resize(2 * window.MaxRows(l.cfg, l.viewport.Height))
}

// Cursor returns the selected index
func (l *List[T]) Cursor() int {
	return l.cursor
}

// Selected returns the item under the cursor
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return zero, false
	}
	return l.items[l.cursor], true
}

// SetCursor moves the cursor and scrolls it into view
func (l *List[T]) SetCursor(i int) {
	if len(l.items) == 0 {
		l.cursor = 0
		return
	}
	l.cursor = min(max(i, 0), len(l.items)-1)
	l.EnsureVisible(l.cursor)
}

// MoveCursor moves the cursor by delta rows
func (l *List[T]) MoveCursor(delta int) {
	l.SetCursor(l.cursor + delta)
}

// PageRows is how many whole rows fit in the viewport
func (l *List[T]) PageRows() int {
	return max(1, l.viewport.Height/l.cfg.RowHeight)
}

// ScrollToIndex puts row i at the top of the viewport, subject to the
// container's own clamping
func (l *List[T]) ScrollToIndex(i int) {
	if l.container == nil {
		return
	}
	l.container.ScrollTo(window.OffsetFor(l.cfg, i))
}

// EnsureVisible scrolls the least distance needed to show row i
func (l *List[T]) EnsureVisible(i int) {
	if l.container == nil || i < 0 || i >= len(l.items) {
		return
	}
	top := i * l.cfg.RowHeight
	bottom := top + l.cfg.RowHeight
	offset := l.viewport.ScrollOffset
	height := l.viewport.Height

	switch {
	case top < offset:
		l.container.ScrollTo(top)
	case bottom > offset+height:
		l.container.ScrollTo(bottom - height)
	}
}

// Rows materializes the items inside the current window, in order
func (l *List[T]) Rows() []Row {
	if l.win.Empty() {
		return nil
	}
	rows := make([]Row, 0, l.win.Len())
	for i := l.win.Start; i < l.win.End; i++ {
		rows = append(rows, Row{
			Key:   l.items[i].Key(),
			Index: i,
			Top:   i * l.cfg.RowHeight,
			Lines: l.rowLines(i),
		})
	}
	return rows
}

func (l *List[T]) rowLines(i int) []string {
	item := l.items[i]
	selected := i == l.cursor
	key := rowKey{key: item.Key(), index: i, width: l.width, selected: selected}
	if lines, ok := l.cache.Get(key); ok {
		return lines
	}
	lines := fitRow(l.render(item, i, selected), l.cfg.RowHeight, l.width)
	l.cache.Add(key, lines)
	return lines
}

// View draws the visible part of the content, followed by a scrollbar
// column when the content overflows
func (l *List[T]) View() string {
	height := l.viewport.Height
	if height <= 0 {
		height = l.cfg.RowHeight * window.MinViewportRows
	}
	rows := l.Rows()

	lines := make([]string, height)
	blank := strings.Repeat(" ", l.width)
	for y := 0; y < height; y++ {
		lines[y] = blank
		abs := l.viewport.ScrollOffset + y
		idx := abs / l.cfg.RowHeight
		if !l.win.Contains(idx) {
			continue
		}
		row := rows[idx-l.win.Start]
		lines[y] = row.Lines[abs-row.Top]
	}

	if l.scrollbar && l.win.TotalHeight > height {
		bar := Scrollbar(height, l.win.TotalHeight, l.viewport.ScrollOffset)
		for y := range lines {
			lines[y] += bar[y]
		}
	}
	return strings.Join(lines, "\n")
}

// fitRow shapes rendered text to exactly height lines of the given width
func fitRow(s string, height, width int) []string {
	src := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		line := ""
		if i < len(src) {
			line = src[i]
		}
		if width > 0 {
			line = ansi.Truncate(line, width, "…")
			if pad := width - ansi.StringWidth(line); pad > 0 {
				line += strings.Repeat(" ", pad)
			}
		}
		out[i] = line
	}
	return out
}
