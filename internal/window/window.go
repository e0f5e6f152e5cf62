package window

import (
	"errors"
	"fmt"
)

// DefaultOverscan is the number of extra rows rendered above and below the viewport
const DefaultOverscan = 4

// MinViewportRows is how many rows an unmeasured (zero height) viewport is assumed to cover
const MinViewportRows = 1

// ErrInvalidConfig is returned when a list is configured with impossible geometry
var ErrInvalidConfig = errors.New("invalid list configuration")

// Config holds the fixed geometry of one list instance
type Config struct {
	RowHeight int
	Overscan  int
}

// NewConfig validates and returns a list geometry
func NewConfig(rowHeight, overscan int) (Config, error) {
	if rowHeight <= 0 {
		return Config{}, fmt.Errorf("%w: row height must be positive, got %d", ErrInvalidConfig, rowHeight)
	}
	if overscan < 0 {
		return Config{}, fmt.Errorf("%w: overscan must not be negative, got %d", ErrInvalidConfig, overscan)
	}
	return Config{RowHeight: rowHeight, Overscan: overscan}, nil
}

// Viewport is the measured state of a scroll container, in lines
type Viewport struct {
	ScrollOffset int
	Height       int
}

// Window is the slice of a collection that should be materialized
type Window struct {
	Start       int // first rendered index
	End         int // one past the last rendered index
	OffsetY     int // line offset of Start inside the full content
	TotalHeight int // height of the full content
}

// Len returns the number of rows in the window
func (w Window) Len() int {
	return w.End - w.Start
}

// Empty reports whether the window holds no rows
func (w Window) Empty() bool {
	return w.End <= w.Start
}

// Contains reports whether index i is materialized
func (w Window) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// Compute maps a collection size and viewport to the window of rows to render.
// It performs only index arithmetic and never looks at the items themselves.
func Compute(cfg Config, itemCount int, vp Viewport) Window {
	if cfg.RowHeight <= 0 || itemCount <= 0 {
		return Window{}
	}

	overscan := cfg.Overscan
	if overscan < 0 {
		overscan = 0
	}
	scroll := vp.ScrollOffset
	if scroll < 0 {
		scroll = 0
	}

	total := itemCount * cfg.RowHeight

	start := scroll/cfg.RowHeight - overscan
	if start < 0 {
		start = 0
	}
	// A stale scroll offset after the collection shrank must not push start past the end
	if start > itemCount {
		start = itemCount
	}

	end := start + visibleRows(cfg.RowHeight, vp.Height) + 2*overscan
	if end > itemCount {
		end = itemCount
	}

	return Window{
		Start:       start,
		End:         end,
		OffsetY:     start * cfg.RowHeight,
		TotalHeight: total,
	}
}

// MaxRows is the upper bound on rendered rows for a viewport height
func MaxRows(cfg Config, height int) int {
	if cfg.RowHeight <= 0 {
		return 0
	}
	return visibleRows(cfg.RowHeight, height) + 2*cfg.Overscan
}

// OffsetFor returns the scroll offset that puts index i at the top of the viewport
func OffsetFor(cfg Config, i int) int {
	if i < 0 {
		i = 0
	}
	return i * cfg.RowHeight
}

// visibleRows is ceil(height/rowHeight), with unmeasured viewports counted as one row
func visibleRows(rowHeight, height int) int {
	if height <= 0 {
		return MinViewportRows
	}
	return (height + rowHeight - 1) / rowHeight
}
