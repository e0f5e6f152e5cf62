package scroll

import (
	"storedash/internal/window"
)

// Listener receives the viewport after every observed resize or scroll
type Listener func(window.Viewport)

// Container is anything the tracker can observe
type Container interface {
	ClientHeight() int
	ScrollOffset() int
	Mounted() bool
	Observe(l Listener) (cancel func())
}

// Scrollable is a container that can also be driven programmatically
type Scrollable interface {
	Container
	ScrollTo(offset int)
	SetContentHeight(height int)
}

type observer struct {
	id int
	fn Listener
}

// Pane is a terminal scroll container. It is owned by the UI goroutine,
// so it does no locking.
type Pane struct {
	height    int
	offset    int
	content   int
	mounted   bool
	nextID    int
	observers []observer
}

// NewPane creates a mounted pane with no size yet
func NewPane() *Pane {
	return &Pane{mounted: true}
}

// Mounted reports whether the pane is still on screen
func (p *Pane) Mounted() bool {
	return p != nil && p.mounted
}

// ClientHeight returns the visible height in lines
func (p *Pane) ClientHeight() int {
	if p == nil {
		return 0
	}
	return p.height
}

// ScrollOffset returns the first visible content line
func (p *Pane) ScrollOffset() int {
	if p == nil {
		return 0
	}
	return p.offset
}

// ContentHeight returns the full height of the scrolled content
func (p *Pane) ContentHeight() int {
	if p == nil {
		return 0
	}
	return p.content
}

// Viewport returns the current measurements
func (p *Pane) Viewport() window.Viewport {
	return window.Viewport{ScrollOffset: p.ScrollOffset(), Height: p.ClientHeight()}
}

// MaxOffset is the largest scroll offset that still fills the pane
func (p *Pane) MaxOffset() int {
	if p == nil {
		return 0
	}
	return max(0, p.content-p.height)
}

// Observe registers a listener and returns a function that removes it
func (p *Pane) Observe(l Listener) func() {
	if !p.Mounted() || l == nil {
		return func() {}
	}
	p.nextID++
	id := p.nextID
	p.observers = append(p.observers, observer{id: id, fn: l})

	return func() {
		for i, o := range p.observers {
			if o.id == id {
				p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
				return
			}
		}
	}
}

// Resize sets the visible height, as reported by the terminal
func (p *Pane) Resize(height int) {
	if !p.Mounted() {
		return
	}
	if height < 0 {
		height = 0
	}
	if height == p.height {
		return
	}
	p.height = height
	p.offset = p.clamp(p.offset)
	p.notify()
}

// SetContentHeight updates the full content height. When the content shrinks
// below the current scroll position the offset is pulled back and observers
// see a scroll event.
func (p *Pane) SetContentHeight(height int) {
	if !p.Mounted() {
		return
	}
	if height < 0 {
		height = 0
	}
	p.content = height
	if clamped := p.clamp(p.offset); clamped != p.offset {
		p.offset = clamped
		p.notify()
	}
}

// ScrollTo moves to an absolute offset
func (p *Pane) ScrollTo(offset int) {
	if !p.Mounted() {
		return
	}
	offset = p.clamp(offset)
	if offset == p.offset {
		return
	}
	p.offset = offset
	p.notify()
}

// ScrollBy moves relative to the current offset
func (p *Pane) ScrollBy(delta int) {
	if p == nil {
		return
	}
	p.ScrollTo(p.offset + delta)
}

// ScrollToBottom shows the last page of content
func (p *Pane) ScrollToBottom() {
	p.ScrollTo(p.MaxOffset())
}

// Unmount removes the pane from the screen and drops every observer
func (p *Pane) Unmount() {
	if p == nil {
		return
	}
	p.mounted = false
	p.observers = nil
}

func (p *Pane) clamp(offset int) int {
	if offset < 0 {
		return 0
	}
	if m := p.MaxOffset(); offset > m {
		return m
	}
	return offset
}

// notify runs observers synchronously, in registration order
func (p *Pane) notify() {
	vp := p.Viewport()
	observers := make([]observer, len(p.observers))
	copy(observers, p.observers)
	for _, o := range observers {
		o.fn(vp)
	}
}
