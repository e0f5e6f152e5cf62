package scroll

import (
	"reflect"

	"storedash/internal/window"
)

// Handle is the result of Attach. It holds the latest viewport and stops
// observation when detached.
type Handle struct {
	state    window.Viewport
	cancel   func()
	detached bool
}

// Attach starts tracking the container and reports the measured viewport
// right away, then again after every resize or scroll. A nil or unmounted
// container yields an inert handle with a zero viewport.
func Attach(c Container, onChange func(window.Viewport)) *Handle {
	h := &Handle{}
	if isNil(c) || !c.Mounted() {
		h.detached = true
		return h
	}

	h.state = window.Viewport{ScrollOffset: c.ScrollOffset(), Height: c.ClientHeight()}
	h.cancel = c.Observe(func(vp window.Viewport) {
		if h.detached {
			return
		}
		h.state = vp
		if onChange != nil {
			onChange(vp)
		}
	})

	if onChange != nil {
		onChange(h.state)
	}
	return h
}

// State returns the last observed viewport
func (h *Handle) State() window.Viewport {
	if h == nil || h.detached {
		return window.Viewport{}
	}
	return h.state
}

// Active reports whether the handle is still observing
func (h *Handle) Active() bool {
	return h != nil && !h.detached
}

// Detach stops observation. It may be called any number of times, also
// after the container was unmounted.
func (h *Handle) Detach() {
	if h == nil || h.detached {
		return
	}
	h.detached = true
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.state = window.Viewport{}
}

func isNil(c Container) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
