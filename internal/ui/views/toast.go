package views

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ToastLevel is the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// MaxToasts is how many toasts are shown at once
const MaxToasts = 3

// Toast is a short-lived notification
type Toast struct {
	ID      string
	Level   ToastLevel
	Message string
	Expires time.Time
}

// Toasts is the stack of visible notifications, newest last
type Toasts struct {
	ttl   time.Duration
	items []Toast
}

// NewToasts creates an empty stack whose toasts live for ttl
func NewToasts(ttl time.Duration) *Toasts {
	return &Toasts{ttl: ttl}
}

// TTL returns how long a toast stays visible
func (t *Toasts) TTL() time.Duration {
	return t.ttl
}

// Push adds a toast and returns its id. The oldest toast is dropped when
// the stack is full.
func (t *Toasts) Push(level ToastLevel, message string, now time.Time) string {
	toast := Toast{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		Expires: now.Add(t.ttl),
	}
	t.items = append(t.items, toast)
	if len(t.items) > MaxToasts {
		t.items = t.items[len(t.items)-MaxToasts:]
	}
	return toast.ID
}

// Dismiss removes a toast by id
func (t *Toasts) Dismiss(id string) {
	for i, toast := range t.items {
		if toast.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

// Newest returns the most recently pushed toast still visible
func (t *Toasts) Newest() (Toast, bool) {
	if len(t.items) == 0 {
		return Toast{}, false
	}
	return t.items[len(t.items)-1], true
}

// Expire drops every toast whose deadline has passed
func (t *Toasts) Expire(now time.Time) {
	kept := t.items[:0]
	for _, toast := range t.items {
		if now.Before(toast.Expires) {
			kept = append(kept, toast)
		}
	}
	t.items = kept
}

// Items returns the visible toasts
func (t *Toasts) Items() []Toast {
	return append([]Toast(nil), t.items...)
}

// Len returns the number of visible toasts
func (t *Toasts) Len() int {
	return len(t.items)
}

// RenderToasts draws the toasts one per line
func (r *Renderer) RenderToasts(toasts []Toast) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, toast := range toasts {
		switch toast.Level {
		case ToastSuccess:
			lines = append(lines, r.styles.StatusSuccess.Render("✓ "+toast.Message))
		case ToastError:
			lines = append(lines, r.styles.StatusError.Render("✗ "+toast.Message))
		default:
			lines = append(lines, r.styles.StatusInfo.Render("• "+toast.Message))
		}
	}
	return strings.Join(lines, "\n")
}
