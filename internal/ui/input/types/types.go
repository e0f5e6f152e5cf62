package types

import (
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/domain"
	"storedash/internal/ui/state"
)

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeSort
	ModeDeleteConfirm
	ModeNewCategory
	ModeEditCategory
	ModeEditProduct
)

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentPage() state.Page
	CurrentIndex() int
	TotalItems() int
	CurrentLabel() string
	CurrentFilter() string
	CurrentCategory() (name, description string, ok bool)
	CurrentProduct() (domain.Product, bool)
	SortOptions() []string
	CurrentSortIndex() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}

// Prompter is implemented by text modes that label their input line
type Prompter interface {
	Prompt() string
}
