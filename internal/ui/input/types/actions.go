package types

import (
	"storedash/internal/domain"
	"storedash/internal/ui/state"
)

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// SwitchPageAction selects a page directly, or cycles when Delta is set
type SwitchPageAction struct {
	Page  state.Page
	Delta int
}

func (a SwitchPageAction) Type() string { return "switch_page" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

type DismissToastAction struct{}

func (a DismissToastAction) Type() string { return "dismiss_toast" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenDetailsAction struct{}

func (a OpenDetailsAction) Type() string { return "open_details" }

type ToggleThemeAction struct{}

func (a ToggleThemeAction) Type() string { return "toggle_theme" }

// DeleteAction deletes the item that was under the cursor when the
// confirmation opened
type DeleteAction struct {
	Label string
}

func (a DeleteAction) Type() string { return "delete" }

// SaveCategoryAction creates a category, or updates the one under the
// cursor when Edit is set
type SaveCategoryAction struct {
	Name        string
	Description string
	Edit        bool
}

func (a SaveCategoryAction) Type() string { return "save_category" }

// SaveProductAction renames and reprices the product under the cursor
type SaveProductAction struct {
	Name          string
	Price         float64
	DiscountType  domain.DiscountType
	DiscountValue float64
}

func (a SaveProductAction) Type() string { return "save_product" }

// AdjustStockAction changes the stock of the product under the cursor
type AdjustStockAction struct {
	Delta int
}

func (a AdjustStockAction) Type() string { return "adjust_stock" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Sort actions
type SortByAction struct {
	Index int
}

func (a SortByAction) Type() string { return "sort_by" }

type UpdateSortIndexAction struct {
	Index int
}

func (a UpdateSortIndexAction) Type() string { return "update_sort_index" }
