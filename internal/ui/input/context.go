package input

import (
	"storedash/internal/domain"
	"storedash/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler. The
// model fills it from the active page before every key press.
type ModelContext struct {
	Page      state.Page
	Index     int
	Total     int
	Label     string
	Filter    string
	Category  *domain.Category
	Product   *domain.Product
	Options   []string
	SortIndex int
}

// CurrentPage returns the active page
func (c *ModelContext) CurrentPage() state.Page {
	return c.Page
}

// CurrentIndex returns the cursor position
func (c *ModelContext) CurrentIndex() int {
	return c.Index
}

// TotalItems returns the number of visible rows
func (c *ModelContext) TotalItems() int {
	return c.Total
}

// CurrentLabel names the item under the cursor
func (c *ModelContext) CurrentLabel() string {
	return c.Label
}

// CurrentFilter returns the active page's filter
func (c *ModelContext) CurrentFilter() string {
	return c.Filter
}

// CurrentCategory returns the category under the cursor on the categories page
func (c *ModelContext) CurrentCategory() (string, string, bool) {
	if c.Category == nil {
		return "", "", false
	}
	return c.Category.Name, c.Category.Description, true
}

// CurrentProduct returns the product under the cursor on the products page
func (c *ModelContext) CurrentProduct() (domain.Product, bool) {
	if c.Product == nil {
		return domain.Product{}, false
	}
	return *c.Product, true
}

// SortOptions returns the sort picker labels of the active page
func (c *ModelContext) SortOptions() []string {
	return c.Options
}

// CurrentSortIndex returns the selected sort option
func (c *ModelContext) CurrentSortIndex() int {
	return c.SortIndex
}
