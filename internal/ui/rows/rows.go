// Package rows holds the row templates of the list pages. Templates are
// pure functions of their arguments so the list can re-create any row at
// any time.
package rows

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"storedash/internal/domain"
	"storedash/internal/kpi"
	"storedash/internal/ui/views"
)

// Natural heights of the templates, in lines
const (
	ProductHeight  = 2
	OrderHeight    = 2
	CategoryHeight = 1
)

// CategoryItem is a category together with its product count
type CategoryItem struct {
	domain.Category
	Products int
}

// Templates renders rows with the styles of the active theme
type Templates struct {
	styles *views.Styles
}

// New creates templates bound to styles
func New(styles *views.Styles) Templates {
	return Templates{styles: styles}
}

func (t Templates) cursor(selected bool) string {
	if selected {
		return t.styles.Highlight.Render("▸ ")
	}
	return "  "
}

func (t Templates) line(selected bool, s string) string {
	if selected {
		return t.styles.SelectionBg.Render(s)
	}
	return s
}

func column(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// Product renders a two line product row
func (t Templates) Product(p domain.Product, index int, selected bool) string {
	st := t.styles
	level := p.StockLevel()

	price := views.Money(p.FinalPrice())
	if p.HasDiscount() {
		price = fmt.Sprintf("%s %s", price, st.Dim.Strikethrough(true).Render(views.Money(p.Price)))
	}
	stock := st.StockStyle(level).Render(fmt.Sprintf("● %-3s %4d", level, p.Stock))

	first := fmt.Sprintf("%s%s  %s  %s",
		t.cursor(selected),
		column(st.Text.Bold(true).Render(p.Name), 28),
		stock,
		price,
	)

	category := p.Category.Name
	if category == "" {
		category = kpi.Uncategorized
	}
	second := fmt.Sprintf("    %s · %s · %s",
		p.Brand,
		st.Dim.Render(p.SKU),
		category,
	)
	if flags := p.Flags(); len(flags) > 0 {
		second += "  " + st.StatusInfo.Render("["+strings.Join(flags, ", ")+"]")
	}

	return t.line(selected, first) + "\n" + t.line(selected, st.Dim.Render(fmt.Sprintf("%4d", index+1))+second)
}

// Order renders a two line order row
func (t Templates) Order(o domain.Order, index int, selected bool) string {
	st := t.styles

	badge := st.OrderStatusStyle(o.Status).Render(column(kpi.StatusLabel(o.Status), 10))
	first := fmt.Sprintf("%s%s  %s  %s",
		t.cursor(selected),
		column(st.Text.Bold(true).Render(o.InvoiceID), 12),
		badge,
		views.Money(o.TotalAmount),
	)

	payment := strings.ToUpper(string(o.PaymentMethod))
	if payment == "" {
		payment = "-"
	}
	second := fmt.Sprintf("%s    %s · %s · %s · %d items",
		st.Dim.Render(fmt.Sprintf("%4d", index+1)),
		o.Customer.FullName,
		st.Dim.Render(o.Customer.Phone),
		payment,
		o.Quantity(),
	)
	return t.line(selected, first) + "\n" + t.line(selected, second)
}

// Category renders a one line category row
func (t Templates) Category(c CategoryItem, index int, selected bool) string {
	st := t.styles
	count := fmt.Sprintf("%3d products", c.Products)
	if c.Products == 0 {
		count = st.Dim.Render(count)
	}
	s := fmt.Sprintf("%s%s  %s  %s  %s",
		t.cursor(selected),
		column(st.Text.Bold(true).Render(c.Name), 20),
		column(st.Dim.Render(c.Slug), 20),
		count,
		st.Dim.Render(c.Description),
	)
	return t.line(selected, s)
}
