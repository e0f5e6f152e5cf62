package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/noborus/ov/oviewer"

	"storedash/internal/config"
	"storedash/internal/domain"
	"storedash/internal/kpi"
	"storedash/internal/ui/views"
)

// detailsPagerMsg contains the result of a details pager command
type detailsPagerMsg struct {
	title string
	err   error
}

// Pager shows long text in ov, handing the terminal over while it runs
type Pager struct {
	program *tea.Program
}

// NewPager creates a pager; SetProgram must be called before Show
func NewPager() *Pager {
	return &Pager{}
}

// SetProgram sets the program reference for terminal management
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show runs ov over content until the user quits it
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov time to exit before bubbletea takes the screen back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	return runOviewer(strings.NewReader(content))
}

func runOviewer(r io.Reader) error {
	root, err := oviewer.NewRoot(r)
	if err != nil {
		return err
	}

	cfg := oviewer.NewConfig()
	cfg.IsWriteOnExit = false
	cfg.IsWriteOriginal = false
	root.SetConfig(cfg)

	return root.Run()
}

// renderMarkdown renders product copy with glamour, falling back to the raw
// text when it cannot be rendered
func renderMarkdown(md, theme string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	style := "dark"
	if theme == config.ThemeLight {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(40, width)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func field(styles *views.Styles, label, value string) string {
	return fmt.Sprintf("  %s %s\n", styles.Key.Render(fmt.Sprintf("%-14s", label)), value)
}

// productDetails builds the pager text for a product
func productDetails(styles *views.Styles, p domain.Product, width int) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render(p.Name))
	b.WriteString("\n\n")

	category := p.Category.Name
	if category == "" {
		category = kpi.Uncategorized
	}
	b.WriteString(field(styles, "Brand", p.Brand))
	b.WriteString(field(styles, "SKU", p.SKU))
	b.WriteString(field(styles, "Slug", p.Slug))
	b.WriteString(field(styles, "Category", category))
	price := views.Money(p.FinalPrice())
	if p.HasDiscount() {
		price += styles.Dim.Render(fmt.Sprintf("  (list %s, %s %.2f off)", views.Money(p.Price), p.DiscountType, p.DiscountValue))
	}
	b.WriteString(field(styles, "Price", price))
	b.WriteString(field(styles, "Stock", styles.StockStyle(p.StockLevel()).Render(fmt.Sprintf("%d (%s)", p.Stock, p.StockLevel()))))
	if flags := p.Flags(); len(flags) > 0 {
		b.WriteString(field(styles, "Flags", strings.Join(flags, ", ")))
	}
	if len(p.Colors) > 0 {
		b.WriteString(field(styles, "Colors", strings.Join(p.Colors, ", ")))
	}
	if len(p.Sizes) > 0 {
		b.WriteString(field(styles, "Sizes", strings.Join(p.Sizes, ", ")))
	}
	b.WriteString(field(styles, "Reviews", fmt.Sprint(p.TotalReviews)))
	for i, img := range p.Images {
		b.WriteString(field(styles, fmt.Sprintf("Image %d", i+1), img.URL))
	}

	if p.ShortDescription != "" {
		b.WriteString("\n")
		b.WriteString(styles.Section.Render("Summary"))
		b.WriteString("\n")
		b.WriteString(renderMarkdown(p.ShortDescription, styles.Theme, width))
		b.WriteString("\n")
	}
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(styles.Section.Render("Description"))
		b.WriteString("\n")
		b.WriteString(renderMarkdown(p.Description, styles.Theme, width))
		b.WriteString("\n")
	}
	return b.String()
}

// orderDetails builds the pager text for an order. names maps product id to
// product name for the line items.
func orderDetails(styles *views.Styles, o domain.Order, names map[string]string) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Order " + o.InvoiceID))
	b.WriteString("\n\n")

	b.WriteString(field(styles, "Status", styles.OrderStatusStyle(o.Status).Render(kpi.StatusLabel(o.Status))))
	b.WriteString(field(styles, "Customer", o.Customer.FullName))
	b.WriteString(field(styles, "Phone", o.Customer.Phone))
	b.WriteString(field(styles, "Address", o.Customer.Address))
	b.WriteString(field(styles, "Payment", strings.ToUpper(string(o.PaymentMethod))))
	b.WriteString(field(styles, "Total", views.Money(o.TotalAmount)))
	if o.Note != "" {
		b.WriteString(field(styles, "Note", o.Note))
	}

	b.WriteString("\n")
	b.WriteString(styles.Section.Render(fmt.Sprintf("Items (%d units)", o.Quantity())))
	b.WriteString("\n")
	for _, it := range o.Items {
		name := names[it.ProductID]
		if name == "" {
			name = it.ProductID
		}
		var variant []string
		if it.Color != "" {
			variant = append(variant, it.Color)
		}
		if it.Size != "" {
			variant = append(variant, it.Size)
		}
		line := fmt.Sprintf("  %3d × %s", it.Qty, name)
		if len(variant) > 0 {
			line += styles.Dim.Render(" (" + strings.Join(variant, ", ") + ")")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
