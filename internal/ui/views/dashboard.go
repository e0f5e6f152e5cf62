package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"storedash/internal/domain"
	"storedash/internal/kpi"
)

const currency = "৳"

// Money formats an amount the way the dashboard shows prices
func Money(v float64) string {
	return fmt.Sprintf("%s%.2f", currency, v)
}

const barWidth = 20

const (
	recentOrders   = 8
	recentProducts = 6
	panelGap       = 3
)

// Dashboard is what the overview page shows
type Dashboard struct {
	Summary  kpi.Summary
	Orders   []domain.Order
	Products []domain.Product
}

// RenderDashboard draws the KPI cards, the recent orders and products
// panels and the orders-by-status bars. A positive height clips the output.
func (r *Renderer) RenderDashboard(d Dashboard, width, height int) string {
	s := d.Summary
	cards := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"Revenue", Money(s.Revenue), r.styles.CardValue},
		{"Orders", fmt.Sprint(s.Orders), r.styles.CardValue},
		{"Units sold", fmt.Sprint(s.UnitsSold), r.styles.CardValue},
		{"Products", fmt.Sprint(s.Products), r.styles.CardValue},
		{"Categories", fmt.Sprint(s.Categories), r.styles.CardValue},
		{"Avg price", Money(s.AveragePrice), r.styles.CardValue},
		{"Out of stock", fmt.Sprint(s.OutOfStock), r.styles.StatusError.Bold(true)},
		{"Low stock", fmt.Sprint(s.LowStock), r.styles.StatusWarning.Bold(true)},
	}

	cardWidth := lipgloss.Width(r.styles.Card.Render(""))
	perRow := 4
	if width > 0 {
		perRow = max(1, min(len(cards), width/max(1, cardWidth)))
	}

	var grid []string
	for i := 0; i < len(cards); i += perRow {
		var row []string
		for _, c := range cards[i:min(i+perRow, len(cards))] {
			row = append(row, r.styles.Card.Render(r.styles.Dim.Render(c.label)+"\n"+c.style.Render(c.value)))
		}
		grid = append(grid, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	orders := r.renderRecentOrders(d.Orders)
	products := r.renderRecentProducts(d.Products)
	var panels string
	if width <= 0 || lipgloss.Width(orders)+panelGap+lipgloss.Width(products) <= width {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, orders, strings.Repeat(" ", panelGap), products)
	} else {
		panels = lipgloss.JoinVertical(lipgloss.Left, orders, products)
	}

	out := &strings.Builder{}
	out.WriteString(lipgloss.JoinVertical(lipgloss.Left, grid...))
	out.WriteString("\n")
	out.WriteString(panels)
	out.WriteString("\n")
	out.WriteString(r.styles.Section.Render("Orders by status"))
	out.WriteString("\n")
	out.WriteString(r.renderStatusBars(s))

	if height <= 0 {
		return out.String()
	}
	lines := strings.Split(out.String(), "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderRecentOrders(orders []domain.Order) string {
	lines := []string{r.styles.Section.Render("Recent Orders")}
	if len(orders) == 0 {
		return strings.Join(append(lines, r.styles.Dim.Render("  No orders yet")), "\n")
	}
	for _, o := range orders[:min(recentOrders, len(orders))] {
		invoice := o.InvoiceID
		if invoice == "" {
			invoice = o.ID[max(0, len(o.ID)-6):]
		}
		customer := o.Customer.FullName
		if customer == "" {
			customer = "-"
		}
		st := o.Status.Normalized()
		lines = append(lines, "  "+
			r.styles.Highlight.Render(cell("#"+invoice, 11))+" "+
			r.styles.Text.Render(cell(customer, 16))+" "+
			r.styles.OrderStatusStyle(st).Render(cell("● "+kpi.StatusLabel(st), 11))+" "+
			r.styles.OrderStatusStyle(st).Render(fmt.Sprintf("%10s", Money(o.TotalAmount))))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderRecentProducts(products []domain.Product) string {
	lines := []string{r.styles.Section.Render("Products")}
	if len(products) == 0 {
		return strings.Join(append(lines, r.styles.Dim.Render("  No products")), "\n")
	}
	for _, p := range products[:min(recentProducts, len(products))] {
		lines = append(lines, "  "+
			r.styles.Text.Render(cell(p.Name, 20))+" "+
			fmt.Sprintf("%10s", Money(p.FinalPrice()))+" "+
			r.styles.StockStyle(p.StockLevel()).Render(fmt.Sprintf("%4d", p.Stock)))
	}
	return strings.Join(lines, "\n")
}

// cell truncates or pads s to exactly w columns
func cell(s string, w int) string {
	s = ansi.Truncate(s, w, "…")
	return s + strings.Repeat(" ", max(0, w-ansi.StringWidth(s)))
}

func (r *Renderer) renderStatusBars(s kpi.Summary) string {
	peak := 0
	for _, n := range s.OrdersByStatus {
		peak = max(peak, n)
	}

	lines := make([]string, 0, len(domain.OrderStatuses))
	for _, st := range domain.OrderStatuses {
		n := s.OrdersByStatus[st]
		filled := 0
		if peak > 0 {
			filled = n * barWidth / peak
		}
		if n > 0 && filled == 0 {
			filled = 1
		}
		bar := r.styles.OrderStatusStyle(st).Render(strings.Repeat("█", filled)) +
			r.styles.Dim.Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines, fmt.Sprintf("  %-10s %s %d", kpi.StatusLabel(st), bar, n))
	}
	return strings.Join(lines, "\n")
}
