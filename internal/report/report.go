// Package report writes the KPI summary of a catalog snapshot as a YAML
// document or an HTML page of charts.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gopkg.in/yaml.v3"

	"storedash/internal/catalog"
	"storedash/internal/domain"
	"storedash/internal/kpi"
)

// Format selects the output encoding
type Format string

const (
	FormatHTML Format = "html"
	FormatYAML Format = "yaml"

	chartHeight = "360px"
)

// StatusColors are the badge colours used for order statuses
var StatusColors = map[domain.OrderStatus]string{
	domain.StatusPending:   "#da7708",
	domain.StatusCompleted: "#4ade80",
	domain.StatusShipped:   "#60a5fa",
	domain.StatusCancelled: "#f87171",
}

var stockColors = map[domain.StockLevel]string{
	domain.StockOut: "#f87171",
	domain.StockLow: "#da7708",
	domain.StockIn:  "#4ade80",
}

// Report is the document that gets written
type Report struct {
	GeneratedAt time.Time                 `yaml:"generated_at"`
	Source      string                    `yaml:"source"`
	Summary     kpi.Summary               `yaml:"summary"`
	StockLevels map[domain.StockLevel]int `yaml:"stock_levels"`
	Categories  []kpi.CategoryGroup       `yaml:"categories"`
}

// Build computes the report for snap
func Build(snap catalog.Snapshot, source string, now time.Time) Report {
	return Report{
		GeneratedAt: now.UTC(),
		Source:      source,
		Summary:     kpi.Summarize(snap.Categories, snap.Products, snap.Orders),
		StockLevels: kpi.StockLevels(snap.Products),
		Categories:  kpi.GroupByCategory(snap.Categories, snap.Products),
	}
}

// Write encodes r in the given format
func Write(w io.Writer, r Report, format Format) error {
	switch format {
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatHTML:
		return WriteHTML(w, r)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteYAML writes r as a YAML document
func WriteYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// WriteHTML writes a self-contained page with the report charts
func WriteHTML(w io.Writer, r Report) error {
	page := components.NewPage()
	page.PageTitle = "storedash report"
	page.AddCharts(
		statusChart(r),
		stockChart(r),
		categoryChart(r),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func globalOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "100%",
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func statusChart(r Report) *charts.Bar {
	bar := charts.NewBar()
	subtitle := fmt.Sprintf("%d orders, revenue ৳%.2f from completed orders", r.Summary.Orders, r.Summary.Revenue)
	bar.SetGlobalOptions(globalOptions("Orders by status", subtitle)...)

	labels := make([]string, 0, len(domain.OrderStatuses))
	data := make([]opts.BarData, 0, len(domain.OrderStatuses))
	for _, st := range domain.OrderStatuses {
		labels = append(labels, kpi.StatusLabel(st))
		data = append(data, opts.BarData{
			Name:      kpi.StatusLabel(st),
			Value:     r.Summary.OrdersByStatus[st],
			ItemStyle: &opts.ItemStyle{Color: StatusColors[st]},
		})
	}
	bar.SetXAxis(labels)
	bar.AddSeries("Orders", data)
	return bar
}

func stockChart(r Report) *charts.Pie {
	pie := charts.NewPie()
	subtitle := fmt.Sprintf("%d products, %d units in stock", r.Summary.Products, r.Summary.TotalStock)
	pie.SetGlobalOptions(globalOptions("Stock levels", subtitle)...)

	levels := []domain.StockLevel{domain.StockIn, domain.StockLow, domain.StockOut}
	names := map[domain.StockLevel]string{
		domain.StockIn:  "In stock",
		domain.StockLow: "Low stock",
		domain.StockOut: "Out of stock",
	}
	data := make([]opts.PieData, 0, len(levels))
	for _, l := range levels {
		data = append(data, opts.PieData{
			Name:      names[l],
			Value:     r.StockLevels[l],
			ItemStyle: &opts.ItemStyle{Color: stockColors[l]},
		})
	}
	pie.AddSeries("Products", data)
	return pie
}

func categoryChart(r Report) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions("Products per category", fmt.Sprintf("%d categories", r.Summary.Categories))...)

	labels := make([]string, 0, len(r.Categories))
	products := make([]opts.BarData, 0, len(r.Categories))
	stock := make([]opts.BarData, 0, len(r.Categories))
	for _, g := range r.Categories {
		labels = append(labels, g.Category.Name)
		products = append(products, opts.BarData{Name: g.Category.Name, Value: g.Products})
		stock = append(stock, opts.BarData{Name: g.Category.Name, Value: g.OutOfStock})
	}
	bar.SetXAxis(labels)
	bar.AddSeries("Products", products)
	bar.AddSeries("Out of stock", stock)
	return bar
}
