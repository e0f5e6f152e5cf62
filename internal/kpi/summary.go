// Package kpi derives the dashboard figures and the filtered, sorted views
// of the shop collections.
package kpi

import (
	"strings"

	"storedash/internal/domain"
)

// Summary is what the dashboard page and the report show
type Summary struct {
	Categories     int                        `yaml:"categories" json:"categories"`
	Products       int                        `yaml:"products" json:"products"`
	Orders         int                        `yaml:"orders" json:"orders"`
	Revenue        float64                    `yaml:"revenue" json:"revenue"`
	TotalStock     int                        `yaml:"total_stock" json:"totalStock"`
	OutOfStock     int                        `yaml:"out_of_stock" json:"outOfStock"`
	LowStock       int                        `yaml:"low_stock" json:"lowStock"`
	AveragePrice   float64                    `yaml:"average_price" json:"averagePrice"`
	OrdersByStatus map[domain.OrderStatus]int `yaml:"orders_by_status" json:"ordersByStatus"`
	UnitsSold      int                        `yaml:"units_sold" json:"unitsSold"`
}

// Summarize computes the summary. Revenue only counts completed orders; the
// status comparison ignores case.
func Summarize(categories []domain.Category, products []domain.Product, orders []domain.Order) Summary {
	s := Summary{
		Categories:     len(categories),
		Products:       len(products),
		Orders:         len(orders),
		OrdersByStatus: make(map[domain.OrderStatus]int, len(domain.OrderStatuses)),
	}
	for _, st := range domain.OrderStatuses {
		s.OrdersByStatus[st] = 0
	}

	var priceSum float64
	for _, p := range products {
		if p.Stock > 0 {
			s.TotalStock += p.Stock
		}
		switch p.StockLevel() {
		case domain.StockOut:
			s.OutOfStock++
		case domain.StockLow:
			s.LowStock++
		}
		priceSum += p.Price
	}
	if len(products) > 0 {
		s.AveragePrice = priceSum / float64(len(products))
	}

	for _, o := range orders {
		status := o.Status.Normalized()
		s.OrdersByStatus[status]++
		if status == domain.StatusCompleted {
			s.Revenue += o.TotalAmount
			s.UnitsSold += o.Quantity()
		}
	}
	return s
}

// StockLevels counts products per stock bucket
func StockLevels(products []domain.Product) map[domain.StockLevel]int {
	levels := map[domain.StockLevel]int{
		domain.StockOut: 0,
		domain.StockLow: 0,
		domain.StockIn:  0,
	}
	for _, p := range products {
		levels[p.StockLevel()]++
	}
	return levels
}

// StatusLabel title-cases a status for display
func StatusLabel(s domain.OrderStatus) string {
	n := string(s.Normalized())
	if n == "" {
		return "Unknown"
	}
	return strings.ToUpper(n[:1]) + n[1:]
}
