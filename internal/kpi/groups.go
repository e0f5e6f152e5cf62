package kpi

import (
	"sort"
	"strings"

	"storedash/internal/domain"
)

// Uncategorized is the group for products whose category is unknown
const Uncategorized = "Uncategorized"

// CategoryGroup rolls up the products of one category
type CategoryGroup struct {
	Category   domain.Category `yaml:"category"`
	Products   int             `yaml:"products"`
	Stock      int             `yaml:"stock"`
	OutOfStock int             `yaml:"out_of_stock"`
}

// CategoryCounts maps category id to number of products
func CategoryCounts(products []domain.Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category.ID]++
	}
	return counts
}

// GroupByCategory builds one group per known category, in name order, and
// a trailing Uncategorized group when some products reference a category
// that is not in the list.
func GroupByCategory(categories []domain.Category, products []domain.Product) []CategoryGroup {
	index := make(map[string]int, len(categories))
	groups := make([]CategoryGroup, 0, len(categories)+1)
	for _, c := range categories {
		groups = append(groups, CategoryGroup{Category: c})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].Category.Name) < strings.ToLower(groups[j].Category.Name)
	})
	for i, g := range groups {
		index[g.Category.ID] = i
	}

	var orphans CategoryGroup
	orphans.Category = domain.Category{Name: Uncategorized}
	for _, p := range products {
		g := &orphans
		if i, ok := index[p.Category.ID]; ok && p.Category.ID != "" {
			g = &groups[i]
		}
		g.Products++
		if p.Stock > 0 {
			g.Stock += p.Stock
		}
		if p.StockLevel() == domain.StockOut {
			g.OutOfStock++
		}
	}
	if orphans.Products > 0 {
		groups = append(groups, orphans)
	}
	return groups
}
