package kpi

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"storedash/internal/domain"
)

// FuzzyPrefix switches a filter query from substring to fuzzy ranking
const FuzzyPrefix = "~"

// productSource adapts products to fuzzy.Source
type productSource []domain.Product

func (s productSource) String(i int) string { return productText(s[i]) }
func (s productSource) Len() int            { return len(s) }

type orderSource []domain.Order

func (s orderSource) String(i int) string { return orderText(s[i]) }
func (s orderSource) Len() int            { return len(s) }

type categorySource []domain.Category

func (s categorySource) String(i int) string { return categoryText(s[i]) }
func (s categorySource) Len() int            { return len(s) }

func productText(p domain.Product) string {
	return strings.Join([]string{p.Name, p.SKU, p.Brand, p.Category.Name}, " ")
}

func orderText(o domain.Order) string {
	return strings.Join([]string{o.InvoiceID, o.Customer.FullName, o.Customer.Phone, string(o.Status)}, " ")
}

func categoryText(c domain.Category) string {
	return strings.Join([]string{c.Name, c.Slug, c.Description}, " ")
}

// FilterProducts keeps products matching query. "stock:out|low|in" filters
// by stock level and "~term" ranks fuzzy matches best first; anything else
// is a case-insensitive substring match on name, sku, brand and category.
// The input slice is never modified.
func FilterProducts(products []domain.Product, query string) []domain.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return products
	}
	lower := strings.ToLower(query)

	if level, ok := strings.CutPrefix(lower, "stock:"); ok {
		var out []domain.Product
		for _, p := range products {
			if string(p.StockLevel()) == level {
				out = append(out, p)
			}
		}
		return out
	}

	if term, ok := strings.CutPrefix(query, FuzzyPrefix); ok {
		if term = strings.TrimSpace(term); term == "" {
			return products
		}
		matches := fuzzy.FindFrom(term, productSource(products))
		out := make([]domain.Product, 0, len(matches))
		for _, m := range matches {
			out = append(out, products[m.Index])
		}
		return out
	}

	var out []domain.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(productText(p)), lower) {
			out = append(out, p)
		}
	}
	return out
}

// FilterOrders keeps orders matching query. "status:<name>" filters by
// status, "~term" is fuzzy, anything else matches invoice, customer name,
// phone and status.
func FilterOrders(orders []domain.Order, query string) []domain.Order {
	query = strings.TrimSpace(query)
	if query == "" {
		return orders
	}
	lower := strings.ToLower(query)

	if status, ok := strings.CutPrefix(lower, "status:"); ok {
		var out []domain.Order
		for _, o := range orders {
			if string(o.Status.Normalized()) == status {
				out = append(out, o)
			}
		}
		return out
	}

	if term, ok := strings.CutPrefix(query, FuzzyPrefix); ok {
		if term = strings.TrimSpace(term); term == "" {
			return orders
		}
		matches := fuzzy.FindFrom(term, orderSource(orders))
		out := make([]domain.Order, 0, len(matches))
		for _, m := range matches {
			out = append(out, orders[m.Index])
		}
		return out
	}

	var out []domain.Order
	for _, o := range orders {
		if strings.Contains(strings.ToLower(orderText(o)), lower) {
			out = append(out, o)
		}
	}
	return out
}

// FilterCategories matches name, slug and description
func FilterCategories(categories []domain.Category, query string) []domain.Category {
	query = strings.TrimSpace(query)
	if query == "" {
		return categories
	}

	if term, ok := strings.CutPrefix(query, FuzzyPrefix); ok {
		if term = strings.TrimSpace(term); term == "" {
			return categories
		}
		matches := fuzzy.FindFrom(term, categorySource(categories))
		out := make([]domain.Category, 0, len(matches))
		for _, m := range matches {
			out = append(out, categories[m.Index])
		}
		return out
	}

	lower := strings.ToLower(query)
	var out []domain.Category
	for _, c := range categories {
		if strings.Contains(strings.ToLower(categoryText(c)), lower) {
			out = append(out, c)
		}
	}
	return out
}
