package kpi

import (
	"sort"
	"strings"

	"storedash/internal/domain"
)

// SortKey names a column a page can be ordered by
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByStock    SortKey = "stock"
	SortByCategory SortKey = "category"
	SortByInvoice  SortKey = "invoice"
	SortByCustomer SortKey = "customer"
	SortByTotal    SortKey = "total"
	SortByStatus   SortKey = "status"
	SortByProducts SortKey = "products"
	SortByNone     SortKey = ""
)

// Sort is a key and a direction
type Sort struct {
	Key  SortKey
	Desc bool
}

// ProductSortKeys lists the keys the products page offers
var ProductSortKeys = []SortKey{SortByNone, SortByName, SortByPrice, SortByStock, SortByCategory}

// OrderSortKeys lists the keys the orders page offers
var OrderSortKeys = []SortKey{SortByNone, SortByInvoice, SortByCustomer, SortByTotal, SortByStatus}

// CategorySortKeys lists the keys the categories page offers
var CategorySortKeys = []SortKey{SortByNone, SortByName, SortByProducts}

// Label is the text shown in the sort picker
func (s Sort) Label() string {
	if s.Key == SortByNone {
		return "server order"
	}
	dir := "asc"
	if s.Desc {
		dir = "desc"
	}
	return string(s.Key) + " " + dir
}

func less(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func apply(c int, desc bool) bool {
	if desc {
		return c > 0
	}
	return c < 0
}

// SortProducts returns a sorted copy. SortByNone keeps server order.
func SortProducts(products []domain.Product, s Sort) []domain.Product {
	out := append([]domain.Product(nil), products...)
	if s.Key == SortByNone {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var c int
		switch s.Key {
		case SortByPrice:
			c = cmpFloat(a.FinalPrice(), b.FinalPrice())
		case SortByStock:
			c = a.Stock - b.Stock
		case SortByCategory:
			c = less(a.Category.Name, b.Category.Name)
		default:
			c = less(a.Name, b.Name)
		}
		return apply(c, s.Desc)
	})
	return out
}

// statusRank orders statuses the way they are listed on the dashboard
func statusRank(st domain.OrderStatus) int {
	n := st.Normalized()
	for i, known := range domain.OrderStatuses {
		if known == n {
			return i
		}
	}
	return len(domain.OrderStatuses)
}

// SortOrders returns a sorted copy
func SortOrders(orders []domain.Order, s Sort) []domain.Order {
	out := append([]domain.Order(nil), orders...)
	if s.Key == SortByNone {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var c int
		switch s.Key {
		case SortByCustomer:
			c = less(a.Customer.FullName, b.Customer.FullName)
		case SortByTotal:
			c = cmpFloat(a.TotalAmount, b.TotalAmount)
		case SortByStatus:
			c = statusRank(a.Status) - statusRank(b.Status)
		default:
			c = less(a.InvoiceID, b.InvoiceID)
		}
		return apply(c, s.Desc)
	})
	return out
}

// SortCategories returns a sorted copy. counts maps category id to product
// count and is only used for SortByProducts.
func SortCategories(categories []domain.Category, counts map[string]int, s Sort) []domain.Category {
	out := append([]domain.Category(nil), categories...)
	if s.Key == SortByNone {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		var c int
		if s.Key == SortByProducts {
			c = counts[a.ID] - counts[b.ID]
		} else {
			c = less(a.Name, b.Name)
		}
		return apply(c, s.Desc)
	})
	return out
}
