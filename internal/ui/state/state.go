package state

import (
	"storedash/internal/domain"
	"storedash/internal/kpi"
)

// Page is one screen of the dashboard
type Page int

const (
	PageDashboard Page = iota
	PageProducts
	PageOrders
	PageCategories
)

// Pages lists the pages in tab order
var Pages = []Page{PageDashboard, PageProducts, PageOrders, PageCategories}

// Title is the tab label of the page
func (p Page) Title() string {
	switch p {
	case PageProducts:
		return "Products"
	case PageOrders:
		return "Orders"
	case PageCategories:
		return "Categories"
	default:
		return "Dashboard"
	}
}

// Resource is the collection a list page shows; the dashboard has none
func (p Page) Resource() domain.Resource {
	switch p {
	case PageProducts:
		return domain.ResourceProducts
	case PageOrders:
		return domain.ResourceOrders
	case PageCategories:
		return domain.ResourceCategories
	default:
		return ""
	}
}

// IsList reports whether the page shows a windowed list
func (p Page) IsList() bool {
	return p.Resource() != ""
}

// SortKeys lists the orderings a page offers
func (p Page) SortKeys() []kpi.SortKey {
	switch p {
	case PageProducts:
		return kpi.ProductSortKeys
	case PageOrders:
		return kpi.OrderSortKeys
	case PageCategories:
		return kpi.CategorySortKeys
	default:
		return nil
	}
}

// SortOptions expands the keys of a page into ascending and descending
// orderings, server order first
func (p Page) SortOptions() []kpi.Sort {
	var out []kpi.Sort
	for _, k := range p.SortKeys() {
		if k == kpi.SortByNone {
			out = append(out, kpi.Sort{})
			continue
		}
		out = append(out, kpi.Sort{Key: k}, kpi.Sort{Key: k, Desc: true})
	}
	return out
}

// PageState is the per-page view configuration
type PageState struct {
	Filter    string
	SortIndex int
}

// DeleteTarget is the item awaiting delete confirmation
type DeleteTarget struct {
	Resource domain.Resource
	ID       string
	Label    string
}

// AppState contains all the application state
type AppState struct {
	Page  Page
	Pages map[Page]*PageState

	// Data as last published by the catalog
	Categories []domain.Category
	Products   []domain.Product
	Orders     []domain.Order
	Summary    kpi.Summary

	Loading       bool
	Loaded        map[domain.Resource]bool
	seq           map[domain.Resource]uint64
	PendingDelete *DeleteTarget

	// Filter value before the filter prompt opened, restored on cancel
	FilterBackup string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	s := &AppState{
		Page:   PageDashboard,
		Pages:  make(map[Page]*PageState, len(Pages)),
		Loaded: make(map[domain.Resource]bool),
		seq:    make(map[domain.Resource]uint64),
	}
	for _, p := range Pages {
		s.Pages[p] = &PageState{}
	}
	s.Summary = kpi.Summarize(nil, nil, nil)
	return s
}

// Current returns the state of the active page
func (s *AppState) Current() *PageState {
	return s.Pages[s.Page]
}

// Sort returns the ordering selected on a page
func (s *AppState) Sort(p Page) kpi.Sort {
	opts := p.SortOptions()
	idx := s.Pages[p].SortIndex
	if idx < 0 || idx >= len(opts) {
		return kpi.Sort{}
	}
	return opts[idx]
}

// Accept records seq for r and reports whether a copy carrying it is newer
// than the last one applied. Zero is always accepted.
func (s *AppState) Accept(r domain.Resource, seq uint64) bool {
	if seq == 0 {
		return true
	}
	if seq < s.seq[r] {
		return false
	}
	s.seq[r] = seq
	return true
}

// UpdateProduct replaces the product with the same key. It reports whether
// one was found.
func (s *AppState) UpdateProduct(p domain.Product) bool {
	for i := range s.Products {
		if s.Products[i].Key() == p.Key() {
			s.Products[i] = p
			s.summarize()
			return true
		}
	}
	return false
}

// SetCategories replaces the categories and refreshes the summary
func (s *AppState) SetCategories(categories []domain.Category) {
	s.Categories = categories
	s.Loaded[domain.ResourceCategories] = true
	s.summarize()
}

// SetProducts replaces the products and refreshes the summary
func (s *AppState) SetProducts(products []domain.Product) {
	s.Products = products
	s.Loaded[domain.ResourceProducts] = true
	s.summarize()
}

// SetOrders replaces the orders and refreshes the summary
func (s *AppState) SetOrders(orders []domain.Order) {
	s.Orders = orders
	s.Loaded[domain.ResourceOrders] = true
	s.summarize()
}

func (s *AppState) summarize() {
	s.Summary = kpi.Summarize(s.Categories, s.Products, s.Orders)
}

// VisibleProducts applies the products page filter and sort
func (s *AppState) VisibleProducts() []domain.Product {
	filtered := kpi.FilterProducts(s.Products, s.Pages[PageProducts].Filter)
	return kpi.SortProducts(filtered, s.Sort(PageProducts))
}

// VisibleOrders applies the orders page filter and sort
func (s *AppState) VisibleOrders() []domain.Order {
	filtered := kpi.FilterOrders(s.Orders, s.Pages[PageOrders].Filter)
	return kpi.SortOrders(filtered, s.Sort(PageOrders))
}

// VisibleCategories applies the categories page filter and sort. The
// returned counts map category id to number of products.
func (s *AppState) VisibleCategories() ([]domain.Category, map[string]int) {
	counts := kpi.CategoryCounts(s.Products)
	filtered := kpi.FilterCategories(s.Categories, s.Pages[PageCategories].Filter)
	return kpi.SortCategories(filtered, counts, s.Sort(PageCategories)), counts
}
