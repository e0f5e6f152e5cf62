package catalog

import (
	"sync"

	"storedash/internal/domain"
	"storedash/internal/eventbus"
)

// Snapshot is a point-in-time copy of every collection
type Snapshot struct {
	Categories []domain.Category
	Products   []domain.Product
	Orders     []domain.Order
}

// Store is the in-memory copy of the backend collections. Readers always get
// copies.
type Store struct {
	mu         sync.RWMutex
	categories []domain.Category
	products   []domain.Product
	orders     []domain.Order
	loaded     map[domain.Resource]bool

	// rev grows with every change so published copies can be ordered
	rev uint64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{loaded: make(map[domain.Resource]bool)}
}

func (s *Store) SetCategories(c []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append([]domain.Category(nil), c...)
	s.loaded[domain.ResourceCategories] = true
	s.rev++
}

func (s *Store) SetProducts(p []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]domain.Product(nil), p...)
	s.loaded[domain.ResourceProducts] = true
	s.rev++
}

func (s *Store) SetOrders(o []domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append([]domain.Order(nil), o...)
	s.loaded[domain.ResourceOrders] = true
	s.rev++
}

func (s *Store) Categories() []domain.Category {
	c, _ := s.CategoriesRev()
	return c
}

// CategoriesRev returns a copy of the categories with the revision it was taken at
func (s *Store) CategoriesRev() ([]domain.Category, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...), s.rev
}

func (s *Store) Products() []domain.Product {
	c, _ := s.ProductsRev()
	return c
}

// ProductsRev returns a copy of the products with the revision it was taken at
func (s *Store) ProductsRev() ([]domain.Product, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...), s.rev
}

func (s *Store) Orders() []domain.Order {
	c, _ := s.OrdersRev()
	return c
}

// OrdersRev returns a copy of the orders with the revision it was taken at
func (s *Store) OrdersRev() ([]domain.Order, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Order(nil), s.orders...), s.rev
}

// Loaded reports whether r has been filled at least once
func (s *Store) Loaded(r domain.Resource) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded[r]
}

// Snapshot copies all three collections under one lock
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Categories: append([]domain.Category(nil), s.categories...),
		Products:   append([]domain.Product(nil), s.products...),
		Orders:     append([]domain.Order(nil), s.orders...),
	}
}

// UpsertCategory replaces the category with the same key or appends it
func (s *Store) UpsertCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].Key() == c.Key() {
			s.categories[i] = c
			s.rev++
			return
		}
	}
	s.categories = append(s.categories, c)
	s.rev++
}

// UpsertProduct replaces the product with the same key or appends it
func (s *Store) UpsertProduct(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].Key() == p.Key() {
			s.products[i] = p
			s.rev++
			return
		}
	}
	s.products = append(s.products, p)
	s.rev++
}

// UpsertOrder replaces the order with the same key or appends it
func (s *Store) UpsertOrder(o domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].Key() == o.Key() {
			s.orders[i] = o
			s.rev++
			return
		}
	}
	s.orders = append(s.orders, o)
	s.rev++
}

// Remove drops the record addressed by id: the slug for categories and
// products or the invoice id for orders, with the record key as a fallback
// for records that lack one. It reports whether anything matched.
func (s *Store) Remove(r domain.Resource, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed bool
	switch r {
	case domain.ResourceCategories:
		s.categories, removed = removeFirst(s.categories, func(c domain.Category) bool {
			return c.Slug == id || c.Key() == id
		})
	case domain.ResourceProducts:
		s.products, removed = removeFirst(s.products, func(p domain.Product) bool {
			return p.Slug == id || p.Key() == id
		})
	case domain.ResourceOrders:
		s.orders, removed = removeFirst(s.orders, func(o domain.Order) bool {
			return o.InvoiceID == id || o.Key() == id
		})
	}
	if removed {
		s.rev++
	}
	return removed
}

// loadedEvent wraps the current copy of r in its loaded event
func loadedEvent(s *Store, r domain.Resource) eventbus.DomainEvent {
	switch r {
	case domain.ResourceCategories:
		c, rev := s.CategoriesRev()
		return eventbus.CategoriesLoadedEvent{Categories: c, Seq: rev}
	case domain.ResourceProducts:
		p, rev := s.ProductsRev()
		return eventbus.ProductsLoadedEvent{Products: p, Seq: rev}
	case domain.ResourceOrders:
		o, rev := s.OrdersRev()
		return eventbus.OrdersLoadedEvent{Orders: o, Seq: rev}
	}
	return nil
}

func removeFirst[T any](items []T, match func(T) bool) ([]T, bool) {
	for i, item := range items {
		if match(item) {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
