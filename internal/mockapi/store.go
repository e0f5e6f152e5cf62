package mockapi

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ettle/strcase"
	"github.com/google/uuid"

	"storedash/internal/domain"
)

var (
	errNotFound = errors.New("not found")
	errConflict = errors.New("conflict")
)

// store holds the mock collections in memory
type store struct {
	mu         sync.RWMutex
	categories []domain.Category
	products   []domain.Product
	orders     []domain.Order
}

func newStore(seed *Seed) *store {
	s := &store{}
	if seed == nil {
		return s
	}
	s.categories = append(s.categories, seed.Categories...)
	s.products = append(s.products, seed.Products...)
	s.orders = append(s.orders, seed.Orders...)
	for i := range s.categories {
		if s.categories[i].ID == "" {
			s.categories[i].ID = uuid.NewString()
		}
		if s.categories[i].Slug == "" {
			s.categories[i].Slug = slugify(s.categories[i].Name)
		}
	}
	for i := range s.products {
		if s.products[i].ID == "" {
			s.products[i].ID = uuid.NewString()
		}
		if s.products[i].Slug == "" {
			s.products[i].Slug = slugify(s.products[i].Name)
		}
	}
	return s
}

func slugify(name string) string {
	return strcase.ToKebab(strings.TrimSpace(name))
}

func (s *store) listCategories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Category(nil), s.categories...)
}

func (s *store) listProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Product(nil), s.products...)
}

func (s *store) listOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Order(nil), s.orders...)
}

func (s *store) categoryIndex(slug string) int {
	for i, c := range s.categories {
		if c.Slug == slug {
			return i
		}
	}
	return -1
}

func (s *store) slugTaken(slug string, except int) bool {
	for i, c := range s.categories {
		if i != except && c.Slug == slug {
			return true
		}
	}
	return false
}

func (s *store) createCategory(name, description string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug := slugify(name)
	if s.slugTaken(slug, -1) {
		return domain.Category{}, fmt.Errorf("%w: category %q already exists", errConflict, name)
	}
	c := domain.Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Slug:        slug,
		Description: description,
	}
	s.categories = append(s.categories, c)
	return c, nil
}

func (s *store) updateCategory(slug, name, description string) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(slug)
	if i < 0 {
		return domain.Category{}, fmt.Errorf("%w: category %s", errNotFound, slug)
	}
	newSlug := slugify(name)
	if s.slugTaken(newSlug, i) {
		return domain.Category{}, fmt.Errorf("%w: category %q already exists", errConflict, name)
	}

	c := &s.categories[i]
	c.Name = strings.TrimSpace(name)
	c.Slug = newSlug
	c.Description = description
	for j := range s.products {
		if s.products[j].Category.ID == c.ID {
			s.products[j].Category.Name = c.Name
		}
	}
	return *c, nil
}

func (s *store) deleteCategory(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(slug)
	if i < 0 {
		return fmt.Errorf("%w: category %s", errNotFound, slug)
	}
	id := s.categories[i].ID
	for _, p := range s.products {
		if p.Category.ID == id {
			return fmt.Errorf("%w: category %s still has products", errConflict, slug)
		}
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)
	return nil
}

func (s *store) updateProduct(slug string, in domain.ProductPayload) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.products {
		if p.Slug == slug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.Product{}, fmt.Errorf("%w: product %s", errNotFound, slug)
	}

	ref := domain.CategoryRef{ID: in.Category}
	found := false
	for _, c := range s.categories {
		if c.ID == in.Category {
			ref.Name = c.Name
			found = true
			break
		}
	}
	if !found {
		return domain.Product{}, fmt.Errorf("%w: category %s", errNotFound, in.Category)
	}

	p := &s.products[idx]
	p.Name = in.Name
	p.Brand = in.Brand
	p.SKU = in.SKU
	p.ShortDescription = in.ShortDescription
	p.Description = in.Description
	p.Category = ref
	p.Price = in.Price
	p.DiscountType = in.DiscountType
	p.DiscountValue = in.DiscountValue
	p.Stock = in.Stock
	p.IsNew = in.IsNew
	p.IsSale = in.IsSale
	p.IsLimited = in.IsLimited
	p.IsHot = in.IsHot
	p.IsFeatured = in.IsFeatured
	p.IsBestSelling = in.IsBestSelling
	p.Colors = append([]string(nil), in.Colors...)
	p.Sizes = append([]string(nil), in.Sizes...)
	return *p, nil
}

func (s *store) deleteProduct(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.Slug == slug {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: product %s", errNotFound, slug)
}

func (s *store) getOrder(invoiceID string) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.InvoiceID == invoiceID {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("%w: order %s", errNotFound, invoiceID)
}

func (s *store) deleteOrder(invoiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.orders {
		if o.InvoiceID == invoiceID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: order %s", errNotFound, invoiceID)
}
