// Package catalog keeps the dashboard's copy of the shop data in sync with
// the backend. It answers request events from the bus and publishes the
// results.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"time"

	"storedash/internal/api"
	"storedash/internal/domain"
	"storedash/internal/eventbus"
)

const (
	defaultWorkers = 5
	writeTimeout   = 30 * time.Second
	loadTimeout    = 60 * time.Second
)

// Service handles catalog mutations and loads requested over the bus
type Service struct {
	bus        eventbus.EventBus
	backend    api.Backend
	cache      *QueryCache
	store      *Store
	loader     *Loader
	workerPool chan struct{} // Semaphore for limiting concurrent API writes
	unsubs     []func()
}

// NewService wires a service to the bus. Call Close to unsubscribe.
func NewService(bus eventbus.EventBus, backend api.Backend, cache *QueryCache, store *Store) *Service {
	s := &Service{
		bus:        bus,
		backend:    backend,
		cache:      cache,
		store:      store,
		loader:     NewLoader(bus, backend, cache, store),
		workerPool: make(chan struct{}, defaultWorkers),
	}
	if bus == nil {
		return s
	}

	s.unsubs = append(s.unsubs, bus.Subscribe(eventbus.EventLoadRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.LoadRequestedEvent); ok {
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()
			if err := s.loader.Fetch(ctx, event.Resources, event.Fresh); err != nil {
				log.Printf("Catalog: requested load failed: %v", err)
			}
		}
	}))

	s.unsubs = append(s.unsubs, bus.Subscribe(eventbus.EventDeleteRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.DeleteRequestedEvent); ok {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			defer cancel()
			err := s.Delete(ctx, event.Resource, event.ID)
			s.bus.Publish(eventbus.DeleteCompletedEvent{
				Resource: event.Resource,
				ID:       event.ID,
				Label:    event.Label,
				Error:    err,
			})
		}
	}))

	s.unsubs = append(s.unsubs, bus.Subscribe(eventbus.EventCategorySaveRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CategorySaveRequestedEvent); ok {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			defer cancel()
			cat, err := s.SaveCategory(ctx, event.Slug, event.Category)
			s.bus.Publish(eventbus.CategorySavedEvent{
				Created:  event.Slug == "",
				Category: cat,
				Error:    err,
			})
		}
	}))

	s.unsubs = append(s.unsubs, bus.Subscribe(eventbus.EventProductUpdateRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ProductUpdateRequestedEvent); ok {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			defer cancel()
			p, err := s.UpdateProduct(ctx, event.Slug, event.Product.Payload())
			s.bus.Publish(eventbus.ProductUpdatedEvent{Slug: event.Slug, Product: p, Error: err})
		}
	}))

	s.unsubs = append(s.unsubs, bus.Subscribe(eventbus.EventOrderRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.OrderRequestedEvent); ok {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			defer cancel()
			o, err := s.GetOrder(ctx, event.InvoiceID)
			s.bus.Publish(eventbus.OrderFetchedEvent{InvoiceID: event.InvoiceID, Order: o, Error: err})
		}
	}))

	return s
}

// Loader exposes the loader for startup and report runs
func (s *Service) Loader() *Loader {
	return s.loader
}

// Store exposes the shared store
func (s *Service) Store() *Store {
	return s.store
}

// Close unsubscribes from the bus and stops any background load
func (s *Service) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	s.loader.Stop()
}

func (s *Service) acquire(ctx context.Context) (func(), error) {
	select {
	case s.workerPool <- struct{}{}:
		return func() { <-s.workerPool }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Delete removes a record on the backend and from the store. id is the slug
// for categories and products and the invoice id for orders.
func (s *Service) Delete(ctx context.Context, r domain.Resource, id string) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	switch r {
	case domain.ResourceCategories:
		err = s.backend.DeleteCategory(ctx, id)
	case domain.ResourceProducts:
		err = s.backend.DeleteProduct(ctx, id)
	case domain.ResourceOrders:
		err = s.backend.DeleteOrder(ctx, id)
	default:
		return fmt.Errorf("unknown resource %q", r)
	}

	// A record that is already gone on the server is gone locally too
	if err != nil && !errors.Is(err, api.ErrNotFound) {
		log.Printf("Catalog: failed to delete %s %s: %v", r, id, err)
		return fmt.Errorf("failed to delete %s %s: %w", r, id, err)
	}

	s.cache.Invalidate(r)
	s.store.Remove(r, id)
	s.publishResource(r)
	return nil
}

// GetOrder reads one order from the backend and refreshes the stored copy.
// The orders list is republished only when the copy changed.
func (s *Service) GetOrder(ctx context.Context, invoiceID string) (domain.Order, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	defer release()

	o, err := s.backend.GetOrder(ctx, invoiceID)
	if err != nil {
		log.Printf("Catalog: failed to fetch order %s: %v", invoiceID, err)
		return domain.Order{}, fmt.Errorf("failed to fetch order %s: %w", invoiceID, err)
	}

	if !s.store.Loaded(domain.ResourceOrders) {
		return o, nil
	}
	for _, stored := range s.store.Orders() {
		if stored.Key() == o.Key() && reflect.DeepEqual(stored, o) {
			return o, nil
		}
	}
	s.cache.Invalidate(domain.ResourceOrders)
	s.store.UpsertOrder(o)
	s.publishResource(domain.ResourceOrders)
	return o, nil
}

// SaveCategory creates the category when slug is empty and updates it
// otherwise. Product rows show category names, so products are reloaded
// after a rename.
func (s *Service) SaveCategory(ctx context.Context, slug string, c domain.Category) (domain.Category, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return domain.Category{}, err
	}
	defer release()

	var saved domain.Category
	if slug == "" {
		saved, err = s.backend.CreateCategory(ctx, c)
	} else {
		saved, err = s.backend.UpdateCategory(ctx, slug, c)
	}
	if err != nil {
		log.Printf("Catalog: failed to save category %q: %v", c.Name, err)
		return domain.Category{}, fmt.Errorf("failed to save category: %w", err)
	}

	s.cache.Invalidate(domain.ResourceCategories)
	s.store.UpsertCategory(saved)
	s.publishResource(domain.ResourceCategories)

	if slug != "" {
		s.cache.Invalidate(domain.ResourceProducts)
		if s.store.Loaded(domain.ResourceProducts) {
			if err := s.loader.Fetch(ctx, []domain.Resource{domain.ResourceProducts}, true); err != nil {
				log.Printf("Catalog: product reload after category rename failed: %v", err)
			}
		}
	}
	return saved, nil
}

// UpdateProduct sends edited product info and stores the server's copy
func (s *Service) UpdateProduct(ctx context.Context, slug string, p domain.ProductPayload) (domain.Product, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	defer release()

	updated, err := s.backend.UpdateProduct(ctx, slug, p)
	if err != nil {
		log.Printf("Catalog: failed to update product %s: %v", slug, err)
		return domain.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	s.cache.Invalidate(domain.ResourceProducts)
	s.store.UpsertProduct(updated)
	s.publishResource(domain.ResourceProducts)
	return updated, nil
}

// publishResource re-announces the store's copy of r after a mutation
func (s *Service) publishResource(r domain.Resource) {
	if s.bus == nil {
		return
	}
	if e := loadedEvent(s.store, r); e != nil {
		s.bus.Publish(e)
	}
}
