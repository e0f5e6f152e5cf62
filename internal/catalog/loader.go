package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"storedash/internal/api"
	"storedash/internal/domain"
	"storedash/internal/eventbus"
)

// ErrLoadInProgress is returned by Start while a previous load is running
var ErrLoadInProgress = errors.New("load already in progress")

// Loader fetches collections from the backend into the store
type Loader struct {
	bus     eventbus.EventBus
	backend api.Backend
	cache   *QueryCache
	store   *Store

	mu         sync.Mutex
	isLoading  bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewLoader creates a loader. bus and cache may be nil.
func NewLoader(bus eventbus.EventBus, backend api.Backend, cache *QueryCache, store *Store) *Loader {
	return &Loader{
		bus:     bus,
		backend: backend,
		cache:   cache,
		store:   store,
	}
}

// Start loads resources in the background. Empty resources means all of them.
func (l *Loader) Start(ctx context.Context, resources []domain.Resource, fresh bool) error {
	l.mu.Lock()
	if l.isLoading {
		l.mu.Unlock()
		return ErrLoadInProgress
	}
	l.isLoading = true

	loadCtx, cancel := context.WithCancel(ctx)
	l.cancelFunc = cancel
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer func() {
			cancel()
			l.mu.Lock()
			l.isLoading = false
			l.cancelFunc = nil
			l.mu.Unlock()
		}()

		if err := l.Fetch(loadCtx, resources, fresh); err != nil {
			log.Printf("Catalog: load finished with errors: %v", err)
		}
	}()

	return nil
}

// Stop cancels a running load and waits for it
func (l *Loader) Stop() {
	l.mu.Lock()
	if l.cancelFunc != nil {
		l.cancelFunc()
	}
	l.mu.Unlock()

	l.wg.Wait()
}

// Loading reports whether a background load is running
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isLoading
}

// LoadAll fetches every collection and waits for all of them
func (l *Loader) LoadAll(ctx context.Context) error {
	return l.Fetch(ctx, domain.AllResources, false)
}

// Fetch loads resources concurrently and returns the joined errors
func (l *Loader) Fetch(ctx context.Context, resources []domain.Resource, fresh bool) error {
	if len(resources) == 0 {
		resources = domain.AllResources
	}
	l.publish(eventbus.LoadStartedEvent{Resources: resources})

	errs := make([]error, len(resources))
	var wg sync.WaitGroup
	for i, r := range resources {
		wg.Add(1)
		go func(i int, r domain.Resource) {
			defer wg.Done()
			errs[i] = l.fetchOne(ctx, r, fresh)
		}(i, r)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	l.publish(eventbus.LoadFinishedEvent{Loaded: len(resources) - failed, Failed: failed})
	return errors.Join(errs...)
}

func (l *Loader) fetchOne(ctx context.Context, r domain.Resource, fresh bool) error {
	var err error
	switch r {
	case domain.ResourceCategories:
		var cats []domain.Category
		cats, err = cached(l.cache, r, fresh, func() ([]domain.Category, error) {
			return l.backend.ListCategories(ctx)
		})
		if err == nil {
			l.store.SetCategories(cats)
			l.publish(loadedEvent(l.store, r))
		}
	case domain.ResourceProducts:
		var products []domain.Product
		products, err = cached(l.cache, r, fresh, func() ([]domain.Product, error) {
			return l.backend.ListProducts(ctx)
		})
		if err == nil {
			l.store.SetProducts(products)
			l.publish(loadedEvent(l.store, r))
		}
	case domain.ResourceOrders:
		var orders []domain.Order
		orders, err = cached(l.cache, r, fresh, func() ([]domain.Order, error) {
			return l.backend.ListOrders(ctx)
		})
		if err == nil {
			l.store.SetOrders(orders)
			l.publish(loadedEvent(l.store, r))
		}
	default:
		err = fmt.Errorf("unknown resource %q", r)
	}

	if err != nil {
		err = fmt.Errorf("failed to load %s: %w", r, err)
		log.Printf("Catalog: %v", err)
		l.publish(eventbus.ErrorEvent{Message: fmt.Sprintf("Failed to load %s", r), Err: err})
	}
	return err
}

func (l *Loader) publish(e eventbus.DomainEvent) {
	if l.bus != nil {
		l.bus.Publish(e)
	}
}
