package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"storedash/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventLoadRequested          = domain.EventLoadRequested
	EventLoadStarted            = domain.EventLoadStarted
	EventCategoriesLoaded       = domain.EventCategoriesLoaded
	EventProductsLoaded         = domain.EventProductsLoaded
	EventOrdersLoaded           = domain.EventOrdersLoaded
	EventLoadFinished           = domain.EventLoadFinished
	EventDeleteRequested        = domain.EventDeleteRequested
	EventDeleteCompleted        = domain.EventDeleteCompleted
	EventCategorySaveRequested  = domain.EventCategorySaveRequested
	EventCategorySaved          = domain.EventCategorySaved
	EventProductUpdateRequested = domain.EventProductUpdateRequested
	EventProductUpdated         = domain.EventProductUpdated
	EventOrderRequested         = domain.EventOrderRequested
	EventOrderFetched           = domain.EventOrderFetched
	EventError                  = domain.EventError
	EventConfigLoaded           = domain.EventConfigLoaded
	EventConfigSaved            = domain.EventConfigSaved
	EventConfigChanged          = domain.EventConfigChanged
)

// Re-export domain event types
type LoadRequestedEvent = domain.LoadRequestedEvent
type LoadStartedEvent = domain.LoadStartedEvent
type CategoriesLoadedEvent = domain.CategoriesLoadedEvent
type ProductsLoadedEvent = domain.ProductsLoadedEvent
type OrdersLoadedEvent = domain.OrdersLoadedEvent
type LoadFinishedEvent = domain.LoadFinishedEvent
type DeleteRequestedEvent = domain.DeleteRequestedEvent
type DeleteCompletedEvent = domain.DeleteCompletedEvent
type CategorySaveRequestedEvent = domain.CategorySaveRequestedEvent
type CategorySavedEvent = domain.CategorySavedEvent
type ProductUpdateRequestedEvent = domain.ProductUpdateRequestedEvent
type ProductUpdatedEvent = domain.ProductUpdatedEvent
type OrderRequestedEvent = domain.OrderRequestedEvent
type OrderFetchedEvent = domain.OrderFetchedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	log.Printf("EventBus: Publishing event %s", event.Type())

	select {
	case <-b.quit:
		log.Printf("EventBus: closed, dropping event %s", event.Type())
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				kept := make([]subscription, 0, len(subs)-1)
				kept = append(kept, subs[:i]...)
				b.handlers[eventType] = append(kept, subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Queued events are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Make a copy to avoid holding lock during handler execution
			handlersCopy := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlersCopy[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				// Call handler in a goroutine to avoid blocking
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
