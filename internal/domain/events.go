package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventLoadRequested          EventType = "LoadRequested"
	EventLoadStarted            EventType = "LoadStarted"
	EventCategoriesLoaded       EventType = "CategoriesLoaded"
	EventProductsLoaded         EventType = "ProductsLoaded"
	EventOrdersLoaded           EventType = "OrdersLoaded"
	EventLoadFinished           EventType = "LoadFinished"
	EventDeleteRequested        EventType = "DeleteRequested"
	EventDeleteCompleted        EventType = "DeleteCompleted"
	EventCategorySaveRequested  EventType = "CategorySaveRequested"
	EventCategorySaved          EventType = "CategorySaved"
	EventProductUpdateRequested EventType = "ProductUpdateRequested"
	EventProductUpdated         EventType = "ProductUpdated"
	EventOrderRequested         EventType = "OrderRequested"
	EventOrderFetched           EventType = "OrderFetched"
	EventError                  EventType = "Error"
	EventConfigLoaded           EventType = "ConfigLoaded"
	EventConfigSaved            EventType = "ConfigSaved"
	EventConfigChanged          EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LoadRequestedEvent asks for one or more collections to be (re)fetched
type LoadRequestedEvent struct {
	Resources []Resource // Empty means everything
	Fresh     bool       // bypass the query cache
}

func (e LoadRequestedEvent) Type() EventType { return EventLoadRequested }

// LoadStartedEvent is emitted when a load round begins
type LoadStartedEvent struct {
	Resources []Resource
}

func (e LoadStartedEvent) Type() EventType { return EventLoadStarted }

// CategoriesLoadedEvent carries a fresh category list. Seq orders copies of
// the same collection; zero means unordered.
type CategoriesLoadedEvent struct {
	Categories []Category
	Seq        uint64
}

func (e CategoriesLoadedEvent) Type() EventType { return EventCategoriesLoaded }

// ProductsLoadedEvent carries a fresh product list
type ProductsLoadedEvent struct {
	Products []Product
	Seq      uint64
}

func (e ProductsLoadedEvent) Type() EventType { return EventProductsLoaded }

// OrdersLoadedEvent carries a fresh order list
type OrdersLoadedEvent struct {
	Orders []Order
	Seq    uint64
}

func (e OrdersLoadedEvent) Type() EventType { return EventOrdersLoaded }

// LoadFinishedEvent is emitted when every requested collection has been handled
type LoadFinishedEvent struct {
	Loaded int
	Failed int
}

func (e LoadFinishedEvent) Type() EventType { return EventLoadFinished }

// DeleteRequestedEvent asks for a record to be removed. ID is the slug for
// categories and products and the invoice id for orders.
type DeleteRequestedEvent struct {
	Resource Resource
	ID       string
	Label    string
}

func (e DeleteRequestedEvent) Type() EventType { return EventDeleteRequested }

// DeleteCompletedEvent reports the outcome of a delete
type DeleteCompletedEvent struct {
	Resource Resource
	ID       string
	Label    string
	Error    error
}

func (e DeleteCompletedEvent) Type() EventType { return EventDeleteCompleted }

// CategorySaveRequestedEvent creates a category, or updates it when Slug is set
type CategorySaveRequestedEvent struct {
	Slug     string
	Category Category
}

func (e CategorySaveRequestedEvent) Type() EventType { return EventCategorySaveRequested }

// CategorySavedEvent reports the outcome of a category create or update
type CategorySavedEvent struct {
	Created  bool
	Category Category
	Error    error
}

func (e CategorySavedEvent) Type() EventType { return EventCategorySaved }

// ProductUpdateRequestedEvent sends edited product info to the backend
type ProductUpdateRequestedEvent struct {
	Slug    string
	Product Product
}

func (e ProductUpdateRequestedEvent) Type() EventType { return EventProductUpdateRequested }

// ProductUpdatedEvent reports the outcome of a product update. Slug is the
// one the request was sent for.
type ProductUpdatedEvent struct {
	Slug    string
	Product Product
	Error   error
}

func (e ProductUpdatedEvent) Type() EventType { return EventProductUpdated }

// OrderRequestedEvent asks for the backend's current copy of one order
type OrderRequestedEvent struct {
	InvoiceID string
}

func (e OrderRequestedEvent) Type() EventType { return EventOrderRequested }

// OrderFetchedEvent answers an OrderRequestedEvent
type OrderFetchedEvent struct {
	InvoiceID string
	Order     Order
	Error     error
}

func (e OrderFetchedEvent) Type() EventType { return EventOrderFetched }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path  string
	Theme string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when a setting changed and should be persisted
type ConfigChangedEvent struct {
	Theme string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
