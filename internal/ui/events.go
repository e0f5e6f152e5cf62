package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/domain"
	"storedash/internal/eventbus"
	"storedash/internal/ui/state"
	"storedash/internal/ui/views"
)

// handleEvent applies a domain event forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.LoadStartedEvent:
		m.state.Loading = true

	case eventbus.CategoriesLoadedEvent:
		if !m.state.Accept(domain.ResourceCategories, e.Seq) {
			log.Printf("Dropping stale categories (seq %d)", e.Seq)
			return nil
		}
		m.state.SetCategories(e.Categories)
		m.refreshPage(state.PageCategories)

	case eventbus.ProductsLoadedEvent:
		if !m.state.Accept(domain.ResourceProducts, e.Seq) {
			log.Printf("Dropping stale products (seq %d)", e.Seq)
			return nil
		}
		m.state.SetProducts(e.Products)
		m.overlayPendingStock()
		m.refreshPage(state.PageProducts)
		// Product counts per category depend on the products
		m.refreshPage(state.PageCategories)

	case eventbus.OrdersLoadedEvent:
		if !m.state.Accept(domain.ResourceOrders, e.Seq) {
			log.Printf("Dropping stale orders (seq %d)", e.Seq)
			return nil
		}
		m.state.SetOrders(e.Orders)
		m.refreshPage(state.PageOrders)

	case eventbus.LoadFinishedEvent:
		m.state.Loading = false
		if m.refreshing {
			m.refreshing = false
			if e.Failed == 0 {
				m.toast(views.ToastSuccess, "Reloaded")
			}
		}

	case eventbus.DeleteCompletedEvent:
		if e.Error != nil {
			log.Printf("Delete %s %s failed: %v", e.Resource, e.ID, e.Error)
			m.toast(views.ToastError, "Could not delete %q: %v", e.Label, e.Error)
			return nil
		}
		m.toast(views.ToastSuccess, "Deleted %s %q", noun(e.Resource), e.Label)

	case eventbus.CategorySavedEvent:
		if e.Error != nil {
			m.toast(views.ToastError, "Could not save category: %v", e.Error)
			return nil
		}
		if e.Created {
			m.toast(views.ToastSuccess, "Created category %q", e.Category.Name)
		} else {
			m.toast(views.ToastSuccess, "Updated category %q", e.Category.Name)
		}

	case eventbus.ProductUpdatedEvent:
		m.settleStock(e.Slug, e.Error != nil)
		if e.Error != nil {
			m.toast(views.ToastError, "Could not update product: %v", e.Error)
			// The list was updated ahead of the reply
			return m.requestLoad([]domain.Resource{domain.ResourceProducts}, true)
		}
		m.toast(views.ToastSuccess, "%s: %d in stock", e.Product.Name, e.Product.Stock)

	case eventbus.OrderFetchedEvent:
		if o, ok := m.fetchedOrder(e); ok {
			return m.showOrder(o)
		}

	case eventbus.ErrorEvent:
		m.toast(views.ToastError, "%s", e.Message)

	case eventbus.ConfigSavedEvent:
		log.Printf("Config saved to %s", e.Path)
	}
	return nil
}
