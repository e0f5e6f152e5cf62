package ui

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/config"
	"storedash/internal/domain"
	"storedash/internal/eventbus"
	inputtypes "storedash/internal/ui/input/types"
	"storedash/internal/ui/state"
	"storedash/internal/ui/views"
)

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		if pv := m.activeView(); pv != nil {
			pv.Navigate(a.Direction)
		}

	case inputtypes.SwitchPageAction:
		m.switchPage(a)

	case inputtypes.UpdateTextAction:
		// Filtering is live while the prompt is open
		if m.inputHandler.CurrentMode() == inputtypes.ModeFilter {
			m.setFilter(a.Text)
		}

	case inputtypes.SubmitTextAction:
		if a.Mode == inputtypes.ModeFilter {
			m.setFilter(strings.TrimSpace(a.Text))
		}

	case inputtypes.CancelTextAction:
		if m.prevMode == inputtypes.ModeFilter {
			m.setFilter(m.state.FilterBackup)
		}

	case inputtypes.ClearFilterAction:
		m.setFilter("")

	case inputtypes.DismissToastAction:
		if t, ok := m.toasts.Newest(); ok {
			m.toasts.Dismiss(t.ID)
		}

	case inputtypes.RefreshAction:
		var resources []domain.Resource
		if r := m.state.Page.Resource(); r != "" {
			resources = []domain.Resource{r}
		}
		m.refreshing = true
		m.state.Loading = true
		return m.requestLoad(resources, true)

	case inputtypes.ToggleHelpAction:
		return m.fetchHelpPager()

	case inputtypes.OpenDetailsAction:
		return m.openDetails()

	case inputtypes.ToggleThemeAction:
		theme := config.ThemeLight
		if m.config.UI.Theme == config.ThemeLight {
			theme = config.ThemeDark
		}
		m.applyTheme(theme)
		m.publish(eventbus.ConfigChangedEvent{Theme: theme})

	case inputtypes.DeleteAction:
		t := m.state.PendingDelete
		if t == nil {
			return nil
		}
		log.Printf("Deleting %s %s", t.Resource, t.ID)
		m.publish(eventbus.DeleteRequestedEvent{Resource: t.Resource, ID: t.ID, Label: t.Label})
		m.toast(views.ToastInfo, "Deleting %s %q…", noun(t.Resource), t.Label)

	case inputtypes.SaveCategoryAction:
		return m.saveCategory(a)

	case inputtypes.SaveProductAction:
		m.saveProduct(a)

	case inputtypes.AdjustStockAction:
		m.adjustStock(a.Delta)

	case inputtypes.QuitAction:
		return func() tea.Msg { return quitMsg{} }

	case inputtypes.SortByAction:
		m.state.Current().SortIndex = a.Index
		m.sortCursor = a.Index
		m.refreshPage(m.state.Page)
		if pv := m.activeView(); pv != nil {
			pv.Navigate("home")
		}

	case inputtypes.UpdateSortIndexAction:
		m.sortCursor = a.Index
	}

	return nil
}

func (m *Model) switchPage(a inputtypes.SwitchPageAction) {
	page := a.Page
	if a.Delta != 0 {
		n := len(state.Pages)
		page = state.Page(((int(m.state.Page)+a.Delta)%n + n) % n)
	}
	m.state.Page = page
}

// setFilter applies a filter to the current page and puts the cursor on
// the first match
func (m *Model) setFilter(filter string) {
	ps := m.state.Current()
	if ps.Filter == filter {
		return
	}
	ps.Filter = filter
	m.refreshPage(m.state.Page)
	if pv := m.activeView(); pv != nil {
		pv.Navigate("home")
	}
}

func (m *Model) openDetails() tea.Cmd {
	switch m.state.Page {
	case state.PageProducts:
		p, ok := m.products.Selected()
		if !ok {
			return nil
		}
		return m.showPager(p.Name, productDetails(m.renderer.Styles(), p, m.contentWidth()))

	case state.PageOrders:
		o, ok := m.orders.Selected()
		if !ok {
			return nil
		}
		// Orders change status on the server, so details show a fresh copy
		if m.bus != nil && o.InvoiceID != "" {
			m.pendingOrder = o.InvoiceID
			m.publish(eventbus.OrderRequestedEvent{InvoiceID: o.InvoiceID})
			m.toast(views.ToastInfo, "Loading order %s…", o.InvoiceID)
			return nil
		}
		return m.showOrder(o)
	}
	return nil
}

func (m *Model) showOrder(o domain.Order) tea.Cmd {
	names := make(map[string]string, len(m.state.Products))
	for _, p := range m.state.Products {
		names[p.ID] = p.Name
	}
	return m.showPager("order "+o.InvoiceID, orderDetails(m.renderer.Styles(), o, names))
}

// fetchedOrder picks the order to show for a fetch reply. Replies for an
// earlier request are ignored; a failed fetch falls back to the listed copy.
func (m *Model) fetchedOrder(e eventbus.OrderFetchedEvent) (domain.Order, bool) {
	if m.pendingOrder == "" || e.InvoiceID != m.pendingOrder {
		return domain.Order{}, false
	}
	m.pendingOrder = ""
	if e.Error == nil {
		return e.Order, true
	}
	for _, o := range m.state.Orders {
		if o.InvoiceID == e.InvoiceID {
			m.toast(views.ToastError, "Could not refresh order %s, showing the listed copy", e.InvoiceID)
			return o, true
		}
	}
	m.toast(views.ToastError, "Could not load order %s: %v", e.InvoiceID, e.Error)
	return domain.Order{}, false
}

func (m *Model) saveCategory(a inputtypes.SaveCategoryAction) tea.Cmd {
	name := strings.TrimSpace(a.Name)
	if name == "" {
		m.toast(views.ToastError, "Category name is required")
		return nil
	}

	event := eventbus.CategorySaveRequestedEvent{
		Category: domain.Category{Name: name, Description: strings.TrimSpace(a.Description)},
	}
	if a.Edit {
		if m.editSlug == "" {
			m.toast(views.ToastError, "No category to edit")
			return nil
		}
		event.Slug = m.editSlug
		if c, ok := m.categories.Selected(); ok && c.Slug == m.editSlug {
			event.Category.ID = c.ID
			event.Category.Slug = c.Slug
		}
	}
	m.editSlug = ""
	m.publish(event)
	return nil
}

// saveProduct applies the edit form to the product that was under the cursor
// when it opened. The stock sent is the pending one, if any, so the edit
// does not undo an unconfirmed stock change.
func (m *Model) saveProduct(a inputtypes.SaveProductAction) {
	slug := m.editSlug
	m.editSlug = ""
	name := strings.TrimSpace(a.Name)
	if name == "" {
		m.toast(views.ToastError, "Product name is required")
		return
	}
	var (
		p     domain.Product
		found bool
	)
	for _, candidate := range m.state.Products {
		if slug != "" && firstNonEmpty(candidate.Slug, candidate.Key()) == slug {
			p, found = candidate, true
			break
		}
	}
	if !found {
		m.toast(views.ToastError, "No product to edit")
		return
	}

	p.Name = name
	p.Price = a.Price
	p.DiscountType = a.DiscountType
	p.DiscountValue = a.DiscountValue
	if pending, ok := m.pendingStock[slug]; ok {
		p.Stock = pending.stock
		pending.inflight++
		m.pendingStock[slug] = pending
	}
	log.Printf("Updating product %s", slug)
	m.updateProduct(slug, p)
}

// pendingStock is the last stock value sent for a product and how many
// updates for it are still in flight
type pendingStock struct {
	stock    int
	inflight int
}

// adjustStock counts from the last value sent rather than the last value
// loaded, so quick repeated presses each add up
func (m *Model) adjustStock(delta int) {
	p, ok := m.products.Selected()
	if !ok {
		return
	}
	slug := firstNonEmpty(p.Slug, p.Key())
	pending, inflight := m.pendingStock[slug]
	if inflight {
		p.Stock = pending.stock
	}
	if p.Stock+delta < 0 {
		m.toast(views.ToastError, "%s is already out of stock", p.Name)
		return
	}
	p.Stock += delta
	m.pendingStock[slug] = pendingStock{stock: p.Stock, inflight: pending.inflight + 1}
	m.updateProduct(slug, p)
}

// updateProduct shows p right away and sends it to the backend
func (m *Model) updateProduct(slug string, p domain.Product) {
	if m.state.UpdateProduct(p) {
		m.refreshPage(state.PageProducts)
	}
	m.publish(eventbus.ProductUpdateRequestedEvent{Slug: slug, Product: p})
}

// settleStock records a reply for slug; a failure forgets the pending value
func (m *Model) settleStock(slug string, failed bool) {
	pending, ok := m.pendingStock[slug]
	if !ok {
		return
	}
	pending.inflight--
	if failed || pending.inflight <= 0 {
		delete(m.pendingStock, slug)
		return
	}
	m.pendingStock[slug] = pending
}

// overlayPendingStock keeps unconfirmed stock values on a freshly loaded list
func (m *Model) overlayPendingStock() {
	if len(m.pendingStock) == 0 {
		return
	}
	for _, p := range m.state.Products {
		if pending, ok := m.pendingStock[firstNonEmpty(p.Slug, p.Key())]; ok && p.Stock != pending.stock {
			p.Stock = pending.stock
			m.state.UpdateProduct(p)
		}
	}
}
