package ui

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storedash/internal/config"
	"storedash/internal/domain"
	"storedash/internal/eventbus"
	inputtypes "storedash/internal/ui/input/types"
	"storedash/internal/ui/state"
	"storedash/internal/ui/views"
	"storedash/internal/window"
)

func testProducts(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = domain.Product{
			ID:       fmt.Sprintf("p%02d", i),
			Slug:     fmt.Sprintf("product-%02d", i),
			Name:     fmt.Sprintf("Product %02d", i),
			SKU:      fmt.Sprintf("SKU-%02d", i),
			Price:    100,
			Stock:    i,
			Category: domain.CategoryRef{ID: "c1", Name: "Shoes"},
		}
	}
	return out
}

func newTestModel(t *testing.T, bus eventbus.EventBus) *Model {
	t.Helper()
	m, err := NewModel(bus, config.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func typeInto(m *Model, s string) {
	for _, r := range s {
		press(m, string(r))
	}
}

func plainView(m *Model) string {
	return ansi.Strip(m.View())
}

func TestNewModelRejectsInvalidRowHeight(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.List.OrderRowHeight = 0

	_, err := NewModel(nil, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, window.ErrInvalidConfig)
}

func TestDashboardShowsSummary(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(3)}})
	m.Update(EventMsg{Event: eventbus.OrdersLoadedEvent{Orders: []domain.Order{{
		ID:          "o1",
		InvoiceID:   "INV-1001",
		Customer:    domain.Customer{FullName: "Rahim Uddin"},
		Status:      domain.StatusPending,
		TotalAmount: 450,
	}}}})

	view := plainView(m)
	assert.Contains(t, view, "storedash")
	assert.Contains(t, view, "Revenue")
	assert.Contains(t, view, "Out of stock")
	assert.Contains(t, view, "Recent Orders")
	assert.Contains(t, view, "#INV-1001")
	assert.Contains(t, view, "Rahim Uddin")
	assert.Contains(t, view, "Product 00")
	assert.Contains(t, view, "Orders by status")
	assert.LessOrEqual(t, len(splitLines(m.View())), 30)
}

func TestProductsPageNavigation(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(50)}})

	press(m, "2")
	require.Equal(t, state.PageProducts, m.state.Page)
	assert.Equal(t, 50, m.products.Len())
	assert.Contains(t, plainView(m), "Product 00")
	assert.NotContains(t, plainView(m), "Product 49")

	press(m, "j", "j")
	assert.Equal(t, 2, m.products.Cursor())

	press(m, "G")
	assert.Equal(t, 49, m.products.Cursor())
	view := plainView(m)
	assert.Contains(t, view, "Product 49")
	assert.Contains(t, view, "50/50")

	press(m, "g")
	assert.Equal(t, 0, m.products.Cursor())
}

func TestViewFillsTerminalHeight(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(50)}})
	press(m, "2")

	lines := len(splitLines(m.View()))
	assert.LessOrEqual(t, lines, 30)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

func TestMouseWheelDragsCursor(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(50)}})
	press(m, "2")

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	// three lines down hides the first row and half of the second
	assert.Equal(t, 2, m.products.Cursor())

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 2, m.products.Cursor())
}

func TestFilterIsLiveAndCancelRestores(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(50)}})
	press(m, "2", "/")
	require.Equal(t, inputtypes.ModeFilter, m.inputHandler.CurrentMode())

	typeInto(m, "SKU-1")
	assert.Equal(t, 10, m.products.Len()) // SKU-10..19
	assert.Contains(t, plainView(m), "Filter: ")

	press(m, "esc")
	assert.Equal(t, 50, m.products.Len())
	assert.Equal(t, "", m.state.Current().Filter)

	press(m, "/")
	typeInto(m, "stock:out")
	press(m, "enter")
	assert.Equal(t, 1, m.products.Len())
	assert.Contains(t, plainView(m), "[Filter: stock:out]")

	press(m, "esc")
	assert.Equal(t, 50, m.products.Len())
}

func TestFilterWithNoMatchesShowsMessage(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(5)}})
	press(m, "2", "/")
	typeInto(m, "nothing")
	press(m, "enter")

	assert.Equal(t, 0, m.products.Len())
	assert.Contains(t, plainView(m), `No Products match "nothing"`)
}

func TestSortPicker(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(5)}})
	press(m, "2", "s")
	assert.Contains(t, plainView(m), "Sort by: server order")

	// server order, name asc, name desc
	press(m, "j", "j")
	assert.Contains(t, plainView(m), "Sort by: name desc")
	first, ok := m.products.Selected()
	require.True(t, ok)
	assert.Equal(t, "Product 04", first.Name)

	press(m, "enter")
	assert.Equal(t, 2, m.state.Current().SortIndex)
	assert.Contains(t, plainView(m), "Sort: name desc")

	press(m, "s", "j", "esc")
	assert.Equal(t, 2, m.state.Current().SortIndex)
}

func waitFor[T eventbus.DomainEvent](t *testing.T, bus eventbus.EventBus, typ eventbus.EventType) <-chan T {
	t.Helper()
	ch := make(chan T, 1)
	unsub := bus.Subscribe(typ, func(e eventbus.DomainEvent) {
		if ev, ok := e.(T); ok {
			ch <- ev
		}
	})
	t.Cleanup(unsub)
	return ch
}

func TestDeleteConfirmPublishesRequest(t *testing.T) {
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	requests := waitFor[eventbus.DeleteRequestedEvent](t, bus, eventbus.EventDeleteRequested)

	m := newTestModel(t, bus)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(5)}})
	press(m, "2", "j", "d")

	require.NotNil(t, m.state.PendingDelete)
	assert.Contains(t, plainView(m), `Delete product "Product 01"?`)

	press(m, "y")
	assert.Nil(t, m.state.PendingDelete)
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())

	select {
	case e := <-requests:
		assert.Equal(t, domain.ResourceProducts, e.Resource)
		assert.Equal(t, "product-01", e.ID)
		assert.Equal(t, "Product 01", e.Label)
	case <-time.After(2 * time.Second):
		t.Fatal("delete request was not published")
	}
}

func TestDeleteCancelled(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(5)}})
	press(m, "2", "d", "n")

	assert.Nil(t, m.state.PendingDelete)
	assert.NotContains(t, plainView(m), "Delete product")
}

func TestEditCategoryPublishesSlug(t *testing.T) {
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	saves := waitFor[eventbus.CategorySaveRequestedEvent](t, bus, eventbus.EventCategorySaveRequested)

	m := newTestModel(t, bus)
	m.Update(EventMsg{Event: eventbus.CategoriesLoadedEvent{Categories: []domain.Category{
		{ID: "c1", Name: "Shoes", Slug: "shoes", Description: "Footwear"},
	}}})
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(2)}})

	press(m, "4")
	assert.Contains(t, plainView(m), "2 products")

	press(m, "e")
	typeInto(m, "!")
	press(m, "enter", "enter")

	select {
	case e := <-saves:
		assert.Equal(t, "shoes", e.Slug)
		assert.Equal(t, "Shoes!", e.Category.Name)
		assert.Equal(t, "Footwear", e.Category.Description)
	case <-time.After(2 * time.Second):
		t.Fatal("category save was not published")
	}
}

func TestEditProductPublishesPayload(t *testing.T) {
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	updates := make(chan eventbus.ProductUpdateRequestedEvent, 4)
	t.Cleanup(bus.Subscribe(eventbus.EventProductUpdateRequested, func(e eventbus.DomainEvent) {
		updates <- e.(eventbus.ProductUpdateRequestedEvent)
	}))

	m := newTestModel(t, bus)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(5)}})
	press(m, "2", "j", "+")
	<-updates

	press(m, "e")
	require.Equal(t, inputtypes.ModeEditProduct, m.inputHandler.CurrentMode())
	assert.Contains(t, plainView(m), "Product name: Product 01")

	typeInto(m, " Pro")
	press(m, "enter")
	assert.Contains(t, plainView(m), "Price: 100")

	press(m, "backspace", "backspace", "backspace")
	typeInto(m, "abc")
	press(m, "enter")
	assert.Equal(t, inputtypes.ModeEditProduct, m.inputHandler.CurrentMode())
	assert.Contains(t, plainView(m), "Price: abc", "a price that does not parse keeps the prompt")

	press(m, "backspace", "backspace", "backspace")
	typeInto(m, "1250")
	press(m, "enter")
	typeInto(m, "10%")
	press(m, "enter")
	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())

	select {
	case e := <-updates:
		assert.Equal(t, "product-01", e.Slug)
		assert.Equal(t, "p01", e.Product.ID)
		assert.Equal(t, "Product 01 Pro", e.Product.Name)
		assert.Equal(t, 1250.0, e.Product.Price)
		assert.Equal(t, domain.DiscountPercentage, e.Product.DiscountType)
		assert.Equal(t, 10.0, e.Product.DiscountValue)
		assert.Equal(t, 2, e.Product.Stock, "the unconfirmed stock change is kept")
		assert.Equal(t, "SKU-01", e.Product.SKU)
	case <-time.After(2 * time.Second):
		t.Fatal("product update was not published")
	}

	p, ok := m.products.Selected()
	require.True(t, ok)
	assert.Equal(t, "Product 01 Pro", p.Name)
	assert.Equal(t, 1125.0, p.FinalPrice())
	assert.Equal(t, 2, m.pendingStock["product-01"].inflight)
}

func TestEditProductCancelKeepsProduct(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(3)}})
	press(m, "2", "e")
	typeInto(m, "xyz")
	press(m, "esc")

	assert.Equal(t, inputtypes.ModeNormal, m.inputHandler.CurrentMode())
	p, _ := m.products.Selected()
	assert.Equal(t, "Product 00", p.Name)
}

func testOrders() []domain.Order {
	return []domain.Order{
		{ID: "o1", InvoiceID: "INV-1", Customer: domain.Customer{FullName: "Rahim Uddin"}, Status: domain.StatusPending, TotalAmount: 100},
		{ID: "o2", InvoiceID: "INV-2", Customer: domain.Customer{FullName: "Nadia Islam"}, Status: domain.StatusShipped, TotalAmount: 200},
	}
}

func TestOrderDetailsFetchFreshCopy(t *testing.T) {
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	requests := waitFor[eventbus.OrderRequestedEvent](t, bus, eventbus.EventOrderRequested)

	m := newTestModel(t, bus)
	m.Update(EventMsg{Event: eventbus.OrdersLoadedEvent{Orders: testOrders()}})
	press(m, "3", "j", "enter")

	select {
	case e := <-requests:
		assert.Equal(t, "INV-2", e.InvoiceID)
	case <-time.After(2 * time.Second):
		t.Fatal("order request was not published")
	}
	assert.Equal(t, "INV-2", m.pendingOrder)
	assert.Contains(t, plainView(m), "Loading order INV-2")

	// a reply for another invoice is not ours
	_, ok := m.fetchedOrder(eventbus.OrderFetchedEvent{InvoiceID: "INV-1", Order: testOrders()[0]})
	assert.False(t, ok)

	fresh := testOrders()[1]
	fresh.Status = domain.StatusCompleted
	o, ok := m.fetchedOrder(eventbus.OrderFetchedEvent{InvoiceID: "INV-2", Order: fresh})
	require.True(t, ok)
	assert.Equal(t, domain.StatusCompleted, o.Status)
	assert.Empty(t, m.pendingOrder)

	_, ok = m.fetchedOrder(eventbus.OrderFetchedEvent{InvoiceID: "INV-2", Order: fresh})
	assert.False(t, ok, "a second reply is ignored")
}

func TestOrderDetailsFallBackToListedCopy(t *testing.T) {
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	m := newTestModel(t, bus)
	m.Update(EventMsg{Event: eventbus.OrdersLoadedEvent{Orders: testOrders()}})
	press(m, "3", "enter")
	require.Equal(t, "INV-1", m.pendingOrder)

	o, ok := m.fetchedOrder(eventbus.OrderFetchedEvent{InvoiceID: "INV-1", Error: errors.New("timeout")})
	require.True(t, ok)
	assert.Equal(t, "Rahim Uddin", o.Customer.FullName)
	assert.Contains(t, plainView(m), "showing the listed copy")

	m.pendingOrder = "INV-9"
	_, ok = m.fetchedOrder(eventbus.OrderFetchedEvent{InvoiceID: "INV-9", Error: errors.New("not found")})
	assert.False(t, ok)
	assert.Contains(t, plainView(m), "Could not load order INV-9")
}

func TestEscDismissesNewestToast(t *testing.T) {
	m := newTestModel(t, nil)
	m.toast(views.ToastInfo, "older notice")
	m.toast(views.ToastError, "newer notice")

	press(m, "esc")
	view := plainView(m)
	assert.NotContains(t, view, "newer notice")
	assert.Contains(t, view, "older notice")

	press(m, "esc")
	assert.Zero(t, m.toasts.Len())
	press(m, "esc")
	assert.Zero(t, m.toasts.Len())
}

func TestAdjustStockPublishesUpdate(t *testing.T) {
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	updates := waitFor[eventbus.ProductUpdateRequestedEvent](t, bus, eventbus.EventProductUpdateRequested)

	m := newTestModel(t, bus)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(5)}})
	press(m, "2")

	// Product 00 has no stock left
	press(m, "-")
	assert.Contains(t, plainView(m), "already out of stock")

	press(m, "+")
	select {
	case e := <-updates:
		assert.Equal(t, "product-00", e.Slug)
		assert.Equal(t, 1, e.Product.Stock)
	case <-time.After(2 * time.Second):
		t.Fatal("product update was not published")
	}
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t, nil)
	require.Equal(t, config.ThemeDark, m.Config().UI.Theme)

	press(m, "t")
	assert.Equal(t, config.ThemeLight, m.Config().UI.Theme)
	assert.Equal(t, config.ThemeLight, m.renderer.Styles().Theme)

	press(m, "t")
	assert.Equal(t, config.ThemeDark, m.Config().UI.Theme)
}

func TestEventsShowToasts(t *testing.T) {
	m := newTestModel(t, nil)

	m.Update(EventMsg{Event: eventbus.DeleteCompletedEvent{Resource: domain.ResourceOrders, Label: "INV-1"}})
	m.Update(EventMsg{Event: eventbus.ErrorEvent{Message: "Failed to load orders"}})

	view := plainView(m)
	assert.Contains(t, view, `Deleted order "INV-1"`)
	assert.Contains(t, view, "Failed to load orders")

	// toasts go away once their time is up
	m.Update(tickMsg(time.Now().Add(time.Minute)))
	assert.NotContains(t, plainView(m), "INV-1")
}

func TestLoadingIndicator(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.LoadStartedEvent{}})
	assert.Contains(t, plainView(m), "Loading")

	m.Update(EventMsg{Event: eventbus.LoadFinishedEvent{Loaded: 3}})
	assert.False(t, m.state.Loading)
}

func TestPageCycling(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, "4")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, state.PageDashboard, m.state.Page)
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, state.PageCategories, m.state.Page)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)

	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		require.Len(t, batch, 1)
		msg = batch[0]()
	}
	assert.IsType(t, quitMsg{}, msg)
}

func TestRepeatedStockPressesAddUp(t *testing.T) {
	bus := eventbus.New()
	t.Cleanup(bus.Close)
	updates := make(chan eventbus.ProductUpdateRequestedEvent, 8)
	t.Cleanup(bus.Subscribe(eventbus.EventProductUpdateRequested, func(e eventbus.DomainEvent) {
		updates <- e.(eventbus.ProductUpdateRequestedEvent)
	}))

	m := newTestModel(t, bus)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(5)}})

	// Both presses happen before the backend answers
	press(m, "2", "j", "j", "+", "+")

	var sent []int
	for range 2 {
		select {
		case e := <-updates:
			assert.Equal(t, "product-02", e.Slug)
			sent = append(sent, e.Product.Stock)
		case <-time.After(2 * time.Second):
			t.Fatal("product update was not published")
		}
	}
	assert.ElementsMatch(t, []int{3, 4}, sent)
	p, ok := m.products.Selected()
	require.True(t, ok)
	assert.Equal(t, 4, p.Stock)

	// First reply plus the reload it triggers still carry 3
	first := testProducts(5)[2]
	first.Stock = 3
	m.Update(EventMsg{Event: eventbus.ProductUpdatedEvent{Slug: "product-02", Product: first}})
	reloaded := testProducts(5)
	reloaded[2].Stock = 3
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: reloaded}})

	p, _ = m.products.Selected()
	assert.Equal(t, 4, p.Stock, "unconfirmed value should survive the reload")

	press(m, "+")
	select {
	case e := <-updates:
		assert.Equal(t, 5, e.Product.Stock)
	case <-time.After(2 * time.Second):
		t.Fatal("product update was not published")
	}
}

func TestFailedStockUpdateForgetsPendingValue(t *testing.T) {
	m := newTestModel(t, nil)
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(5)}})
	press(m, "2", "j", "+")
	require.Contains(t, m.pendingStock, "product-01")

	m.Update(EventMsg{Event: eventbus.ProductUpdatedEvent{Slug: "product-01", Error: errors.New("boom")}})
	assert.NotContains(t, m.pendingStock, "product-01")
	assert.Contains(t, plainView(m), "Could not update product")
}

func TestStaleProductSnapshotIsIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	press(m, "2")

	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(3), Seq: 7}})
	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(9), Seq: 4}})
	assert.Equal(t, 3, m.products.Len())

	m.Update(EventMsg{Event: eventbus.ProductsLoadedEvent{Products: testProducts(6), Seq: 8}})
	assert.Equal(t, 6, m.products.Len())
}
