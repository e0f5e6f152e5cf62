package ui

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/config"
	"storedash/internal/domain"
	"storedash/internal/eventbus"
	"storedash/internal/kpi"
	"storedash/internal/ui/input"
	inputtypes "storedash/internal/ui/input/types"
	"storedash/internal/ui/rows"
	"storedash/internal/ui/state"
	"storedash/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state

	// UI-specific state not in AppState
	width       int
	height      int
	inPagerMode bool // tracks if we're currently in pager mode
	refreshing  bool // a reload was asked for from the keyboard
	sortCursor  int  // option highlighted in the sort picker
	editSlug    string
	prevMode    inputtypes.Mode

	// Invoice whose details wait for the backend's copy
	pendingOrder string

	// Stock values sent to the backend and not yet confirmed, by slug
	pendingStock map[string]pendingStock

	renderer     *views.Renderer
	templates    rows.Templates
	toasts       *views.Toasts
	inputHandler *input.Handler
	pager        *Pager

	products   *listPage[domain.Product]
	orders     *listPage[domain.Order]
	categories *listPage[rows.CategoryItem]

	now func() time.Time

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. Row heights come from the list settings;
// an invalid height is reported here rather than at render time.
func NewModel(bus eventbus.EventBus, cfg *config.Config) (*Model, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        state.NewAppState(),
		renderer:     views.NewRenderer(cfg.UI.Theme),
		toasts:       views.NewToasts(cfg.UI.ToastTTL.Duration),
		inputHandler: input.New(),
		pager:        NewPager(),
		pendingStock: make(map[string]pendingStock),
		now:          time.Now,
	}
	m.templates = rows.New(m.renderer.Styles())

	overscan := cfg.List.Overscan
	var err error
	m.products, err = newListPage(cfg.List.ProductRowHeight, overscan, func(p domain.Product, i int, selected bool) string {
		return m.templates.Product(p, i, selected)
	})
	if err != nil {
		return nil, fmt.Errorf("products page: %w", err)
	}
	m.orders, err = newListPage(cfg.List.OrderRowHeight, overscan, func(o domain.Order, i int, selected bool) string {
		return m.templates.Order(o, i, selected)
	})
	if err != nil {
		return nil, fmt.Errorf("orders page: %w", err)
	}
	m.categories, err = newListPage(cfg.List.CategoryRowHeight, overscan, func(c rows.CategoryItem, i int, selected bool) string {
		return m.templates.Category(c, i, selected)
	})
	if err != nil {
		return nil, fmt.Errorf("categories page: %w", err)
	}

	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Config returns the configuration as changed by the session
func (m *Model) Config() *config.Config {
	return m.config
}

// Close releases the list pages
func (m *Model) Close() {
	for _, pv := range m.listViews() {
		pv.Close()
	}
}

// Init starts the tick loop and the first load
func (m *Model) Init() tea.Cmd {
	m.state.Loading = true
	return tea.Batch(tick(), m.requestLoad(nil, false))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	default:
		// Cursor blink for the shared text input
		cmd := m.inputHandler.Update(msg)
		model, next := m.handleNonKeyboardMsg(msg)
		return model, tea.Batch(cmd, next)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	ctx := m.inputContext()
	before := m.inputHandler.CurrentMode()
	m.prevMode = before

	actions, cmd := m.inputHandler.HandleKey(msg, ctx)

	if after := m.inputHandler.CurrentMode(); after != before {
		m.enterMode(after)
	}

	cmds := []tea.Cmd{}
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	for _, action := range actions {
		if actionCmd := m.processAction(action); actionCmd != nil {
			cmds = append(cmds, actionCmd)
		}
	}

	if m.inputHandler.CurrentMode() != inputtypes.ModeDeleteConfirm {
		m.state.PendingDelete = nil
	}
	return tea.Batch(cmds...)
}

// enterMode captures what a mode needs from the row under the cursor at
// the moment it opens
func (m *Model) enterMode(mode inputtypes.Mode) {
	switch mode {
	case inputtypes.ModeFilter:
		m.state.FilterBackup = m.state.Current().Filter
	case inputtypes.ModeDeleteConfirm:
		m.state.PendingDelete = m.selectedTarget()
	case inputtypes.ModeEditCategory:
		m.editSlug = ""
		if c, ok := m.categories.Selected(); ok {
			m.editSlug = c.Slug
		}
	case inputtypes.ModeEditProduct:
		m.editSlug = ""
		if p, ok := m.products.Selected(); ok {
			m.editSlug = firstNonEmpty(p.Slug, p.Key())
		}
	case inputtypes.ModeSort:
		m.sortCursor = m.state.Current().SortIndex
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pv := m.activeView()
	if pv == nil || m.inputHandler.CurrentMode() != inputtypes.ModeNormal {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		pv.Scroll(-wheelLines)
	case tea.MouseButtonWheelDown:
		pv.Scroll(wheelLines)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	page := m.state.Page
	vs := views.ViewState{
		Width:     m.width,
		Height:    m.height,
		ActiveTab: int(page),
		Loading:   m.state.Loading,
		InputMode: m.inputHandler.ModeName(),
		Prompt:    m.inputHandler.Prompt(),
		Toasts:    m.toasts.Items(),
	}
	for _, p := range state.Pages {
		vs.Tabs = append(vs.Tabs, p.Title())
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.View()
	}

	pv := m.activeView()
	if pv == nil {
		vs.Body = m.renderer.RenderDashboard(views.Dashboard{
			Summary:  m.state.Summary,
			Orders:   m.state.Orders,
			Products: m.state.Products,
		}, m.contentWidth(), views.DashboardHeight(m.height, m.toasts.Len()))
		return m.renderer.Render(vs)
	}

	ps := m.state.Current()
	vs.Filter = ps.Filter
	if s := m.state.Sort(page); s.Key != kpi.SortByNone {
		vs.SortLabel = s.Label()
	}
	vs.Columns = columnsFor(page)
	if pv.Len() > 0 {
		vs.Body = pv.View()
	} else {
		vs.Empty = m.emptyMessage(page)
	}
	vs.Position = pv.Position()

	if m.inputHandler.CurrentMode() == inputtypes.ModeSort {
		vs.SortOption = sortLabels(page)
		vs.SortIndex = m.sortCursor
	}
	if t := m.state.PendingDelete; t != nil {
		vs.Confirm = fmt.Sprintf("Delete %s %q?", noun(t.Resource), t.Label)
	}
	return m.renderer.Render(vs)
}

// contentWidth is the terminal width inside the main padding
func (m *Model) contentWidth() int {
	return max(0, m.width-4)
}

func (m *Model) resize() {
	height := m.height - views.ChromeHeight()
	for _, pv := range m.listViews() {
		pv.Resize(m.contentWidth(), height)
	}
}

func (m *Model) listViews() []pageView {
	return []pageView{m.products, m.orders, m.categories}
}

// activeView returns the list of the current page, nil on the dashboard
func (m *Model) activeView() pageView {
	switch m.state.Page {
	case state.PageProducts:
		return m.products
	case state.PageOrders:
		return m.orders
	case state.PageCategories:
		return m.categories
	}
	return nil
}

func (m *Model) inputContext() *input.ModelContext {
	page := m.state.Page
	ps := m.state.Current()
	ctx := &input.ModelContext{
		Page:      page,
		Filter:    ps.Filter,
		Options:   sortLabels(page),
		SortIndex: ps.SortIndex,
	}
	if pv := m.activeView(); pv != nil {
		ctx.Index = pv.Cursor()
		ctx.Total = pv.Len()
	}
	if t := m.selectedTarget(); t != nil {
		ctx.Label = t.Label
	}
	if page == state.PageCategories {
		if c, ok := m.categories.Selected(); ok {
			cat := c.Category
			ctx.Category = &cat
		}
	}
	if page == state.PageProducts {
		if p, ok := m.products.Selected(); ok {
			ctx.Product = &p
		}
	}
	return ctx
}

// selectedTarget describes the row under the cursor for delete
func (m *Model) selectedTarget() *state.DeleteTarget {
	switch m.state.Page {
	case state.PageProducts:
		if p, ok := m.products.Selected(); ok {
			return &state.DeleteTarget{Resource: domain.ResourceProducts, ID: firstNonEmpty(p.Slug, p.Key()), Label: p.Name}
		}
	case state.PageOrders:
		if o, ok := m.orders.Selected(); ok {
			return &state.DeleteTarget{Resource: domain.ResourceOrders, ID: firstNonEmpty(o.InvoiceID, o.Key()), Label: o.InvoiceID}
		}
	case state.PageCategories:
		if c, ok := m.categories.Selected(); ok {
			return &state.DeleteTarget{Resource: domain.ResourceCategories, ID: firstNonEmpty(c.Slug, c.Key()), Label: c.Name}
		}
	}
	return nil
}

func (m *Model) refreshPage(p state.Page) {
	switch p {
	case state.PageProducts:
		m.products.SetItems(m.state.VisibleProducts())
	case state.PageOrders:
		m.orders.SetItems(m.state.VisibleOrders())
	case state.PageCategories:
		cats, counts := m.state.VisibleCategories()
		items := make([]rows.CategoryItem, len(cats))
		for i, c := range cats {
			items[i] = rows.CategoryItem{Category: c, Products: counts[c.ID]}
		}
		m.categories.SetItems(items)
	}
}

func (m *Model) emptyMessage(p state.Page) string {
	name := p.Title()
	switch {
	case !m.state.Loaded[p.Resource()]:
		return fmt.Sprintf("Loading %s…", name)
	case m.state.Pages[p].Filter != "":
		return fmt.Sprintf("No %s match %q", name, m.state.Pages[p].Filter)
	default:
		return fmt.Sprintf("No %s yet", name)
	}
}

// requestLoad asks the catalog for fresh data. Nil resources means all.
func (m *Model) requestLoad(resources []domain.Resource, fresh bool) tea.Cmd {
	if m.bus == nil {
		return nil
	}
	return func() tea.Msg {
		m.bus.Publish(eventbus.LoadRequestedEvent{Resources: resources, Fresh: fresh})
		return nil
	}
}

func (m *Model) publish(e eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func (m *Model) toast(level views.ToastLevel, format string, args ...any) {
	m.toasts.Push(level, fmt.Sprintf(format, args...), m.now())
}

// applyTheme swaps styles and drops every cached row so the lists redraw
// in the new palette
func (m *Model) applyTheme(theme string) {
	m.config.UI.Theme = theme
	m.renderer = views.NewRenderer(theme)
	m.templates = rows.New(m.renderer.Styles())
	for _, pv := range m.listViews() {
		pv.Invalidate()
	}
}

// showPager returns a command that shows content in the ov pager
func (m *Model) showPager(title, content string) tea.Cmd {
	if m.program == nil {
		log.Printf("Pager requested for %q without a program", title)
		return nil
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return detailsPagerMsg{title: title, err: err}
	}
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager() tea.Cmd {
	if m.program == nil {
		return nil
	}
	content := renderHelpContent(m.renderer.Styles())
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case tickMsg:
		m.toasts.Expire(time.Time(msg))
		// Don't continue tick loop if we're in pager mode
		if m.inPagerMode {
			return m, nil
		}
		return m, tick()

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.toast(views.ToastError, "Could not open help: %v", msg.err)
		}
		return m, nil

	case detailsPagerMsg:
		if msg.err != nil {
			log.Printf("Details pager failed for %s: %v", msg.title, msg.err)
			m.toast(views.ToastError, "Could not open %s: %v", msg.title, msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tick()

	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

// tick returns a command that sends a tick message after a delay
func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// columnsFor names the header columns of a list page
func columnsFor(p state.Page) []string {
	switch p {
	case state.PageProducts:
		return []string{"name", "stock_level", "final_price"}
	case state.PageOrders:
		return []string{"invoice_id", "status", "total_amount"}
	case state.PageCategories:
		return []string{"name", "slug", "product_count", "description"}
	}
	return nil
}

func sortLabels(p state.Page) []string {
	opts := p.SortOptions()
	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label()
	}
	return labels
}

func noun(r domain.Resource) string {
	switch r {
	case domain.ResourceProducts:
		return "product"
	case domain.ResourceOrders:
		return "order"
	case domain.ResourceCategories:
		return "category"
	}
	return string(r)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
