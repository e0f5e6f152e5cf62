package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the normal mode bindings
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	GoToPage    key.Binding
	Details     key.Binding
	Delete      key.Binding
	NewCategory key.Binding
	Edit        key.Binding
	StockUp     key.Binding
	StockDown   key.Binding
	Refresh     key.Binding
	Filter      key.Binding
	Clear       key.Binding
	Sort        key.Binding
	Theme       key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "Page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/Home", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/End", "Go to bottom"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "Previous page"),
		),
		GoToPage: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "Dashboard, products, orders, categories"),
		),
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Open product or order details"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete item under the cursor"),
		),
		NewCategory: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New category (categories page)"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit category, or product name and pricing"),
		),
		StockUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Add one to stock (products page)"),
		),
		StockDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Take one from stock (products page)"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload the current page from the API"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter the current page"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Clear the filter, or dismiss the newest notice"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort options"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle dark/light theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Show this help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit immediately"),
		),
	}
}

// wheel is handled from tea.MouseMsg and only appears in help
var wheel = key.NewBinding(key.WithHelp("Wheel", "Scroll the list"))

// HelpGroups returns the bindings grouped for the help screen
func (k KeyMap) HelpGroups() []HelpGroup {
	return []HelpGroup{
		{"Navigation", []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, wheel, k.GoToPage, k.NextPage, k.PrevPage}},
		{"Catalog", []key.Binding{k.Details, k.Delete, k.NewCategory, k.Edit, k.StockUp, k.StockDown, k.Refresh}},
		{"Filter & Sort", []key.Binding{k.Filter, k.Clear, k.Sort}},
		{"Other", []key.Binding{k.Theme, k.Help, k.Quit, k.ForceQuit}},
	}
}

// HelpGroup is a titled set of bindings
type HelpGroup struct {
	Title    string
	Bindings []key.Binding
}
