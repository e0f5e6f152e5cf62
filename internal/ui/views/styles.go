package views

import (
	"github.com/charmbracelet/lipgloss"

	"storedash/internal/config"
	"storedash/internal/domain"
)

// Palette holds the colours of one theme
type Palette struct {
	Title     string
	Dim       string
	Text      string
	Error     string
	Warning   string
	Success   string
	Info      string
	Selection string
	Highlight string
	Section   string
	Key       string
	Border    string
}

var palettes = map[string]Palette{
	config.ThemeDark: {
		Title:     "99",
		Dim:       "241",
		Text:      "252",
		Error:     "203", // red
		Warning:   "214", // yellow
		Success:   "78",  // green
		Info:      "51",  // cyan
		Selection: "238",
		Highlight: "226",
		Section:   "39",
		Key:       "220",
		Border:    "241",
	},
	config.ThemeLight: {
		Title:     "55",
		Dim:       "244",
		Text:      "235",
		Error:     "160",
		Warning:   "130",
		Success:   "28",
		Info:      "31",
		Selection: "254",
		Highlight: "90",
		Section:   "25",
		Key:       "94",
		Border:    "248",
	},
}

// PaletteFor returns the palette of a theme; unknown names get the dark one
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[config.ThemeDark]
}

// Styles contains all the style definitions for the UI
type Styles struct {
	Theme   string
	Palette Palette

	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Confirm     lipgloss.Style
	Dim         lipgloss.Style
	Text        lipgloss.Style
	Header      lipgloss.Style
	Filter      lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Highlight   lipgloss.Style
	SelectionBg lipgloss.Style
	Popup       lipgloss.Style
	Card        lipgloss.Style
	CardValue   lipgloss.Style
	Section     lipgloss.Style
	Key         lipgloss.Style

	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
}

// NewStyles creates the styles of a theme
func NewStyles(theme string) *Styles {
	p := PaletteFor(theme)
	if _, ok := palettes[theme]; !ok {
		theme = config.ThemeDark
	}
	color := func(c string) lipgloss.Color { return lipgloss.Color(c) }

	return &Styles{
		Theme:   theme,
		Palette: p,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(p.Title)),
		Tab:       lipgloss.NewStyle().Foreground(color(p.Dim)).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(color(p.Highlight)).Background(color(p.Selection)).Padding(0, 1),
		Confirm:   lipgloss.NewStyle().Bold(true).Foreground(color(p.Warning)),
		Dim:       lipgloss.NewStyle().Foreground(color(p.Dim)),
		Text:      lipgloss.NewStyle().Foreground(color(p.Text)),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(color(p.Section)),
		Filter:    lipgloss.NewStyle().Foreground(color(p.Warning)),
		Help:      lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Highlight:   lipgloss.NewStyle().Foreground(color(p.Highlight)).Bold(true),
		SelectionBg: lipgloss.NewStyle().Background(color(p.Selection)),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(p.Border)).
			Padding(1, 2),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(p.Border)).
			Padding(0, 1).
			Width(20),
		CardValue: lipgloss.NewStyle().Bold(true).Foreground(color(p.Highlight)),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(color(p.Section)).MarginTop(1),
		Key:       lipgloss.NewStyle().Foreground(color(p.Key)),

		StatusError:   lipgloss.NewStyle().Foreground(color(p.Error)),
		StatusWarning: lipgloss.NewStyle().Foreground(color(p.Warning)),
		StatusLoading: lipgloss.NewStyle().Foreground(color(p.Dim)),
		StatusSuccess: lipgloss.NewStyle().Foreground(color(p.Success)),
		StatusInfo:    lipgloss.NewStyle().Foreground(color(p.Info)),
	}
}

// OrderStatusStyle returns the badge style for an order status
func (s *Styles) OrderStatusStyle(status domain.OrderStatus) lipgloss.Style {
	switch status.Normalized() {
	case domain.StatusPending:
		return s.StatusWarning
	case domain.StatusCompleted:
		return s.StatusSuccess
	case domain.StatusShipped:
		return s.StatusInfo
	case domain.StatusCancelled:
		return s.StatusError
	default:
		return s.Dim
	}
}

// StockStyle returns the badge style for a stock level
func (s *Styles) StockStyle(level domain.StockLevel) lipgloss.Style {
	switch level {
	case domain.StockOut:
		return s.StatusError
	case domain.StockLow:
		return s.StatusWarning
	default:
		return s.StatusSuccess
	}
}
