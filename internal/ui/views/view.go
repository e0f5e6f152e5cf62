package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ettle/strcase"
)

// Input modes as named by the input handler
const (
	InputFilter        = "filter"
	InputSort          = "sort"
	InputDeleteConfirm = "delete-confirm"
	InputNewCategory   = "new-category"
	InputEditCategory  = "edit-category"
	InputEditProduct   = "edit-product"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	Tabs       []string
	ActiveTab  int
	Loading    bool
	Filter     string
	SortLabel  string
	Columns    []string
	Body       string
	Empty      string
	Position   string
	InputMode  string
	Prompt     string
	TextInput  string
	SortOption []string
	SortIndex  int
	Confirm    string
	Toasts     []Toast
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	popup  *PopupRenderer
}

// NewRenderer creates a renderer for a theme
func NewRenderer(theme string) *Renderer {
	styles := NewStyles(theme)
	return &Renderer{
		styles: styles,
		popup:  NewPopupRenderer(styles),
	}
}

// Styles returns the active styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// ChromeHeight is the number of lines the frame around the list takes:
// padding, title, header, input line, toasts and help.
func ChromeHeight() int {
	return 2 + 2 + 1 + 2 + MaxToasts + 1
}

// DashboardHeight is the number of body lines left for the dashboard: it has
// no column header and only the current toasts take space in the footer.
func DashboardHeight(height, toasts int) int {
	return max(1, height-2-2-1-toasts-1)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.titleLine(state))
	content.WriteString("\n\n")

	switch state.InputMode {
	case InputSort:
		content.WriteString(r.renderSortOptions(state))
		content.WriteString("\n")
	case InputFilter, InputNewCategory, InputEditCategory, InputEditProduct:
		content.WriteString(r.styles.Filter.Render(state.Prompt))
		content.WriteString(state.TextInput)
		content.WriteString("\n")
	default:
		content.WriteString("\n")
	}

	if len(state.Columns) > 0 {
		content.WriteString(r.RenderHeader(state.Columns))
		content.WriteString("\n")
	}

	if strings.TrimSpace(state.Body) == "" && state.Empty != "" {
		content.WriteString(r.styles.Dim.Render(state.Empty))
	} else {
		content.WriteString(state.Body)
	}

	footer := &strings.Builder{}
	if toasts := r.RenderToasts(state.Toasts); toasts != "" {
		footer.WriteString(toasts)
		footer.WriteString("\n")
	}
	help := "Press ? for help"
	if state.Position != "" {
		help = state.Position + "  •  " + help
	}
	footer.WriteString(r.styles.Help.Render(help))

	// Push the footer to the bottom, accounting for Padding(1, 2)
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	used := lipgloss.Height(content.String()) + lipgloss.Height(footer.String())
	if pad := availableLines - used; pad > 0 {
		content.WriteString(strings.Repeat("\n", pad))
	}
	content.WriteString("\n")
	content.WriteString(footer.String())

	out := r.styles.Main.Render(content.String())
	if state.InputMode == InputDeleteConfirm && state.Confirm != "" {
		body := r.styles.Confirm.Render(state.Confirm) + "\n\n" + r.styles.Dim.Render("y to delete • n or Esc to cancel")
		out = r.popup.RenderPopupOverlay(out, body, state.Height, state.Width, r.styles.Popup)
	}
	return out
}

func (r *Renderer) titleLine(state ViewState) string {
	logo := r.styles.Title.Render("storedash")

	tabs := make([]string, 0, len(state.Tabs))
	for i, tab := range state.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab)
		if i == state.ActiveTab {
			tabs = append(tabs, r.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, r.styles.Tab.Render(label))
		}
	}
	left := logo + "  " + strings.Join(tabs, "")

	var indicators []string
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, r.styles.Dim.Render(spinner[frame]+" Loading"))
	}
	if state.SortLabel != "" {
		indicators = append(indicators, r.styles.Dim.Render("Sort: "+state.SortLabel))
	}
	if state.Filter != "" {
		indicators = append(indicators, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.Filter)))
	}
	if len(indicators) == 0 {
		return left
	}
	right := strings.Join(indicators, "  ")

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4
	if pad := availableWidth - lipgloss.Width(left) - lipgloss.Width(right); pad > 0 {
		return left + strings.Repeat(" ", pad) + right
	}
	return left + "  " + right
}

// RenderHeader draws the column titles of a list page
func (r *Renderer) RenderHeader(columns []string) string {
	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = strcase.ToCase(c, strcase.TitleCase, ' ')
	}
	return r.styles.Header.Render("  " + strings.Join(titles, " · "))
}

// renderSortOptions renders the sort picker line
func (r *Renderer) renderSortOptions(state ViewState) string {
	if len(state.SortOption) == 0 {
		return ""
	}
	idx := state.SortIndex
	if idx < 0 || idx >= len(state.SortOption) {
		idx = 0
	}
	line := fmt.Sprintf("Sort by: %s", r.styles.Highlight.Render(state.SortOption[idx]))
	help := r.styles.Dim.Render("↑/↓ or j/k to change • Enter to accept • Esc to cancel")
	return line + "\n" + help
}
