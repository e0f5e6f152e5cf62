package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws a popup centered over the main content. The main
// content is greyed out except for lines mentioning the popup's title.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	if width <= 0 {
		width = lipgloss.Width(mainContent)
	}
	if height <= 0 {
		height = lipgloss.Height(mainContent)
	}
	x := max(0, (width-modalW)/2)
	y := max(0, (height-modalH)/2)

	base := strings.Split(desaturateKeeping(mainContent, extractTitlePlain(popupContent), pr.styles.Palette.Dim), "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}

	for i, line := range strings.Split(styledPopup, "\n") {
		row := base[y+i]
		left := ansi.Truncate(row, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(row, x+ansi.StringWidth(line), "")
		base[y+i] = left + line + right
	}
	return strings.Join(base, "\n")
}

// extractTitlePlain returns the first line of popup content without ANSI
func extractTitlePlain(popup string) string {
	first, _, _ := strings.Cut(popup, "\n")
	return ansi.Strip(first)
}

// desaturateKeeping greys every line except those containing keep
func desaturateKeeping(s, keep, grey string) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(grey))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		plain := ansi.Strip(line)
		if keep != "" && strings.Contains(plain, keep) {
			continue
		}
		lines[i] = dim.Render(plain)
	}
	return strings.Join(lines, "\n")
}
