package ui

import (
	"fmt"
	"strings"

	"storedash/internal/kpi"
	"storedash/internal/ui/input/modes"
	"storedash/internal/ui/views"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// renderHelpContent generates the help text with colors for the pager
func renderHelpContent(styles *views.Styles) string {
	var help strings.Builder

	help.WriteString(styles.Title.Render("storedash Help"))
	help.WriteString("\n")

	groups := modes.DefaultKeyMap().HelpGroups()
	width := 0
	for _, g := range groups {
		for _, b := range g.Bindings {
			width = max(width, len([]rune(b.Help().Key)))
		}
	}

	for _, g := range groups {
		help.WriteString(styles.Section.Render(g.Title))
		help.WriteString("\n")
		for _, b := range g.Bindings {
			h := b.Help()
			pad := strings.Repeat(" ", width-len([]rune(h.Key))+2)
			help.WriteString(fmt.Sprintf("  %s%s%s\n", styles.Key.Render(h.Key), pad, styles.Text.Render(h.Desc)))
		}
	}

	help.WriteString("\n")
	help.WriteString(styles.Dim.Italic(true).Render(fmt.Sprintf(
		"  Filter examples: stock:out, stock:low, status:pending, %strl rnr (fuzzy)", kpi.FuzzyPrefix)))
	help.WriteString("\n")

	return help.String()
}
