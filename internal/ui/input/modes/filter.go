package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"storedash/internal/ui/input/types"
)

type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	base := NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti)
	base.placeholder = "name, sku, stock:low, status:pending"
	return &FilterMode{TextInputMode: base}
}

// Enter starts from the page's current filter so it can be refined
func (m *FilterMode) Enter(ctx types.Context) []types.Action {
	focusInput(m.textInput, ctx.CurrentFilter(), m.placeholder)
	return nil
}
