package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/ui/input/types"
)

type ConfirmMode struct {
	label string
}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "delete-confirm"
}

// Enter remembers what was under the cursor when the question was asked
func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	m.label = ctx.CurrentLabel()
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	m.label = ""
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "n", "N", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "y", "Y":
		return []types.Action{
			types.DeleteAction{Label: m.label},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	// Swallow everything else while the question is open
	return nil, true
}
