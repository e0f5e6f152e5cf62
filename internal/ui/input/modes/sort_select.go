package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/ui/input/types"
)

type SortSelectMode struct {
	sortIndex     int
	originalIndex int // Remember the original sort when entering
	count         int
}

func NewSortSelectMode() *SortSelectMode {
	return &SortSelectMode{}
}

func (m *SortSelectMode) Name() string {
	return "sort"
}

func (m *SortSelectMode) Enter(ctx types.Context) []types.Action {
	m.count = len(ctx.SortOptions())
	m.sortIndex = ctx.CurrentSortIndex()
	if m.sortIndex < 0 || m.sortIndex >= m.count {
		m.sortIndex = 0
	}
	m.originalIndex = m.sortIndex
	return []types.Action{types.UpdateSortIndexAction{Index: m.sortIndex}}
}

func (m *SortSelectMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// move steps through the options and applies the new one immediately
func (m *SortSelectMode) move(delta int) []types.Action {
	if m.count == 0 {
		return nil
	}
	m.sortIndex = (m.sortIndex + delta + m.count) % m.count
	return []types.Action{
		types.UpdateSortIndexAction{Index: m.sortIndex},
		types.SortByAction{Index: m.sortIndex},
	}
}

// HandleKey processes key messages for sort selection
func (m *SortSelectMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true

	case "esc", "q":
		// Cancel and restore original sort
		return []types.Action{
			types.SortByAction{Index: m.originalIndex},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "enter":
		return []types.Action{
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true

	case "up", "k":
		return m.move(-1), true

	case "down", "j":
		return m.move(1), true
	}

	return nil, false
}

// GetCurrentIndex returns the current sort option index
func (m *SortSelectMode) GetCurrentIndex() int {
	return m.sortIndex
}
