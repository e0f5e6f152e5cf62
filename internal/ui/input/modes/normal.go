package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/ui/input/types"
	"storedash/internal/ui/state"
)

type NormalMode struct {
	keys KeyMap
}

func NewNormalMode() *NormalMode {
	return &NormalMode{keys: DefaultKeyMap()}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func navigate(dir string) ([]types.Action, bool) {
	return []types.Action{types.NavigateAction{Direction: dir}}, true
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	page := ctx.CurrentPage()
	hasItem := page.IsList() && ctx.TotalItems() > 0
	k := m.keys

	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, k.Up):
		return navigate("up")
	case key.Matches(msg, k.Down):
		return navigate("down")
	case key.Matches(msg, k.PageUp):
		return navigate("pageup")
	case key.Matches(msg, k.PageDown):
		return navigate("pagedown")
	case key.Matches(msg, k.Top):
		return navigate("home")
	case key.Matches(msg, k.Bottom):
		return navigate("end")
	case key.Matches(msg, k.NextPage):
		return []types.Action{types.SwitchPageAction{Delta: 1}}, true
	case key.Matches(msg, k.PrevPage):
		return []types.Action{types.SwitchPageAction{Delta: -1}}, true
	case key.Matches(msg, k.GoToPage):
		idx := int(msg.String()[0] - '1')
		return []types.Action{types.SwitchPageAction{Page: state.Pages[idx]}}, true

	case key.Matches(msg, k.Details):
		if hasItem && page != state.PageCategories {
			return []types.Action{types.OpenDetailsAction{}}, true
		}
		return nil, false

	case key.Matches(msg, k.Filter):
		if page.IsList() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter}}, true
		}
		return nil, false

	case key.Matches(msg, k.Sort):
		if page.IsList() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeSort}}, true
		}
		return nil, false

	case key.Matches(msg, k.Delete):
		if hasItem {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeDeleteConfirm}}, true
		}
		return nil, false

	case key.Matches(msg, k.NewCategory):
		if page == state.PageCategories {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeNewCategory}}, true
		}
		return nil, false

	case key.Matches(msg, k.Edit):
		switch {
		case hasItem && page == state.PageCategories:
			return []types.Action{types.ChangeModeAction{Mode: types.ModeEditCategory}}, true
		case hasItem && page == state.PageProducts:
			return []types.Action{types.ChangeModeAction{Mode: types.ModeEditProduct}}, true
		}
		return nil, false

	case key.Matches(msg, k.StockUp):
		if hasItem && page == state.PageProducts {
			return []types.Action{types.AdjustStockAction{Delta: 1}}, true
		}
		return nil, false

	case key.Matches(msg, k.StockDown):
		if hasItem && page == state.PageProducts {
			return []types.Action{types.AdjustStockAction{Delta: -1}}, true
		}
		return nil, false

	case key.Matches(msg, k.Refresh):
		return []types.Action{types.RefreshAction{}}, true

	case key.Matches(msg, k.Theme):
		return []types.Action{types.ToggleThemeAction{}}, true

	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, k.Clear):
		if ctx.CurrentFilter() != "" {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		return []types.Action{types.DismissToastAction{}}, true

	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
