package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/ui/input/types"
)

// CategoryFormMode asks for a category name, then its description. In edit
// mode both prompts start from the category under the cursor.
type CategoryFormMode struct {
	mode      types.Mode
	edit      bool
	textInput *textinput.Model

	step        int
	name        string
	description string
}

func NewNewCategoryMode(ti *textinput.Model) *CategoryFormMode {
	return &CategoryFormMode{mode: types.ModeNewCategory, textInput: ti}
}

func NewEditCategoryMode(ti *textinput.Model) *CategoryFormMode {
	return &CategoryFormMode{mode: types.ModeEditCategory, edit: true, textInput: ti}
}

func (m *CategoryFormMode) Name() string {
	if m.edit {
		return "edit-category"
	}
	return "new-category"
}

func (m *CategoryFormMode) Prompt() string {
	if m.step == 0 {
		return "Category name: "
	}
	return "Description: "
}

func (m *CategoryFormMode) Enter(ctx types.Context) []types.Action {
	m.step = 0
	m.name, m.description = "", ""
	if m.edit {
		if name, description, ok := ctx.CurrentCategory(); ok {
			m.name, m.description = name, description
		}
	}
	m.show(m.name)
	return nil
}

func (m *CategoryFormMode) Exit(ctx types.Context) []types.Action {
	releaseInput(m.textInput)
	m.step = 0
	return nil
}

func (m *CategoryFormMode) show(value string) {
	placeholder := "e.g. Outdoor Gear"
	if m.step == 1 {
		placeholder = "at least 10 characters"
	}
	focusInput(m.textInput, value, placeholder)
}

func (m *CategoryFormMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return strings.TrimSpace(m.textInput.Value())
}

func (m *CategoryFormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, textKeys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, textKeys.Cancel):
		return cancelText(), true

	case key.Matches(msg, textKeys.Submit):
		if m.step == 0 {
			m.name = m.value()
			if m.name == "" {
				return nil, true
			}
			m.step = 1
			m.show(m.description)
			return []types.Action{types.UpdateTextAction{Text: m.description}}, true
		}
		m.description = m.value()
		return []types.Action{
			types.SaveCategoryAction{Name: m.name, Description: m.description, Edit: m.edit},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}

	return nil, false
}
