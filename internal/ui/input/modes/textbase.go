package modes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/ui/input/types"
)

// textKeys are the keys a text prompt reacts to; everything else is typed
var textKeys = struct {
	Submit    key.Binding
	Cancel    key.Binding
	ForceQuit key.Binding
}{
	Submit:    key.NewBinding(key.WithKeys("enter")),
	Cancel:    key.NewBinding(key.WithKeys("esc")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}

// focusInput clears ti, fills in value and puts the cursor after it
func focusInput(ti *textinput.Model, value, placeholder string) {
	if ti == nil {
		return
	}
	ti.Reset()
	ti.Prompt = "" // drawn by the renderer next to the mode name
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
}

func releaseInput(ti *textinput.Model) {
	if ti == nil {
		return
	}
	ti.Blur()
	ti.Reset()
	ti.Placeholder = ""
}

// cancelText leaves a prompt without applying it
func cancelText() []types.Action {
	return []types.Action{
		types.CancelTextAction{},
		types.ChangeModeAction{Mode: types.ModeNormal},
	}
}

// TextInputMode is a single-line prompt that submits its value on enter
type TextInputMode struct {
	mode        types.Mode
	name        string
	prompt      string
	placeholder string
	textInput   *textinput.Model
}

func NewTextInputMode(mode types.Mode, name, prompt string, ti *textinput.Model) TextInputMode {
	return TextInputMode{mode: mode, name: name, prompt: prompt, textInput: ti}
}

func (m TextInputMode) Name() string   { return m.name }
func (m TextInputMode) Prompt() string { return m.prompt }

func (m TextInputMode) Enter(ctx types.Context) []types.Action {
	focusInput(m.textInput, "", m.placeholder)
	return nil
}

func (m TextInputMode) Exit(ctx types.Context) []types.Action {
	releaseInput(m.textInput)
	return nil
}

func (m TextInputMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return m.textInput.Value()
}

func (m TextInputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, textKeys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, textKeys.Cancel):
		return cancelText(), true
	case key.Matches(msg, textKeys.Submit):
		return []types.Action{
			types.SubmitTextAction{Text: m.value(), Mode: m.mode},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	// Not consumed: the handler feeds the key to the text input
	return nil, false
}
