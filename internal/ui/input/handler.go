package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/ui/input/modes"
	"storedash/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeFilter] = modes.NewFilterMode(h.textInput)
	h.modes[types.ModeSort] = modes.NewSortSelectMode()
	h.modes[types.ModeDeleteConfirm] = modes.NewConfirmMode()
	h.modes[types.ModeNewCategory] = modes.NewNewCategoryMode(h.textInput)
	h.modes[types.ModeEditCategory] = modes.NewEditCategoryMode(h.textInput)
	h.modes[types.ModeEditProduct] = modes.NewEditProductMode(h.textInput)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		if c := h.switchMode(changeMode.Mode, ctx, &allActions); c != nil {
			cmd = c
		}
	}

	// Keys the text mode did not handle go to the text input
	if h.isTextMode(h.currentMode) && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context, actions *[]types.Action) tea.Cmd {
	if current := h.modes[h.currentMode]; current != nil {
		*actions = append(*actions, current.Exit(ctx)...)
	}
	oldMode := h.currentMode
	h.currentMode = mode

	var cmd tea.Cmd
	if h.isTextMode(mode) {
		h.textInput.Focus()
		cmd = textinput.Blink
	} else if h.isTextMode(oldMode) {
		h.textInput.Blur()
	}

	if next := h.modes[mode]; next != nil {
		*actions = append(*actions, next.Enter(ctx)...)
	}
	return cmd
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// ModeName is the name of the active mode, empty in normal mode
func (h *Handler) ModeName() string {
	if h == nil || h.currentMode == types.ModeNormal {
		return ""
	}
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

// Prompt is the label of the active text mode
func (h *Handler) Prompt() string {
	if h == nil {
		return ""
	}
	if p, ok := h.modes[h.currentMode].(types.Prompter); ok {
		return p.Prompt()
	}
	return ""
}

func (h *Handler) TextInput() *textinput.Model {
	if h.isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeFilter, types.ModeNewCategory, types.ModeEditCategory, types.ModeEditProduct:
		return true
	default:
		return false
	}
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
