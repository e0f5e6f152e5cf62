package modes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"storedash/internal/domain"
	"storedash/internal/ui/input/types"
)

const (
	productName = iota
	productPrice
	productDiscount
)

var (
	productPrompts      = [...]string{"Product name: ", "Price: ", "Discount: "}
	productPlaceholders = [...]string{"e.g. Trail Runner", "e.g. 1250", "10% or a fixed amount, empty for none"}
)

// ProductFormMode edits the name, price and discount of the product under
// the cursor, one prompt at a time. A value that does not parse keeps the
// prompt open.
type ProductFormMode struct {
	textInput *textinput.Model

	step   int
	values [3]string
}

func NewEditProductMode(ti *textinput.Model) *ProductFormMode {
	return &ProductFormMode{textInput: ti}
}

func (m *ProductFormMode) Name() string {
	return "edit-product"
}

func (m *ProductFormMode) Prompt() string {
	return productPrompts[m.step]
}

func (m *ProductFormMode) Enter(ctx types.Context) []types.Action {
	m.step = productName
	m.values = [3]string{}
	if p, ok := ctx.CurrentProduct(); ok {
		m.values = [3]string{
			p.Name,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			FormatDiscount(p.DiscountType, p.DiscountValue),
		}
	}
	focusInput(m.textInput, m.values[m.step], productPlaceholders[m.step])
	return nil
}

func (m *ProductFormMode) Exit(ctx types.Context) []types.Action {
	releaseInput(m.textInput)
	m.step = productName
	return nil
}

func (m *ProductFormMode) value() string {
	if m.textInput == nil {
		return ""
	}
	return strings.TrimSpace(m.textInput.Value())
}

func (m *ProductFormMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, textKeys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, textKeys.Cancel):
		return cancelText(), true

	case key.Matches(msg, textKeys.Submit):
		v := m.value()
		switch m.step {
		case productName:
			if v == "" {
				return nil, true
			}
		case productPrice:
			if _, err := parsePrice(v); err != nil {
				return nil, true
			}
		case productDiscount:
			dt, dv, err := ParseDiscount(v)
			if err != nil {
				return nil, true
			}
			price, _ := parsePrice(m.values[productPrice])
			return []types.Action{
				types.SaveProductAction{Name: m.values[productName], Price: price, DiscountType: dt, DiscountValue: dv},
				types.ChangeModeAction{Mode: types.ModeNormal},
			}, true
		}
		m.values[m.step] = v
		m.step++
		focusInput(m.textInput, m.values[m.step], productPlaceholders[m.step])
		return []types.Action{types.UpdateTextAction{Text: m.values[m.step]}}, true
	}

	return nil, false
}

var errBadAmount = errors.New("amount must be a non-negative number")

func parsePrice(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, errBadAmount
	}
	return v, nil
}

// ParseDiscount reads "10%" as a percentage and a bare number as a fixed
// amount. Empty or zero means no discount.
func ParseDiscount(s string) (domain.DiscountType, float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", 0, nil
	}
	kind := domain.DiscountFixed
	if trimmed, ok := strings.CutSuffix(s, "%"); ok {
		kind = domain.DiscountPercentage
		s = strings.TrimSpace(trimmed)
	}
	v, err := parsePrice(s)
	if err != nil {
		return "", 0, err
	}
	if kind == domain.DiscountPercentage && v > 100 {
		return "", 0, errors.New("percentage discount cannot exceed 100")
	}
	if v == 0 {
		return "", 0, nil
	}
	return kind, v, nil
}

// FormatDiscount is the inverse of ParseDiscount
func FormatDiscount(kind domain.DiscountType, v float64) string {
	if v <= 0 {
		return ""
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if kind == domain.DiscountPercentage {
		return s + "%"
	}
	return s
}
