package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramedit/pkg/model"
)

const fieldNamePrefix = "param-"

// Option is one entry of a choice control. The placeholder entry carries an
// empty Value and Placeholder set. Unlisted marks a stored value that is not
// one of the definition's choices.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Selected    bool   `json:"selected"`
	Placeholder bool   `json:"placeholder,omitempty"`
	Unlisted    bool   `json:"unlisted,omitempty"`
}

// Control is the renderer-neutral description of one editable input.
type Control struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	InputID     string     `json:"inputId"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Kind        model.Kind `json:"kind"`
	InputType   string     `json:"inputType"`
	Value       string     `json:"value"`
	Options     []Option   `json:"options,omitempty"`
}

// FieldName returns the form field name used for a parameter id.
func FieldName(id int) string {
	return fieldNamePrefix + strconv.Itoa(id)
}

// ParseFieldName extracts the parameter id from a field name produced by
// FieldName.
func ParseFieldName(name string) (int, bool) {
	raw, ok := strings.CutPrefix(name, fieldNamePrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// BuildControl maps a definition and its current value onto a control. The
// displayed value is value.String(), so not-a-number shows as empty.
func BuildControl(def model.ParameterDefinition, value model.Value, placeholder string) Control {
	ctrl := Control{
		ID:          def.ID,
		Name:        FieldName(def.ID),
		InputID:     FieldName(def.ID),
		Label:       def.Name,
		Description: def.Description,
		Kind:        def.Kind,
		InputType:   def.Kind.InputType(),
		Value:       value.String(),
	}
	if def.Kind != model.KindChoice {
		return ctrl
	}

	if placeholder == "" {
		placeholder = DefaultChoicePlaceholder
	}
	ctrl.Options = make([]Option, 0, len(def.Choices)+1)
	ctrl.Options = append(ctrl.Options, Option{
		Value:       "",
		Label:       placeholder,
		Selected:    ctrl.Value == "",
		Placeholder: true,
	})
	listed := ctrl.Value == ""
	for _, choice := range def.Choices {
		selected := ctrl.Value != "" && choice == ctrl.Value
		listed = listed || selected
		ctrl.Options = append(ctrl.Options, Option{
			Value:    choice,
			Label:    choice,
			Selected: selected,
		})
	}
	// A stored value outside the choices stays selectable so submitting an
	// untouched control keeps it.
	if !listed {
		ctrl.Options = append(ctrl.Options, Option{
			Value:    ctrl.Value,
			Label:    ctrl.Value,
			Selected: true,
			Unlisted: true,
		})
	}
	return ctrl
}

// Coerce converts raw user input into a typed value for kind. Number input must
// be a decimal literal (sign, digits, one point, exponent); anything else,
// including empty input, inf and hex floats, yields not-a-number. Literals too
// large for a float64 become an infinity. Text and choice input pass through
// unchanged.
func Coerce(kind model.Kind, raw string) model.Value {
	if kind != model.KindNumber {
		return model.String(raw)
	}
	trimmed := strings.TrimSpace(raw)
	if !isDecimalLiteral(trimmed) {
		return model.NaN()
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return model.NaN()
	}
	return model.Number(f)
}

func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Commit coerces raw for def and reports it through onChange exactly once.
func Commit(def model.ParameterDefinition, raw string, onChange model.ChangeFunc) model.Value {
	value := Coerce(def.Kind, raw)
	if onChange != nil {
		onChange(def.ID, value)
	}
	return value
}
