package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Value is the string-or-number payload stored per parameter. The zero Value
// is the empty string.
type Value struct {
	number bool
	str    string
	num    float64
}

// String returns a string Value.
func String(s string) Value {
	return Value{str: s}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{number: true, num: f}
}

// NaN returns the not-a-number sentinel produced by failed numeric coercion.
func NaN() Value {
	return Number(math.NaN())
}

// Empty returns the value seeded for parameters without a stored value.
func Empty() Value {
	return Value{}
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool { return v.number }

// IsNaN reports whether the value is the not-a-number sentinel.
func (v Value) IsNaN() bool { return v.number && math.IsNaN(v.num) }

// IsEmpty reports whether the value is the empty string.
func (v Value) IsEmpty() bool { return !v.number && v.str == "" }

// Text returns the string payload and true for string values.
func (v Value) Text() (string, bool) {
	if v.number {
		return "", false
	}
	return v.str, true
}

// Float returns the numeric payload and true for numeric values.
func (v Value) Float() (float64, bool) {
	if !v.number {
		return 0, false
	}
	return v.num, true
}

// Equal compares kind and payload. Not-a-number values are equal to each other.
func (v Value) Equal(other Value) bool {
	if v.number != other.number {
		return false
	}
	if !v.number {
		return v.str == other.str
	}
	if math.IsNaN(v.num) || math.IsNaN(other.num) {
		return math.IsNaN(v.num) && math.IsNaN(other.num)
	}
	return v.num == other.num
}

// String renders the value the way an input control displays it: numbers in
// their shortest decimal form, not-a-number as the empty string.
func (v Value) String() string {
	if !v.number {
		return v.str
	}
	if math.IsNaN(v.num) {
		return ""
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// Interface returns the payload as string or float64.
func (v Value) Interface() any {
	if v.number {
		return v.num
	}
	return v.str
}

// GoString keeps %#v output readable in test failures.
func (v Value) GoString() string {
	if v.number {
		return fmt.Sprintf("model.Number(%v)", v.num)
	}
	return fmt.Sprintf("model.String(%q)", v.str)
}

// ValueOf converts a decoded scalar into a Value. Unsupported types yield an
// error.
func ValueOf(raw any) (Value, error) {
	switch typed := raw.(type) {
	case nil:
		return NaN(), nil
	case Value:
		return typed, nil
	case string:
		return String(typed), nil
	case float64:
		return Number(typed), nil
	case float32:
		return Number(float64(typed)), nil
	case int:
		return Number(float64(typed)), nil
	case int64:
		return Number(float64(typed)), nil
	case int32:
		return Number(float64(typed)), nil
	case uint64:
		return Number(float64(typed)), nil
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("model: invalid number %q: %w", typed, err)
		}
		return Number(f), nil
	default:
		return Value{}, fmt.Errorf("model: unsupported value type %T", raw)
	}
}

// MarshalJSON encodes strings as strings, finite numbers as numbers and
// not-a-number or infinities as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.number {
		return json.Marshal(v.str)
	}
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON accepts a JSON string, number or null (not-a-number).
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*v = NaN()
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("model: decode value: %w", err)
		}
		*v = String(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return fmt.Errorf("model: decode value: expected string or number, got %s", trimmed)
	}
	*v = Number(f)
	return nil
}

// MarshalYAML emits the underlying scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML accepts string, integer, float and null scalars.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("model: decode value: line %d: expected scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*v = NaN()
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("model: decode value: line %d: %w", node.Line, err)
		}
		*v = Number(f)
	default:
		*v = String(node.Value)
	}
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (v *Value) UnmarshalTOML(raw any) error {
	decoded, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalTOML implements toml.Marshaler. Not-a-number and infinities use the
// TOML nan and inf literals.
func (v Value) MarshalTOML() ([]byte, error) {
	if !v.number {
		return tomlQuote(v.str)
	}
	switch {
	case math.IsNaN(v.num):
		return []byte("nan"), nil
	case math.IsInf(v.num, 1):
		return []byte("inf"), nil
	case math.IsInf(v.num, -1):
		return []byte("-inf"), nil
	case v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15:
		return []byte(strconv.FormatFloat(v.num, 'f', -1, 64)), nil
	default:
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	}
}

func tomlQuote(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("model: encode value: %q is not valid UTF-8", s)
	}
	out, err := toml.Marshal(map[string]string{"v": s})
	if err != nil {
		return nil, fmt.Errorf("model: encode value: %w", err)
	}
	quoted, ok := bytes.CutPrefix(bytes.TrimSpace(out), []byte("v = "))
	if !ok {
		return nil, fmt.Errorf("model: encode value: unexpected toml output %q", out)
	}
	return quoted, nil
}
