package model

import (
	"fmt"
	"strings"
)

// Kind is the simplified enum for editable parameter kinds.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindChoice Kind = "choice"
)

// ParseKind normalises a raw kind name. The aliases "string" and "select" map
// to KindText and KindChoice respectively.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "text", "string":
		return KindText, nil
	case "number", "numeric", "integer":
		return KindNumber, nil
	case "choice", "select", "enum":
		return KindChoice, nil
	default:
		return "", fmt.Errorf("model: unknown parameter kind %q", raw)
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindNumber, KindChoice:
		return true
	default:
		return false
	}
}

// InputType returns the control type renderers use for the kind.
func (k Kind) InputType() string {
	switch k {
	case KindNumber:
		return "number"
	case KindChoice:
		return "select"
	default:
		return "text"
	}
}

// UnmarshalText lets decoders accept kind aliases.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParameterDefinition describes one editable field. Choices are only
// meaningful when Kind is KindChoice.
type ParameterDefinition struct {
	ID          int      `json:"id" yaml:"id" toml:"id"`
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Kind        Kind     `json:"kind" yaml:"kind" toml:"kind"`
	Choices     []string `json:"choices,omitempty" yaml:"choices,omitempty" toml:"choices,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// HasChoice reports whether option is one of the definition's choices.
func (d ParameterDefinition) HasChoice(option string) bool {
	for _, choice := range d.Choices {
		if choice == option {
			return true
		}
	}
	return false
}

// ParameterValue pairs a parameter id with its current value.
type ParameterValue struct {
	ParameterID int   `json:"paramId" yaml:"paramId" toml:"paramId"`
	Value       Value `json:"value" yaml:"value" toml:"value"`
}

// Color is auxiliary reference data carried alongside the values. Editing
// never reads or writes it.
type Color struct {
	ID   int    `json:"id" yaml:"id" toml:"id"`
	Name string `json:"name" yaml:"name" toml:"name"`
}

// Model holds the current value of every known parameter. ParameterID is
// unique within Values.
type Model struct {
	Values []ParameterValue `json:"paramValues" yaml:"paramValues" toml:"paramValues"`
	Colors []Color          `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors,omitempty"`
}

// Lookup returns the entry index for id, or -1.
func (m *Model) Lookup(id int) int {
	if m == nil {
		return -1
	}
	for i, pv := range m.Values {
		if pv.ParameterID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the model.
func (m Model) Clone() Model {
	out := Model{}
	if m.Values != nil {
		out.Values = make([]ParameterValue, len(m.Values))
		copy(out.Values, m.Values)
	}
	if m.Colors != nil {
		out.Colors = make([]Color, len(m.Colors))
		copy(out.Colors, m.Colors)
	}
	return out
}

// Form is the unit renderers consume: the definitions to iterate and the model
// supplying current values.
type Form struct {
	Title       string                `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Definitions []ParameterDefinition `json:"definitions" yaml:"definitions" toml:"definitions"`
	Model       Model                 `json:"model" yaml:"model" toml:"model"`
}

// ChangeFunc receives a coerced value for the parameter identified by id.
type ChangeFunc func(id int, value Value)
