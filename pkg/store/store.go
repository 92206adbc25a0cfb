// Package store reconciles parameter definitions against a model and applies
// single-field updates using copy-on-write. Functions never mutate the model
// they receive; an update that changes nothing returns the same pointer so
// callers can skip redundant work by comparing identities.
package store

import "github.com/goliatone/go-paramedit/pkg/model"

// Initialize merges initial against definitions. Every definition gets exactly
// one entry, in definition order, seeded with the empty string when initial
// has no value for it. Values in initial that reference unknown parameters are
// appended afterwards and otherwise left alone.
func Initialize(definitions []model.ParameterDefinition, initial model.Model) *model.Model {
	known := make(map[int]struct{}, len(definitions))
	values := make([]model.ParameterValue, 0, len(definitions)+len(initial.Values))

	for _, def := range definitions {
		if _, dup := known[def.ID]; dup {
			continue
		}
		known[def.ID] = struct{}{}

		entry := model.ParameterValue{ParameterID: def.ID, Value: model.Empty()}
		if idx := initial.Lookup(def.ID); idx >= 0 {
			entry = initial.Values[idx]
		}
		values = append(values, entry)
	}

	for _, pv := range initial.Values {
		if _, seen := known[pv.ParameterID]; seen {
			continue
		}
		known[pv.ParameterID] = struct{}{}
		values = append(values, pv)
	}

	out := initial.Clone()
	out.Values = values
	return &out
}

// SetValue returns m with the entry for id replaced by value. When the stored
// value already equals value, or no entry exists for id, m itself is returned.
func SetValue(m *model.Model, id int, value model.Value) *model.Model {
	if m == nil {
		return nil
	}
	idx := m.Lookup(id)
	if idx < 0 {
		return m
	}
	if m.Values[idx].Value.Equal(value) {
		return m
	}

	values := make([]model.ParameterValue, len(m.Values))
	copy(values, m.Values)
	values[idx].Value = value

	next := *m
	next.Values = values
	return &next
}

// GetValue returns the stored value for id, or the empty string when m has
// no entry for it.
func GetValue(m *model.Model, id int) model.Value {
	idx := m.Lookup(id)
	if idx < 0 {
		return model.Empty()
	}
	return m.Values[idx].Value
}

// Has reports whether m holds an entry for id.
func Has(m *model.Model, id int) bool {
	return m.Lookup(id) >= 0
}
