package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// Definitions returns the catalog used across package tests: a text, a
// number and a choice parameter.
func Definitions() []model.ParameterDefinition {
	return []model.ParameterDefinition{
		{ID: 1, Name: "Product name", Kind: model.KindText},
		{ID: 4, Name: "Price", Kind: model.KindNumber},
		{ID: 5, Name: "Color", Kind: model.KindChoice, Choices: []string{"Red", "Blue"}},
	}
}

// InitialModel returns a model that leaves parameter 5 unset.
func InitialModel() model.Model {
	return model.Model{
		Values: []model.ParameterValue{
			{ParameterID: 1, Value: model.String("Widget")},
			{ParameterID: 4, Value: model.Number(100)},
		},
		Colors: []model.Color{
			{ID: 1, Name: "Red"},
			{ID: 2, Name: "Blue"},
		},
	}
}

// Form bundles Definitions and InitialModel.
func Form() model.Form {
	return model.Form{
		Title:       "Edit product",
		Definitions: Definitions(),
		Model:       InitialModel(),
	}
}

// CompareModels returns a cmp diff between two models. Values are compared by
// their payload, treating not-a-number values as equal.
func CompareModels(want, got model.Model) string {
	return cmp.Diff(want, got,
		cmp.Comparer(func(a, b model.Value) bool { return a.Equal(b) }),
		cmpopts.EquateEmpty(),
	)
}

// MustLoadForm loads a JSON fixture into a Form.
func MustLoadForm(t *testing.T, path string) model.Form {
	t.Helper()

	form, err := LoadForm(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadForm reads a JSON fixture into a Form, returning an error for callers
// managing setup outside of *testing.T.
func LoadForm(path string) (model.Form, error) {
	if path == "" {
		return model.Form{}, errors.New("testsupport: form path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("testsupport: read form: %w", err)
	}
	var out model.Form
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Form{}, fmt.Errorf("testsupport: unmarshal form: %w", err)
	}
	return out, nil
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
