package store_test

import (
	"testing"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/store"
	"github.com/goliatone/go-paramedit/pkg/testsupport"
)

func TestInitialize_SeedsMissingValues(t *testing.T) {
	m := store.Initialize(testsupport.Definitions(), testsupport.InitialModel())

	for _, def := range testsupport.Definitions() {
		if !store.Has(m, def.ID) {
			t.Fatalf("expected entry for parameter %d", def.ID)
		}
	}
	if got := store.GetValue(m, 5); !got.Equal(model.String("")) {
		t.Fatalf("GetValue(5) = %#v, want empty string", got)
	}
	if got := store.GetValue(m, 4); !got.Equal(model.Number(100)) {
		t.Fatalf("GetValue(4) = %#v, want 100", got)
	}

	wantOrder := []int{1, 4, 5}
	for i, id := range wantOrder {
		if m.Values[i].ParameterID != id {
			t.Fatalf("value %d has id %d, want %d", i, m.Values[i].ParameterID, id)
		}
	}
}

func TestInitialize_CarriesUnknownValuesAndReferenceData(t *testing.T) {
	initial := testsupport.InitialModel()
	initial.Values = append(initial.Values,
		model.ParameterValue{ParameterID: 99, Value: model.String("orphan")},
		model.ParameterValue{ParameterID: 1, Value: model.String("duplicate")},
	)

	m := store.Initialize(testsupport.Definitions(), initial)

	if got := store.GetValue(m, 99); !got.Equal(model.String("orphan")) {
		t.Fatalf("expected orphan value carried over, got %#v", got)
	}
	if got := store.GetValue(m, 1); !got.Equal(model.String("Widget")) {
		t.Fatalf("first occurrence should win, got %#v", got)
	}
	if len(m.Values) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(m.Values))
	}
	if len(m.Colors) != 2 || m.Colors[1].Name != "Blue" {
		t.Fatalf("reference data not carried: %+v", m.Colors)
	}

	initial.Colors[0].Name = "Mutated"
	if m.Colors[0].Name != "Red" {
		t.Fatalf("initialized model must not alias the caller's reference data")
	}
}

func TestSetValue_IdempotentReturnsSameInstance(t *testing.T) {
	m := store.Initialize(testsupport.Definitions(), testsupport.InitialModel())

	for _, def := range testsupport.Definitions() {
		next := store.SetValue(m, def.ID, store.GetValue(m, def.ID))
		if next != m {
			t.Fatalf("SetValue with current value for %d returned a new instance", def.ID)
		}
	}

	m = store.SetValue(m, 4, model.NaN())
	if next := store.SetValue(m, 4, store.GetValue(m, 4)); next != m {
		t.Fatalf("not-a-number re-assignment should be a no-op")
	}
}

func TestSetValue_IsolatesChange(t *testing.T) {
	m := store.Initialize(testsupport.Definitions(), testsupport.InitialModel())
	before := m.Clone()

	next := store.SetValue(m, 4, model.Number(250))
	if next == m {
		t.Fatalf("expected a new instance for a changed value")
	}

	if diff := testsupport.CompareModels(before, *m); diff != "" {
		t.Fatalf("original model mutated (-want +got):\n%s", diff)
	}

	want := before.Clone()
	want.Values[1].Value = model.Number(250)
	if diff := testsupport.CompareModels(want, *next); diff != "" {
		t.Fatalf("unexpected model after update (-want +got):\n%s", diff)
	}
	if &next.Colors[0] != &m.Colors[0] {
		t.Fatalf("reference data should be shared between revisions")
	}
}

func TestSetValue_KindSensitiveEquality(t *testing.T) {
	m := store.Initialize(testsupport.Definitions(), testsupport.InitialModel())

	next := store.SetValue(m, 4, model.String("100"))
	if next == m {
		t.Fatalf("string \"100\" should replace numeric 100")
	}
}

func TestSetValue_UnknownIDIsNoop(t *testing.T) {
	m := store.Initialize(testsupport.Definitions(), testsupport.InitialModel())
	before := m.Clone()

	next := store.SetValue(m, 42, model.String("ignored"))
	if next != m {
		t.Fatalf("unknown id should return the same instance")
	}
	if diff := testsupport.CompareModels(before, *next); diff != "" {
		t.Fatalf("model changed (-want +got):\n%s", diff)
	}
	if store.Has(next, 42) {
		t.Fatalf("unknown id must not be appended")
	}
}

func TestGetValue_MissingEntryIsEmpty(t *testing.T) {
	if got := store.GetValue(&model.Model{}, 7); !got.IsEmpty() {
		t.Fatalf("expected empty string, got %#v", got)
	}
	if got := store.GetValue(nil, 7); !got.IsEmpty() {
		t.Fatalf("expected empty string for nil model, got %#v", got)
	}
}

func TestScenario_SelectChoice(t *testing.T) {
	m := store.Initialize(testsupport.Definitions(), testsupport.InitialModel())
	if got := store.GetValue(m, 5); !got.IsEmpty() {
		t.Fatalf("GetValue(5) = %#v, want empty", got)
	}

	m = store.SetValue(m, 5, model.String("Blue"))
	if got := store.GetValue(m, 5); !got.Equal(model.String("Blue")) {
		t.Fatalf("GetValue(5) = %#v, want Blue", got)
	}
	if got := store.GetValue(m, 1); !got.Equal(model.String("Widget")) {
		t.Fatalf("GetValue(1) = %#v, want Widget", got)
	}
}
