package render_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
)

func TestCoerce_NumberKind(t *testing.T) {
	if got := render.Coerce(model.KindNumber, "100"); !got.Equal(model.Number(100)) {
		t.Fatalf("Coerce(100) = %#v", got)
	}
	if got := render.Coerce(model.KindNumber, " 2.5 "); !got.Equal(model.Number(2.5)) {
		t.Fatalf("Coerce(2.5) = %#v", got)
	}
	for _, raw := range []string{"abc", "", "   ", "12abc", "inf", "-Inf", "Infinity", "NaN", "0x1p4", "0x10", "1_000", ".", "-", "1e", "1e+", "1.2.3", "+-1"} {
		if got := render.Coerce(model.KindNumber, raw); !got.IsNaN() {
			t.Fatalf("Coerce(%q) = %#v, want not-a-number", raw, got)
		}
	}
	for raw, want := range map[string]float64{".5": 0.5, "5.": 5, "-1.5e3": -1500, "+2E-2": 0.02, "007": 7} {
		if got := render.Coerce(model.KindNumber, raw); !got.Equal(model.Number(want)) {
			t.Fatalf("Coerce(%q) = %#v, want %v", raw, got, want)
		}
	}
	if got := render.Coerce(model.KindNumber, "inf"); got.String() != "" {
		t.Fatalf("non-numeric input must display as empty, got %q", got.String())
	}
	if got, _ := render.Coerce(model.KindNumber, "1e400").Float(); !math.IsInf(got, 1) {
		t.Fatalf("overflow should coerce to +Inf, got %v", got)
	}
}

func TestCoerce_TextAndChoicePassThrough(t *testing.T) {
	if got := render.Coerce(model.KindText, " 100 "); !got.Equal(model.String(" 100 ")) {
		t.Fatalf("text must pass through unchanged, got %#v", got)
	}
	if got := render.Coerce(model.KindChoice, ""); !got.IsEmpty() {
		t.Fatalf("empty choice should stay empty, got %#v", got)
	}
}

func TestCommit_InvokesOnChangeOnce(t *testing.T) {
	def := model.ParameterDefinition{ID: 4, Name: "Price", Kind: model.KindNumber}

	calls := 0
	var gotID int
	var gotValue model.Value
	value := render.Commit(def, "42", func(id int, v model.Value) {
		calls++
		gotID, gotValue = id, v
	})

	if calls != 1 {
		t.Fatalf("onChange called %d times, want 1", calls)
	}
	if gotID != 4 || !gotValue.Equal(model.Number(42)) || !value.Equal(gotValue) {
		t.Fatalf("unexpected commit: id=%d value=%#v returned=%#v", gotID, gotValue, value)
	}
}

func TestBuildControl_ChoiceHasDistinctPlaceholder(t *testing.T) {
	def := model.ParameterDefinition{ID: 5, Name: "Color", Kind: model.KindChoice, Choices: []string{"Red", "Blue"}}

	ctrl := render.BuildControl(def, model.Empty(), "")
	want := []render.Option{
		{Value: "", Label: render.DefaultChoicePlaceholder, Selected: true, Placeholder: true},
		{Value: "Red", Label: "Red"},
		{Value: "Blue", Label: "Blue"},
	}
	if diff := cmp.Diff(want, ctrl.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if ctrl.InputType != "select" || ctrl.Name != "param-5" {
		t.Fatalf("unexpected control: %+v", ctrl)
	}

	ctrl = render.BuildControl(def, model.String("Blue"), "Pick one")
	if ctrl.Options[0].Selected || !ctrl.Options[2].Selected || ctrl.Options[0].Label != "Pick one" {
		t.Fatalf("unexpected selection: %+v", ctrl.Options)
	}
}

func TestBuildControl_NumberDisplaysNaNAsEmpty(t *testing.T) {
	def := model.ParameterDefinition{ID: 4, Name: "Price", Kind: model.KindNumber}

	if ctrl := render.BuildControl(def, model.NaN(), ""); ctrl.Value != "" || ctrl.InputType != "number" {
		t.Fatalf("unexpected control: %+v", ctrl)
	}
	if ctrl := render.BuildControl(def, model.Number(100), ""); ctrl.Value != "100" {
		t.Fatalf("expected 100, got %q", ctrl.Value)
	}
	if ctrl := render.BuildControl(def, model.Number(100), ""); len(ctrl.Options) != 0 {
		t.Fatalf("number controls carry no options")
	}
}

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, model.Form, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry := render.NewRegistry(namedRenderer("vanilla"), namedRenderer("tui"))

	if err := registry.Register(namedRenderer("tui")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("preact"); err == nil {
		t.Fatalf("expected lookup error")
	}
	r, err := registry.Get("vanilla")
	if err != nil || r.Name() != "vanilla" {
		t.Fatalf("get vanilla: %v", err)
	}
}

func TestBuildControl_UnlistedStoredChoiceStaysSelected(t *testing.T) {
	def := model.ParameterDefinition{ID: 5, Name: "Color", Kind: model.KindChoice, Choices: []string{"Red", "Blue"}}

	ctrl := render.BuildControl(def, model.String("Green"), "")
	want := []render.Option{
		{Value: "", Label: render.DefaultChoicePlaceholder, Placeholder: true},
		{Value: "Red", Label: "Red"},
		{Value: "Blue", Label: "Blue"},
		{Value: "Green", Label: "Green", Selected: true, Unlisted: true},
	}
	if diff := cmp.Diff(want, ctrl.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}
