package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/store"
	"github.com/goliatone/go-paramedit/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	inputCfgs    []InputConfig
	selectCfgs   []SelectConfig
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func TestRender_PromptsEveryParameterAndReturnsModel(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Gadget", "abc"},
		selectIdx: []int{2},
	}
	r, err := New(WithPromptDriver(driver), WithReview(false))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), testsupport.Form(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got model.Model
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	want := testsupport.InitialModel()
	want.Values = []model.ParameterValue{
		{ParameterID: 1, Value: model.String("Gadget")},
		{ParameterID: 4, Value: model.NaN()},
		{ParameterID: 5, Value: model.String("Blue")},
	}
	if diff := testsupport.CompareModels(want, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}

	if driver.inputCfgs[0].Default != "Widget" || driver.inputCfgs[1].Default != "100" {
		t.Fatalf("expected current values as defaults, got %+v", driver.inputCfgs)
	}
	wantOptions := []string{render.DefaultChoicePlaceholder, "Red", "Blue"}
	if diff := cmp.Diff(wantOptions, driver.selectCfgs[0].Options); diff != "" {
		t.Fatalf("choice options mismatch (-want +got):\n%s", diff)
	}
	if driver.selectCfgs[0].DefaultIndex != 0 {
		t.Fatalf("unset choice should default to the placeholder")
	}
}

func TestEdit_ReviewLoopsUntilConfirmed(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Widget", "120", "Widget", "130"},
		selectIdx: []int{1, 0},
		confirm:   []bool{false, true},
	}
	r, err := New(WithPromptDriver(driver), WithTheme(Theme{InfoPrefix: "> "}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	session := store.New(testsupport.Definitions(), testsupport.InitialModel())
	snapshot, err := r.Edit(context.Background(), session, render.RenderOptions{})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	if driver.confirmPos != 2 || len(driver.infoMessages) != 2 {
		t.Fatalf("expected two review passes, got confirm=%d info=%d", driver.confirmPos, len(driver.infoMessages))
	}
	if !strings.HasPrefix(driver.infoMessages[0], "> Product name: Widget") ||
		!strings.Contains(driver.infoMessages[0], "Color: Red") {
		t.Fatalf("unexpected summary %q", driver.infoMessages[0])
	}
	if driver.selectCfgs[1].DefaultIndex != 1 {
		t.Fatalf("second pass should preselect the committed choice")
	}
	if got := store.GetValue(&snapshot, 5); !got.IsEmpty() {
		t.Fatalf("placeholder selection should clear the choice, got %#v", got)
	}
	if got := store.GetValue(&snapshot, 4); !got.Equal(model.Number(130)) {
		t.Fatalf("expected 130, got %#v", got)
	}
}

func TestRender_AbortPropagates(t *testing.T) {
	r, err := New(WithPromptDriver(abortDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	_, err = r.Render(context.Background(), testsupport.Form(), render.RenderOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSerialize_Formats(t *testing.T) {
	defs := testsupport.Definitions()
	m := testsupport.InitialModel()

	form, _ := New(WithOutputFormat(OutputFormatFormURLEncoded))
	out, err := form.Serialize(defs, m)
	if err != nil {
		t.Fatalf("serialize form: %v", err)
	}
	if string(out) != "param-1=Widget&param-4=100&param-5=" {
		t.Fatalf("unexpected form output %q", out)
	}
	if form.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", form.ContentType())
	}

	pretty, _ := New(WithOutputFormat(OutputFormatPrettyText))
	out, err = pretty.Serialize(defs, m)
	if err != nil {
		t.Fatalf("serialize pretty: %v", err)
	}
	if string(out) != "Product name: Widget\nPrice: 100\nColor: \n" {
		t.Fatalf("unexpected pretty output %q", out)
	}

	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestRender_SubmitTransformer(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Widget", "100"}, selectIdx: []int{1}}
	r, err := New(
		WithPromptDriver(driver),
		WithReview(false),
		WithOutputFormat(OutputFormatPrettyText),
		WithSubmitTransformer(func(m model.Model) (model.Model, error) {
			m.Values = m.Values[:1]
			return m, nil
		}),
	)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), testsupport.Form(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "Product name: Widget\nPrice: \nColor: \n" {
		t.Fatalf("unexpected output %q", out)
	}
}

type abortDriver struct{}

func (abortDriver) Input(context.Context, InputConfig) (string, error)    { return "", ErrAborted }
func (abortDriver) Confirm(context.Context, ConfirmConfig) (bool, error) { return false, ErrAborted }
func (abortDriver) Select(context.Context, SelectConfig) (int, error)    { return 0, ErrAborted }
func (abortDriver) Info(context.Context, string) error                   { return nil }
