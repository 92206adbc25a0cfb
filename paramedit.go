// Package paramedit edits parameter values against a catalog of text, number
// and choice definitions. The root package re-exports the common types and
// wires the built-in renderers; the work happens in pkg/store (sessions),
// pkg/render (controls and coercion) and pkg/renderers.
package paramedit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/live"
	"github.com/goliatone/go-paramedit/pkg/renderers/tui"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
	"github.com/goliatone/go-paramedit/pkg/store"
)

type (
	// Form aliases model.Form.
	Form = model.Form
	// Model aliases model.Model.
	Model = model.Model
	// Value aliases model.Value.
	Value = model.Value
	// ParameterDefinition aliases model.ParameterDefinition.
	ParameterDefinition = model.ParameterDefinition
	// Session aliases store.Session.
	Session = store.Session
	// RenderOptions aliases render.RenderOptions.
	RenderOptions = render.RenderOptions
)

// NewSession starts an editing session over definitions seeded from initial.
func NewSession(definitions []model.ParameterDefinition, initial model.Model, options ...store.Option) *store.Session {
	return store.New(definitions, initial, options...)
}

// DefaultRegistry returns a registry holding the vanilla, tui and live
// renderers.
func DefaultRegistry(logger *zap.Logger) (*render.Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	html, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("paramedit: %w", err)
	}
	prompts, err := tui.New(tui.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("paramedit: %w", err)
	}
	return render.NewRegistry(html, prompts, live.New(live.WithLogger(logger))), nil
}

// RenderHTML renders form with the vanilla renderer.
func RenderHTML(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("paramedit: %w", err)
	}
	return renderer.Render(ctx, form, opts)
}

// Render renders form with the renderer registered under name.
func Render(ctx context.Context, registry *render.Registry, name string, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if registry == nil {
		return nil, fmt.Errorf("paramedit: registry is nil")
	}
	renderer, err := registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("paramedit: %w", err)
	}
	return renderer.Render(ctx, form, opts)
}
