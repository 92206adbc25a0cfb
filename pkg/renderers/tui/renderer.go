package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/store"
)

// Name is the registry name of the prompt renderer.
const Name = "tui"

// Renderer implements render.Renderer for prompt-driven terminal sessions.
// Each parameter is prompted once per pass and every answer is committed to
// the session before the next prompt.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	review            bool
	logger            *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// review enabled).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(nil),
		outputFormat: OutputFormatJSON,
		review:       true,
		logger:       zap.NewNop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs an editing session over form and returns the retrieved model
// in the configured output format.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	session := store.New(form.Definitions, form.Model, store.WithLogger(r.logger))

	snapshot, err := r.Edit(ctx, session, opts)
	if err != nil {
		return nil, err
	}
	return r.Serialize(form.Definitions, snapshot)
}

// Edit prompts every parameter of session and returns the retrieved model.
func (r *Renderer) Edit(ctx context.Context, session *store.Session, opts render.RenderOptions) (model.Model, error) {
	if ctx == nil {
		return model.Model{}, errors.New("tui: context is required")
	}
	if r.driver == nil {
		return model.Model{}, ErrNoDriver
	}
	if session == nil {
		return model.Model{}, errors.New("tui: session is required")
	}

	for {
		if err := ctx.Err(); err != nil {
			return model.Model{}, err
		}
		for _, def := range session.Definitions() {
			if err := r.promptParameter(ctx, def, session, opts); err != nil {
				return model.Model{}, err
			}
		}
		if !r.review {
			break
		}
		done, err := r.confirmRetrieve(ctx, session)
		if err != nil {
			return model.Model{}, err
		}
		if done {
			break
		}
	}

	snapshot := session.Snapshot()
	if r.submitTransformer != nil {
		transformed, err := r.submitTransformer(snapshot)
		if err != nil {
			return model.Model{}, fmt.Errorf("tui: submit transformer: %w", err)
		}
		snapshot = transformed
	}
	return snapshot, nil
}

func (r *Renderer) promptParameter(ctx context.Context, def model.ParameterDefinition, session *store.Session, opts render.RenderOptions) error {
	ctrl := render.BuildControl(render.LocalizeDefinition(def, opts), session.GetValue(def.ID), opts.Placeholder())
	message := r.theme.PromptPrefix + ctrl.Label

	if def.Kind == model.KindChoice {
		labels := make([]string, len(ctrl.Options))
		selected := 0
		for i, option := range ctrl.Options {
			labels[i] = option.Label
			if option.Selected {
				selected = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: selected,
			Help:         ctrl.Description,
		})
		if err != nil {
			return fmt.Errorf("tui: prompt %q: %w", def.Name, err)
		}
		if idx < 0 || idx >= len(ctrl.Options) {
			return fmt.Errorf("tui: prompt %q: selection %d out of range", def.Name, idx)
		}
		render.Commit(def, ctrl.Options[idx].Value, session.Update)
		return nil
	}

	raw, err := r.driver.Input(ctx, InputConfig{
		Message: message,
		Default: ctrl.Value,
		Help:    ctrl.Description,
	})
	if err != nil {
		return fmt.Errorf("tui: prompt %q: %w", def.Name, err)
	}
	render.Commit(def, raw, session.Update)
	return nil
}

func (r *Renderer) confirmRetrieve(ctx context.Context, session *store.Session) (bool, error) {
	summary := prettyPrint(session.Definitions(), session.Snapshot())
	if err := r.driver.Info(ctx, r.theme.InfoPrefix+strings.TrimRight(summary, "\n")); err != nil {
		return false, fmt.Errorf("tui: show summary: %w", err)
	}
	ok, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.theme.PromptPrefix + "Retrieve model?",
		Default: true,
	})
	if err != nil {
		return false, fmt.Errorf("tui: confirm retrieve: %w", err)
	}
	return ok, nil
}

// Serialize encodes a retrieved model in the renderer's output format.
func (r *Renderer) Serialize(definitions []model.ParameterDefinition, m model.Model) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(formEncode(definitions, m)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(definitions, m)), nil
	default:
		return jsonBytes(m)
	}
}

func formEncode(definitions []model.ParameterDefinition, m model.Model) string {
	values := url.Values{}
	for _, def := range definitions {
		values.Set(render.FieldName(def.ID), store.GetValue(&m, def.ID).String())
	}
	return values.Encode()
}

func prettyPrint(definitions []model.ParameterDefinition, m model.Model) string {
	var b strings.Builder
	for _, def := range definitions {
		label := def.Name
		if label == "" {
			label = render.FieldName(def.ID)
		}
		fmt.Fprintf(&b, "%s: %s\n", label, store.GetValue(&m, def.ID).String())
	}
	return b.String()
}

func jsonBytes(m model.Model) ([]byte, error) {
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: encode json: %w", err)
	}
	return out, nil
}
