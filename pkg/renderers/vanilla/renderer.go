package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	rendertemplate "github.com/goliatone/go-paramedit/pkg/render/template"
	gotemplate "github.com/goliatone/go-paramedit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-paramedit/pkg/store"
)

// Name is the registry name of the HTML renderer.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits a plain HTML form with one control per parameter.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	if err := renderer.GlobalContext(map[string]any{"classes": chromeClasses()}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: set template globals: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render reconciles the form model against its definitions and renders every
// control in definition order.
func (r *Renderer) Render(_ context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	form = render.LocalizeForm(form, opts)
	partials := resolvePartials(opts)
	current := store.Initialize(form.Definitions, form.Model)

	fields := make([]string, 0, len(form.Definitions))
	for _, def := range form.Definitions {
		markup, err := r.renderField(def, store.GetValue(current, def.ID), partials, opts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, markup)
	}

	method := strings.ToLower(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "post"
	}

	result, err := r.templates.RenderTemplate(partials[PartialForm], map[string]any{
		"title":       form.Title,
		"method":      method,
		"action":      opts.Action,
		"submitLabel": opts.Submit(),
		"hidden":      render.SortedHiddenFields(opts.HiddenFields),
		"fields":      fields,
		"theme":       themeContext(opts),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(def model.ParameterDefinition, value model.Value, partials map[string]string, opts render.RenderOptions) (string, error) {
	ctrl := render.BuildControl(def, value, opts.Placeholder())

	partial := partialForKind(def.Kind)
	path := partials[partial]
	if path == "" {
		return "", fmt.Errorf("vanilla renderer: no template for parameter %d of kind %q", def.ID, def.Kind)
	}

	markup, err := r.templates.RenderTemplate(path, map[string]any{
		"control":     ctrl,
		"description": sanitizeDescription(ctrl.Description),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla renderer: render parameter %d: %w", def.ID, err)
	}
	return markup, nil
}

func partialForKind(kind model.Kind) string {
	switch kind {
	case model.KindNumber:
		return PartialNumber
	case model.KindChoice:
		return PartialChoice
	default:
		return PartialText
	}
}

func resolvePartials(opts render.RenderOptions) map[string]string {
	partials := DefaultPartials()
	if opts.Theme == nil {
		return partials
	}
	for key, path := range opts.Theme.Partials {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if _, known := partials[key]; known {
			partials[key] = path
		}
	}
	return partials
}

func themeContext(opts render.RenderOptions) map[string]any {
	ctx := map[string]any{}
	cfg := opts.Theme
	if cfg == nil {
		return ctx
	}
	ctx["name"] = cfg.Theme
	ctx["variant"] = cfg.Variant
	if cfg.AssetURL != nil {
		if href := cfg.AssetURL(StylesheetAsset); href != "" {
			ctx["stylesheet"] = href
		}
	}
	if style := cssVarsStyle(cfg.CSSVars); style != "" {
		ctx["cssVars"] = style
	}
	return ctx
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, key := range keys {
		name := cssValue(strings.TrimSpace(key))
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		b.WriteString(name)
		b.WriteString(":")
		b.WriteString(cssValue(vars[key]))
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}
