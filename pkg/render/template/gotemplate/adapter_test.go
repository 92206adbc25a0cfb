package gotemplate_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-paramedit/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"templates/hello.tmpl":  {Data: []byte("Hello {{ name }}")},
		"templates/global.tmpl": {Data: []byte("{{ classes.field }}/{{ name }}")},
		"templates/trim.tmpl":   {Data: []byte("[{{ name|trim }}]")},
		"templates/escape.tmpl": {Data: []byte("<b>{{ label }}</b>")},
		"templates/struct.tmpl": {Data: []byte("{{ control.inputId }}={{ control.value }}")},
		"templates/page.html":   {Data: []byte("page {{ name }}")},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(files)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplateWritesOutputs(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("templates/hello", map[string]any{"name": "Ada"}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada" || buf.String() != result {
		t.Fatalf("unexpected output result=%q writer=%q", result, buf.String())
	}
}

func TestEngine_WithExtension(t *testing.T) {
	engine := newEngine(t, gotemplate.WithExtension("html"))

	result, err := engine.RenderTemplate("templates/page", map[string]any{"name": "one"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "page one" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_GlobalContextIsMergedWithData(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"classes": map[string]string{"field": "paramedit-field"},
		"name":    "global",
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("templates/global.tmpl", map[string]any{"name": "local"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "paramedit-field/local" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_TrimFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("templates/trim", map[string]any{"name": "  Ada \n"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "[Ada]" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("templates/escape", map[string]any{"label": "<script>x</script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<script>") {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	type control struct {
		InputID string `json:"inputId"`
		Value   string `json:"value"`
	}
	result, err := engine.RenderTemplate("templates/struct", map[string]any{
		"control": control{InputID: "param-4", Value: "100"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "param-4=100" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without templates")
	}

	engine := newEngine(t)
	if _, err := engine.RenderTemplate("templates/missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
	if _, err := engine.RenderTemplate("templates/hello", []string{"not", "an", "object"}); err == nil {
		t.Fatalf("expected error for non-object data")
	}
}
