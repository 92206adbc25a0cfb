package definitions_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-paramedit/pkg/definitions"
	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/testsupport"
)

func expectedForm() model.Form {
	form := testsupport.Form()
	form.Definitions[1].Description = "Unit price in <strong>EUR</strong>"
	return form
}

func TestLoadFile_AllFormats(t *testing.T) {
	for _, name := range []string{"product.json", "product.yaml", "product.toml"} {
		t.Run(name, func(t *testing.T) {
			form, err := definitions.LoadFile(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			want := expectedForm()
			if diff := cmp.Diff(want.Definitions, form.Definitions); diff != "" {
				t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
			}
			if diff := testsupport.CompareModels(want.Model, form.Model); diff != "" {
				t.Fatalf("model mismatch (-want +got):\n%s", diff)
			}
			if form.Title != want.Title {
				t.Fatalf("title mismatch: %q", form.Title)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "product.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	fsys := fstest.MapFS{"defs/product.yml": {Data: data}}

	form, err := definitions.LoadFS(fsys, "defs/product.yml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if len(form.Definitions) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(form.Definitions))
	}
	if _, err := definitions.LoadFS(fsys, "defs/product.xml"); !errors.Is(err, definitions.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"duplicate id": {
			doc:  `{"definitions":[{"id":1,"name":"A","kind":"text"},{"id":1,"name":"B","kind":"text"}]}`,
			want: definitions.ErrDuplicateID,
		},
		"unknown kind": {
			doc:  `{"definitions":[{"id":1,"name":"A","kind":"date"}]}`,
			want: definitions.ErrUnknownKind,
		},
		"missing choices": {
			doc:  `{"definitions":[{"id":1,"name":"A","kind":"choice"}]}`,
			want: definitions.ErrMissingChoices,
		},
		"unexpected choices": {
			doc:  `{"definitions":[{"id":1,"name":"A","kind":"number","choices":["1"]}]}`,
			want: definitions.ErrUnexpectedChoices,
		},
		"empty name": {
			doc:  `{"definitions":[{"id":1,"name":" ","kind":"text"}]}`,
			want: definitions.ErrEmptyName,
		},
		"empty choice": {
			doc:  `{"definitions":[{"id":1,"name":"A","kind":"choice","choices":["Red",""]}]}`,
			want: definitions.ErrInvalidChoice,
		},
		"repeated choice": {
			doc:  `{"definitions":[{"id":1,"name":"A","kind":"choice","choices":["Red","Red"]}]}`,
			want: definitions.ErrInvalidChoice,
		},
		"duplicate value": {
			doc:  `{"definitions":[{"id":1,"name":"A","kind":"text"}],"model":{"paramValues":[{"paramId":1,"value":"x"},{"paramId":1,"value":"y"}]}}`,
			want: definitions.ErrDuplicateValue,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := definitions.Parse([]byte(tc.doc), definitions.FormatJSON)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	if _, err := definitions.Parse([]byte(`{"definitions":[],"extra":true}`), definitions.FormatJSON); err == nil {
		t.Fatalf("expected unknown field error for json")
	}
	if _, err := definitions.Parse([]byte("definitions: []\nextra: true\n"), definitions.FormatYAML); err == nil {
		t.Fatalf("expected unknown field error for yaml")
	}
	if _, err := definitions.Parse([]byte("extra = true\n"), definitions.FormatTOML); err == nil {
		t.Fatalf("expected unknown key error for toml")
	}
	if _, err := definitions.Parse(nil, "ini"); !errors.Is(err, definitions.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParse_NullValueDecodesAsNaN(t *testing.T) {
	form, err := definitions.Parse([]byte(`{"definitions":[{"id":4,"name":"Price","kind":"number"}],"model":{"paramValues":[{"paramId":4,"value":null}]}}`), definitions.FormatJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !form.Model.Values[0].Value.IsNaN() {
		t.Fatalf("expected not-a-number, got %#v", form.Model.Values[0].Value)
	}
}

func TestFromOpenAPI(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "product.openapi.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	defs, err := definitions.FromOpenAPI(context.Background(), data, "Product")
	if err != nil {
		t.Fatalf("from openapi: %v", err)
	}

	want := []model.ParameterDefinition{
		{ID: 1, Name: "Product name", Kind: model.KindText},
		{ID: 4, Name: "Price", Kind: model.KindNumber, Description: "Unit price"},
		{ID: 5, Name: "Color", Kind: model.KindChoice, Choices: []string{"Red", "Blue"}},
		{ID: 6, Name: "sku", Kind: model.KindText},
	}
	if diff := cmp.Diff(want, defs); diff != "" {
		t.Fatalf("definitions mismatch (-want +got):\n%s", diff)
	}

	if _, err := definitions.FromOpenAPI(context.Background(), data, "Missing"); !errors.Is(err, definitions.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
}
