package definitions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// ParamIDExtension pins the parameter id of an OpenAPI property.
const ParamIDExtension = "x-param-id"

// FromOpenAPI derives a catalog from the named component schema of an OpenAPI
// document. Strings map to text, numbers and integers to number, and any enum
// to choice. Ids come from x-param-id; properties without one are numbered
// after the highest pinned id in property-name order. Names come from the
// property title, falling back to the property name. The catalog is ordered
// by id.
func FromOpenAPI(ctx context.Context, data []byte, schemaName string) ([]model.ParameterDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("definitions: openapi document is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("definitions: load openapi document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}

	names := make([]string, 0, len(ref.Value.Properties))
	for name := range ref.Value.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]model.ParameterDefinition, 0, len(names))
	var unpinned []int
	maxID := 0
	for _, name := range names {
		property := ref.Value.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		def, err := convertProperty(name, property.Value)
		if err != nil {
			return nil, err
		}
		id, pinned, err := paramID(property.Value.Extensions)
		if err != nil {
			return nil, fmt.Errorf("definitions: property %q: %w", name, err)
		}
		if pinned {
			def.ID = id
			if id > maxID {
				maxID = id
			}
		} else {
			unpinned = append(unpinned, len(defs))
		}
		defs = append(defs, def)
	}
	for _, idx := range unpinned {
		maxID++
		defs[idx].ID = maxID
	}

	sort.SliceStable(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	if err := Validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func convertProperty(name string, schema *openapi3.Schema) (model.ParameterDefinition, error) {
	def := model.ParameterDefinition{
		Name:        strings.TrimSpace(schema.Title),
		Description: schema.Description,
	}
	if def.Name == "" {
		def.Name = name
	}

	if len(schema.Enum) > 0 {
		def.Kind = model.KindChoice
		def.Choices = make([]string, 0, len(schema.Enum))
		for _, option := range schema.Enum {
			def.Choices = append(def.Choices, fmt.Sprint(option))
		}
		return def, nil
	}

	schemaType := ""
	if schema.Type != nil && len(schema.Type.Slice()) > 0 {
		schemaType = schema.Type.Slice()[0]
	}
	switch schemaType {
	case openapi3.TypeString, "":
		def.Kind = model.KindText
	case openapi3.TypeNumber, openapi3.TypeInteger:
		def.Kind = model.KindNumber
	default:
		return def, fmt.Errorf("%w: property %q has type %q", ErrUnknownKind, name, schemaType)
	}
	return def, nil
}

func paramID(extensions map[string]any) (int, bool, error) {
	raw, ok := extensions[ParamIDExtension]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false, fmt.Errorf("%s must be an integer, got %v", ParamIDExtension, v)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case string:
		id, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false, fmt.Errorf("%s must be an integer: %w", ParamIDExtension, err)
		}
		return id, true, nil
	default:
		return 0, false, fmt.Errorf("%s must be an integer, got %T", ParamIDExtension, raw)
	}
}
