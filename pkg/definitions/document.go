package definitions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// Format identifies the encoding of a definitions document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// document mirrors model.Form with kinds kept raw so unknown kinds surface as
// validation errors instead of decode errors.
type document struct {
	Title       string          `json:"title" yaml:"title" toml:"title"`
	Definitions []rawDefinition `json:"definitions" yaml:"definitions" toml:"definitions"`
	Model       model.Model     `json:"model" yaml:"model" toml:"model"`
}

type rawDefinition struct {
	ID          int      `json:"id" yaml:"id" toml:"id"`
	Name        string   `json:"name" yaml:"name" toml:"name"`
	Kind        string   `json:"kind" yaml:"kind" toml:"kind"`
	Choices     []string `json:"choices" yaml:"choices" toml:"choices"`
	Description string   `json:"description" yaml:"description" toml:"description"`
}

// Parse decodes and validates a definitions document.
func Parse(data []byte, format Format) (model.Form, error) {
	var doc document
	switch format {
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&doc); err != nil {
			return model.Form{}, fmt.Errorf("definitions: decode json: %w", err)
		}
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			return model.Form{}, fmt.Errorf("definitions: decode yaml: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &doc)
		if err != nil {
			return model.Form{}, fmt.Errorf("definitions: decode toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return model.Form{}, fmt.Errorf("definitions: decode toml: unknown key %q", undecoded[0].String())
		}
	default:
		return model.Form{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	defs, err := doc.definitions()
	if err != nil {
		return model.Form{}, err
	}
	if err := ValidateModel(doc.Model); err != nil {
		return model.Form{}, err
	}
	return model.Form{
		Title:       doc.Title,
		Definitions: defs,
		Model:       doc.Model,
	}, nil
}

func (d document) definitions() ([]model.ParameterDefinition, error) {
	defs := make([]model.ParameterDefinition, 0, len(d.Definitions))
	for _, raw := range d.Definitions {
		kind, err := model.ParseKind(raw.Kind)
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %d: %q", ErrUnknownKind, raw.ID, raw.Kind)
		}
		defs = append(defs, model.ParameterDefinition{
			ID:          raw.ID,
			Name:        raw.Name,
			Kind:        kind,
			Choices:     raw.Choices,
			Description: raw.Description,
		})
	}
	if err := Validate(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// LoadFile reads a definitions document from disk, inferring the format from
// the extension.
func LoadFile(path string) (model.Form, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return model.Form{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, fmt.Errorf("definitions: read %s: %w", path, err)
	}
	return Parse(data, format)
}

// LoadFS reads a definitions document from fsys.
func LoadFS(fsys fs.FS, path string) (model.Form, error) {
	if fsys == nil {
		return model.Form{}, fmt.Errorf("definitions: filesystem is not configured")
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return model.Form{}, err
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return model.Form{}, fmt.Errorf("definitions: read %s: %w", path, err)
	}
	return Parse(data, format)
}
