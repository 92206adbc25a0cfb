package definitions

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// Encode writes form as a definitions document that Parse accepts.
func Encode(form model.Form, format Format) ([]byte, error) {
	if form.Model.Values == nil {
		form.Model.Values = []model.ParameterValue{}
	}
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(form, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("definitions: encode json: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(form); err != nil {
			return nil, fmt.Errorf("definitions: encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("definitions: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(form); err != nil {
			return nil, fmt.Errorf("definitions: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
