package definitions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// Validate checks a catalog: ids unique, names present, kinds known, choices
// present only on choice parameters and never empty or repeated. All
// violations are joined.
func Validate(defs []model.ParameterDefinition) error {
	var errs []error
	seen := make(map[int]struct{}, len(defs))
	for _, def := range defs {
		if _, dup := seen[def.ID]; dup {
			errs = append(errs, fmt.Errorf("%w: %d", ErrDuplicateID, def.ID))
		}
		seen[def.ID] = struct{}{}

		if strings.TrimSpace(def.Name) == "" {
			errs = append(errs, fmt.Errorf("%w: parameter %d", ErrEmptyName, def.ID))
		}
		if !def.Kind.Valid() {
			errs = append(errs, fmt.Errorf("%w: parameter %d: %q", ErrUnknownKind, def.ID, def.Kind))
			continue
		}
		switch {
		case def.Kind == model.KindChoice && len(def.Choices) == 0:
			errs = append(errs, fmt.Errorf("%w: parameter %d", ErrMissingChoices, def.ID))
		case def.Kind != model.KindChoice && len(def.Choices) > 0:
			errs = append(errs, fmt.Errorf("%w: parameter %d", ErrUnexpectedChoices, def.ID))
		}
		errs = append(errs, validateChoices(def)...)
	}
	return errors.Join(errs...)
}

func validateChoices(def model.ParameterDefinition) []error {
	var errs []error
	seen := make(map[string]struct{}, len(def.Choices))
	for _, choice := range def.Choices {
		if choice == "" {
			errs = append(errs, fmt.Errorf("%w: parameter %d: empty value", ErrInvalidChoice, def.ID))
			continue
		}
		if _, dup := seen[choice]; dup {
			errs = append(errs, fmt.Errorf("%w: parameter %d: %q repeated", ErrInvalidChoice, def.ID, choice))
		}
		seen[choice] = struct{}{}
	}
	return errs
}

// ValidateModel checks that no parameter id appears twice in the model.
func ValidateModel(m model.Model) error {
	var errs []error
	seen := make(map[int]struct{}, len(m.Values))
	for _, pv := range m.Values {
		if _, dup := seen[pv.ParameterID]; dup {
			errs = append(errs, fmt.Errorf("%w: %d", ErrDuplicateValue, pv.ParameterID))
		}
		seen[pv.ParameterID] = struct{}{}
	}
	return errors.Join(errs...)
}
