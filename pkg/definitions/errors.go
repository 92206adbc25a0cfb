package definitions

import "errors"

var (
	// ErrDuplicateID reports two definitions sharing an id.
	ErrDuplicateID = errors.New("definitions: duplicate parameter id")
	// ErrEmptyName reports a definition without a display name.
	ErrEmptyName = errors.New("definitions: parameter name is required")
	// ErrUnknownKind reports a kind outside text, number and choice.
	ErrUnknownKind = errors.New("definitions: unknown parameter kind")
	// ErrMissingChoices reports a choice definition without options.
	ErrMissingChoices = errors.New("definitions: choice parameter requires choices")
	// ErrUnexpectedChoices reports options on a non-choice definition.
	ErrUnexpectedChoices = errors.New("definitions: only choice parameters carry choices")
	// ErrInvalidChoice reports an empty or repeated choice value. The empty
	// value is reserved for the unselected placeholder.
	ErrInvalidChoice = errors.New("definitions: invalid choice value")
	// ErrDuplicateValue reports a model listing the same parameter twice.
	ErrDuplicateValue = errors.New("definitions: duplicate value for parameter")
	// ErrUnsupportedFormat reports an unknown document format.
	ErrUnsupportedFormat = errors.New("definitions: unsupported document format")
	// ErrSchemaNotFound reports a missing OpenAPI component schema.
	ErrSchemaNotFound = errors.New("definitions: schema not found")
)
