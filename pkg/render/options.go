package render

import theme "github.com/goliatone/go-theme"

// DefaultChoicePlaceholder labels the empty entry of choice controls.
const DefaultChoicePlaceholder = "Select a value"

// DefaultSubmitLabel labels the action that retrieves the model.
const DefaultSubmitLabel = "Retrieve model"

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the form itself.
type RenderOptions struct {
	// Action and Method configure the HTML form element. Method defaults to
	// POST.
	Action string
	Method string
	// SubmitLabel overrides DefaultSubmitLabel.
	SubmitLabel string
	// ChoicePlaceholder overrides DefaultChoicePlaceholder.
	ChoicePlaceholder string
	// HiddenFields are emitted as hidden inputs (session ids, CSRF tokens).
	HiddenFields map[string]string
	// Theme carries resolved go-theme tokens, partials and asset URLs.
	Theme *theme.RendererConfig
	// Locale enables translation of labels through Translator. OnMissing
	// overrides the fallback used when a key has no translation.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// Placeholder returns the effective choice placeholder label. An explicit
// ChoicePlaceholder wins over translation.
func (o RenderOptions) Placeholder() string {
	if o.ChoicePlaceholder != "" {
		return o.ChoicePlaceholder
	}
	return o.translate(PlaceholderKey, DefaultChoicePlaceholder)
}

// Submit returns the effective submit label.
func (o RenderOptions) Submit() string {
	if o.SubmitLabel != "" {
		return o.SubmitLabel
	}
	return o.translate(SubmitKey, DefaultSubmitLabel)
}
