package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-paramedit/pkg/model"
)

// Translation keys looked up by LocalizeForm and the label helpers.
const (
	TitleKey       = "form.title"
	PlaceholderKey = "controls.placeholder"
	SubmitKey      = "controls.submit"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a locale
// is requested without a Translator.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message for key in locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler picks the string used when key cannot be
// translated. fallback is the untranslated label.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

// NameKey returns the translation key for the display name of parameter id.
func NameKey(id int) string {
	return "params." + strconv.Itoa(id) + ".name"
}

// DescriptionKey returns the translation key for the description of
// parameter id.
func DescriptionKey(id int) string {
	return "params." + strconv.Itoa(id) + ".description"
}

// LocalizeForm returns a copy of form whose title, parameter names and
// descriptions are translated for opts.Locale. The model is shared with the
// input; definitions are copied so the caller's slice is never mutated. Without
// a locale the form is returned unchanged.
func LocalizeForm(form model.Form, opts RenderOptions) model.Form {
	if !opts.localizing() {
		return form
	}
	form.Title = opts.translate(TitleKey, form.Title)
	if form.Definitions != nil {
		defs := make([]model.ParameterDefinition, len(form.Definitions))
		for i, def := range form.Definitions {
			defs[i] = LocalizeDefinition(def, opts)
		}
		form.Definitions = defs
	}
	return form
}

// LocalizeDefinition translates the name and description of def. Choice
// values are data and stay untranslated.
func LocalizeDefinition(def model.ParameterDefinition, opts RenderOptions) model.ParameterDefinition {
	if !opts.localizing() {
		return def
	}
	def.Name = opts.translate(NameKey(def.ID), def.Name)
	if def.Description != "" {
		def.Description = opts.translate(DescriptionKey(def.ID), def.Description)
	}
	return def
}

func (o RenderOptions) localizing() bool {
	return strings.TrimSpace(o.Locale) != ""
}

func (o RenderOptions) translate(key, fallback string) string {
	if !o.localizing() {
		return fallback
	}
	onMissing := o.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if o.Translator == nil {
		return onMissing(o.Locale, key, fallback, ErrMissingTranslator)
	}
	msg, err := o.Translator.Translate(o.Locale, key)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(o.Locale, key, fallback, err)
	}
	return msg
}

func missingTranslationDefault(_ string, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
