package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl templates/fields/*.tmpl
var embeddedTemplates embed.FS

// Template paths of the built-in bundle, keyed by theme partial name.
const (
	PartialForm   = "forms.form"
	PartialText   = "forms.text"
	PartialNumber = "forms.number"
	PartialChoice = "forms.choice"

	// StylesheetAsset is the theme asset key linked ahead of the form.
	StylesheetAsset = "vanilla.stylesheet"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// DefaultPartials maps partial names onto the embedded templates. Themes
// override individual entries.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialForm:   "templates/form.tmpl",
		PartialText:   "templates/fields/input.tmpl",
		PartialNumber: "templates/fields/input.tmpl",
		PartialChoice: "templates/fields/choice.tmpl",
	}
}
