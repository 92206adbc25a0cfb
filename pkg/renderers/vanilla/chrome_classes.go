package vanilla

// ChromeClass is a typed identifier for the structural CSS hooks emitted
// around controls. The renderer ships no styles for them.
type ChromeClass string

const (
	ClassForm    ChromeClass = "paramedit-form"
	ClassHeader  ChromeClass = "paramedit-header"
	ClassField   ChromeClass = "paramedit-field"
	ClassActions ChromeClass = "paramedit-actions"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":    string(ClassForm),
		"header":  string(ClassHeader),
		"field":   string(ClassField),
		"actions": string(ClassActions),
	}
}
