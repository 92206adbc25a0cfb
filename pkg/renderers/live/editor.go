package live

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/store"
)

const helpText = "tab/shift+tab move • ←/→ choose • ctrl+s retrieve model • esc quit"

// field is the editor state of one parameter. Text and number parameters own
// a text input; choice parameters track the highlighted option.
type field struct {
	def     model.ParameterDefinition
	input   textinput.Model
	options []render.Option
	choice  int
}

// Editor is the bubbletea model behind the live renderer.
type Editor struct {
	title     string
	session   *store.Session
	fields    []field
	focus     int
	styles    Styles
	retrieved bool
	aborted   bool
}

var _ tea.Model = Editor{}

// NewEditor builds an editor over session. The current session values seed
// every control.
func NewEditor(title string, session *store.Session, opts render.RenderOptions) Editor {
	e := Editor{
		title:   title,
		session: session,
		styles:  DefaultStyles(),
	}

	for _, def := range session.Definitions() {
		def = render.LocalizeDefinition(def, opts)
		ctrl := render.BuildControl(def, session.GetValue(def.ID), opts.Placeholder())
		f := field{def: def}
		if def.Kind == model.KindChoice {
			f.options = ctrl.Options
			for i, option := range ctrl.Options {
				if option.Selected {
					f.choice = i
				}
			}
		} else {
			input := textinput.New()
			input.Prompt = ""
			input.CharLimit = 256
			input.Width = 40
			input.SetValue(ctrl.Value)
			if def.Kind == model.KindNumber {
				input.Placeholder = "number"
			}
			f.input = input
		}
		e.fields = append(e.fields, f)
	}
	e.focusField(0)
	return e
}

// WithStyles replaces the editor styles.
func (e Editor) WithStyles(styles Styles) Editor {
	e.styles = styles
	return e
}

// Retrieved reports whether the user asked for the model.
func (e Editor) Retrieved() bool { return e.retrieved }

// Aborted reports whether the user left without retrieving.
func (e Editor) Aborted() bool { return e.aborted }

// Focused returns the id of the focused parameter, or -1 without fields.
func (e Editor) Focused() int {
	if len(e.fields) == 0 {
		return -1
	}
	return e.fields[e.focus].def.ID
}

func (e Editor) Init() tea.Cmd {
	return textinput.Blink
}

func (e Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return e.updateInput(msg)
	}

	switch key.String() {
	case "ctrl+c", "esc":
		e.aborted = true
		return e, tea.Quit
	case "ctrl+s":
		e.retrieved = true
		return e, tea.Quit
	case "tab", "down", "enter":
		e.focusField(e.focus + 1)
		return e, nil
	case "shift+tab", "up":
		e.focusField(e.focus - 1)
		return e, nil
	}

	if len(e.fields) == 0 {
		return e, nil
	}
	current := &e.fields[e.focus]
	if current.def.Kind == model.KindChoice {
		switch key.String() {
		case "right", "l", " ":
			e.cycleChoice(1)
		case "left", "h":
			e.cycleChoice(-1)
		}
		return e, nil
	}

	if current.def.Kind == model.KindNumber && key.Type == tea.KeyRunes {
		key.Runes = numericRunes(key.Runes)
		if len(key.Runes) == 0 {
			return e, nil
		}
	}
	return e.updateInput(key)
}

// updateInput forwards msg to the focused text input and commits the value
// when the input changed.
func (e Editor) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(e.fields) == 0 || e.fields[e.focus].def.Kind == model.KindChoice {
		return e, nil
	}
	current := &e.fields[e.focus]
	before := current.input.Value()

	var cmd tea.Cmd
	current.input, cmd = current.input.Update(msg)
	if after := current.input.Value(); after != before {
		render.Commit(current.def, after, e.session.Update)
	}
	return e, cmd
}

func (e *Editor) cycleChoice(step int) {
	current := &e.fields[e.focus]
	n := len(current.options)
	if n == 0 {
		return
	}
	current.choice = ((current.choice+step)%n + n) % n
	render.Commit(current.def, current.options[current.choice].Value, e.session.Update)
}

func (e *Editor) focusField(index int) {
	if len(e.fields) == 0 {
		return
	}
	n := len(e.fields)
	index = ((index % n) + n) % n

	for i := range e.fields {
		if e.fields[i].def.Kind == model.KindChoice {
			continue
		}
		if i == index {
			e.fields[i].input.Focus()
		} else {
			e.fields[i].input.Blur()
		}
	}
	e.focus = index
}

func (e Editor) View() string {
	var b strings.Builder
	if e.title != "" {
		b.WriteString(e.styles.Title.Render(e.title))
		b.WriteString("\n")
	}

	for i, f := range e.fields {
		label := e.styles.Label
		cursor := "  "
		if i == e.focus {
			label = e.styles.ActiveLabel
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(label.Render(f.def.Name + ":"))
		b.WriteString(" ")
		if f.def.Kind == model.KindChoice {
			b.WriteString(e.renderChoice(f))
		} else {
			b.WriteString(f.input.View())
		}
		b.WriteString("\n")
		if f.def.Description != "" && i == e.focus {
			b.WriteString(e.styles.Description.Render(f.def.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString(e.styles.Help.Render(helpText))
	b.WriteString("\n")
	return b.String()
}

func (e Editor) renderChoice(f field) string {
	if len(f.options) == 0 {
		return ""
	}
	option := f.options[f.choice]
	style := e.styles.Choice
	if option.Placeholder {
		style = e.styles.Placeholder
	}
	return "‹ " + style.Render(option.Label) + " ›"
}

// numericRunes keeps the runes that can appear in a decimal or exponent
// literal.
func numericRunes(in []rune) []rune {
	out := in[:0:0]
	for _, r := range in {
		if (r >= '0' && r <= '9') || strings.ContainsRune(".-+eE", r) {
			out = append(out, r)
		}
	}
	return out
}
