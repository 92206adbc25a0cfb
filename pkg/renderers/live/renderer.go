package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/store"
)

// Name is the registry name of the live renderer.
const Name = "live"

// Option configures the live renderer.
type Option func(*config)

type config struct {
	input     io.Reader
	output    io.Writer
	altScreen bool
	styles    *Styles
	logger    *zap.Logger
	programs  []tea.ProgramOption
}

// WithInput overrides the terminal input.
func WithInput(r io.Reader) Option {
	return func(cfg *config) {
		cfg.input = r
	}
}

// WithOutput overrides the terminal output.
func WithOutput(w io.Writer) Option {
	return func(cfg *config) {
		cfg.output = w
	}
}

// WithAltScreen runs the editor in the alternate screen buffer.
func WithAltScreen() Option {
	return func(cfg *config) {
		cfg.altScreen = true
	}
}

// WithStyles replaces the default lipgloss styles.
func WithStyles(styles Styles) Option {
	return func(cfg *config) {
		cfg.styles = &styles
	}
}

// WithLogger forwards a logger to the sessions the renderer creates.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithProgramOptions appends raw bubbletea program options.
func WithProgramOptions(options ...tea.ProgramOption) Option {
	return func(cfg *config) {
		cfg.programs = append(cfg.programs, options...)
	}
}

func newConfig(options []Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Run shows the editor for session until the user retrieves the model or
// quits. It returns ErrAborted when the user quits, and the context error
// when ctx ends first.
func Run(ctx context.Context, title string, session *store.Session, opts render.RenderOptions, options ...Option) (model.Model, error) {
	if session == nil {
		return model.Model{}, errors.New("live: session is required")
	}
	cfg := newConfig(options)

	editor := NewEditor(title, session, opts)
	if cfg.styles != nil {
		editor = editor.WithStyles(*cfg.styles)
	}

	programOptions := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.input != nil {
		programOptions = append(programOptions, tea.WithInput(cfg.input))
	}
	if cfg.output != nil {
		programOptions = append(programOptions, tea.WithOutput(cfg.output))
	}
	if cfg.altScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	programOptions = append(programOptions, cfg.programs...)

	final, err := tea.NewProgram(editor, programOptions...).Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return model.Model{}, ctxErr
	}
	if err != nil {
		return model.Model{}, fmt.Errorf("live: run editor: %w", err)
	}

	result, ok := final.(Editor)
	if !ok || !result.Retrieved() {
		return model.Model{}, ErrAborted
	}
	return session.Snapshot(), nil
}

// Renderer adapts Run to render.Renderer. The output is the retrieved model
// as JSON.
type Renderer struct {
	options []Option
	logger  *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a live renderer.
func New(options ...Option) *Renderer {
	return &Renderer{
		options: options,
		logger:  newConfig(options).logger,
	}
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	session := store.New(form.Definitions, form.Model, store.WithLogger(r.logger))

	snapshot, err := Run(ctx, form.Title, session, opts, r.options...)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("live: encode model: %w", err)
	}
	return out, nil
}
