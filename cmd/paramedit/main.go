package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-paramedit/pkg/definitions"
	"github.com/goliatone/go-paramedit/pkg/model"
)

// app carries state shared by every subcommand.
type app struct {
	verbose bool
	logger  *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "paramedit",
		Short: "Edit parameter values against a definitions catalog",
		Long: `paramedit renders editable controls for a catalog of text, number and
choice parameters, lets you edit them in a browser or terminal, and prints the
retrieved model.

Definitions documents may be JSON, YAML or TOML:

  title: Edit product
  definitions:
    - {id: 1, name: Product name, kind: text}
    - {id: 5, name: Color, kind: choice, choices: [Red, Blue]}
  model:
    paramValues:
      - {paramId: 1, value: Widget}`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.renderCmd(),
		a.editCmd(),
		a.serveCmd(),
		a.importCmd(),
		a.validateCmd(),
	)
	return root
}

// source selects where a command reads its catalog from: a definitions
// document or an OpenAPI component schema.
type source struct {
	file    string
	openapi string
	schema  string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "definitions document (.json, .yaml, .toml)")
	cmd.Flags().StringVar(&s.openapi, "openapi", "", "OpenAPI document to derive definitions from")
	cmd.Flags().StringVar(&s.schema, "schema", "", "component schema name used with --openapi")
	cmd.MarkFlagsMutuallyExclusive("file", "openapi")
	cmd.MarkFlagsOneRequired("file", "openapi")
	cmd.MarkFlagsRequiredTogether("openapi", "schema")
}

func (s *source) load(ctx context.Context, logger *zap.Logger) (model.Form, error) {
	if s.file != "" {
		form, err := definitions.LoadFile(s.file)
		if err != nil {
			return model.Form{}, err
		}
		logger.Debug("definitions loaded", zap.String("file", s.file), zap.Int("count", len(form.Definitions)))
		return form, nil
	}

	data, err := os.ReadFile(s.openapi)
	if err != nil {
		return model.Form{}, fmt.Errorf("read %s: %w", s.openapi, err)
	}
	defs, err := definitions.FromOpenAPI(ctx, data, s.schema)
	if err != nil {
		return model.Form{}, err
	}
	logger.Debug("definitions derived from openapi",
		zap.String("file", s.openapi),
		zap.String("schema", s.schema),
		zap.Int("count", len(defs)),
	)
	return model.Form{Title: s.schema, Definitions: defs}, nil
}
