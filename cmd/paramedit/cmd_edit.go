package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-paramedit/pkg/model"
	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/live"
	"github.com/goliatone/go-paramedit/pkg/renderers/tui"
	"github.com/goliatone/go-paramedit/pkg/store"
)

func (a *app) editCmd() *cobra.Command {
	var (
		src    source
		ui     string
		format string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the catalog in the terminal and print the retrieved model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("unknown --format %q", format)
			}
			form, err := src.load(cmd.Context(), a.logger)
			if err != nil {
				return err
			}

			prompts, err := tui.New(tui.WithOutputFormat(outputFormat), tui.WithLogger(a.logger))
			if err != nil {
				return err
			}
			session := store.New(form.Definitions, form.Model, store.WithLogger(a.logger))

			var snapshot model.Model
			switch ui {
			case "prompt":
				snapshot, err = prompts.Edit(cmd.Context(), session, render.RenderOptions{})
			case "live":
				snapshot, err = live.Run(cmd.Context(), form.Title, session, render.RenderOptions{}, live.WithAltScreen())
			default:
				return fmt.Errorf("unknown --ui %q: expected prompt or live", ui)
			}
			if err != nil {
				return err
			}
			a.logger.Debug("model retrieved", zap.Uint64("revision", session.Revision()), zap.Ints("dirty", session.Dirty()))

			out, err := prompts.Serialize(form.Definitions, snapshot)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&ui, "ui", "prompt", "editor: prompt or live")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, form or pretty")
	return cmd
}
