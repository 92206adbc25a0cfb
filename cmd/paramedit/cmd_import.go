package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-paramedit/pkg/definitions"
)

func (a *app) importCmd() *cobra.Command {
	var (
		src    source
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert a catalog into a definitions document",
		Long: `Reads a catalog from a definitions document or an OpenAPI component schema
and writes it as JSON, YAML or TOML. Properties of the schema may pin their id
with the x-param-id extension.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := src.load(cmd.Context(), a.logger)
			if err != nil {
				return err
			}
			data, err := definitions.Encode(form, definitions.Format(format))
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: json, yaml or toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
