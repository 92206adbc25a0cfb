package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog and report every problem found",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := src.load(cmd.Context(), a.logger)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d parameters, %d values\n", len(form.Definitions), len(form.Model.Values))
			return err
		},
	}
	src.register(cmd)
	return cmd
}
