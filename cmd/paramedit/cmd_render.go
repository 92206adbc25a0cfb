package main

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramedit/pkg/render"
	"github.com/goliatone/go-paramedit/pkg/renderers/vanilla"
)

func (a *app) renderCmd() *cobra.Command {
	var (
		src       source
		output    string
		action    string
		templates string
		tokens    []string
		locale    string
		messages  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the catalog as an HTML form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := src.load(cmd.Context(), a.logger)
			if err != nil {
				return err
			}

			options := []vanilla.Option{}
			if templates != "" {
				options = append(options, vanilla.WithTemplatesDir(templates))
			}
			renderer, err := vanilla.New(options...)
			if err != nil {
				return err
			}

			themeTokens, err := parseTokens(tokens)
			if err != nil {
				return err
			}
			opts := render.RenderOptions{Action: action, Locale: locale}
			if messages != "" {
				catalog, err := loadCatalog(messages)
				if err != nil {
					return err
				}
				opts.Translator = catalog
			}
			if len(themeTokens) > 0 {
				opts.Theme = vanilla.ThemeConfig(&theme.Manifest{Name: "cli", Tokens: themeTokens}, "")
			}

			html, err := renderer.Render(cmd.Context(), form, opts)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(html)
				return err
			}
			if err := os.WriteFile(output, html, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Info("form written", zap.String("path", output))
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&action, "action", "", "form action URL")
	cmd.Flags().StringVar(&templates, "templates", "", "directory overriding the embedded templates")
	cmd.Flags().StringArrayVar(&tokens, "token", nil, "theme token as name=value (repeatable)")
	cmd.Flags().StringVar(&locale, "locale", "", "locale used to translate labels")
	cmd.Flags().StringVar(&messages, "translations", "", "YAML file of messages keyed by locale")
	cmd.MarkFlagsRequiredTogether("locale", "translations")
	return cmd
}

// catalog is a translation table keyed by locale, then message key:
//
//	es:
//	  form.title: Editar producto
//	  params.4.name: Precio
type catalog map[string]map[string]string

func (c catalog) Translate(locale, key string, _ ...any) (string, error) {
	msg, ok := c[locale][key]
	if !ok {
		return "", fmt.Errorf("no %s translation for %q", locale, key)
	}
	return msg, nil
}

func loadCatalog(path string) (catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	out := catalog{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

func parseTokens(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --token %q: expected name=value", entry)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
