package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-paramedit/pkg/httpform"
	"github.com/goliatone/go-paramedit/pkg/render"
)

func (a *app) serveCmd() *cobra.Command {
	var (
		src  source
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as an HTML form over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := src.load(cmd.Context(), a.logger)
			if err != nil {
				return err
			}
			handler, err := httpform.NewHandler(form,
				httpform.WithLogger(a.logger),
				httpform.WithRenderOptions(render.RenderOptions{Action: "/"}),
			)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle("/", handler)
			mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", zap.String("addr", addr))
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.logger.Info("shutting down")
			return server.Shutdown(ctx)
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
