package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boundlayout/internal/api"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		timeout       time.Duration
		maxIterations int
		backend       backendFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  GET  /healthz
  POST /v1/layout                 lay out a scene (JSON body)
  GET  /v1/layouts/{runID}        fetch a stored layout
  POST /v1/partition/{regionID}   free-space partition of one region

Layouts are kept in memory unless --store-dir or --mongo-uri selects a
persistent store. The X-Tenant header namespaces cache entries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, backend)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			stores, err := c.newStores(ctx, backend)
			if err != nil {
				return fmt.Errorf("open stores: %w", err)
			}
			defer closeStores(context.WithoutCancel(ctx), stores)

			cfg := api.Config{
				Runner:         runner,
				Logger:         c.Logger,
				RequestTimeout: timeout,
				MaxIterations:  maxIterations,
			}
			// The first store answers lookups; the rest only receive copies.
			if len(stores) > 0 {
				cfg.Store = stores[0]
				for _, st := range stores[1:] {
					runner.Sinks = append(runner.Sinks, st)
				}
			}

			return c.serve(ctx, addr, api.New(cfg).Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", api.DefaultRequestTimeout, "per-request timeout")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", api.DefaultMaxIterations, "reject scenes asking for more iterations")
	backend.register(cmd)

	return cmd
}

// serve runs handler on addr until ctx is cancelled, then drains in-flight
// requests.
func (c *CLI) serve(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	logger := loggerFromContext(ctx)
	go func() { errc <- srv.Serve(ln) }()
	logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	prog := newProgress(logger)
	defer prog.done("Server stopped")
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
