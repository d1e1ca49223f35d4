package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/skein-dev/skein/internal/dataset"
	"github.com/skein-dev/skein/internal/server"
)

const (
	defaultAddr     = "localhost:8080"
	shutdownTimeout = 5 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string // listen address
}

// serveCommand creates the serve command for hosting the graph and viewer.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve <dataset.toml>",
		Short: "Serve the graph and browser viewer over HTTP",
		Long: `Serve loads a dataset and exposes its force-directed graph over HTTP,
along with an embedded browser viewer at the root path.

The dataset file is read once at startup; restart the server after
editing it.

Endpoints:
  GET /                  Browser viewer
  GET /api/graph         Variant-keyed node/edge maps
  GET /api/graph/flat    Flat nodes/links lists
  GET /api/focus         Initial zoom target (204 when none)
  GET /healthz           Liveness check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", opts.addr, "listen address")

	return cmd
}

// runServe loads the dataset, verifies it builds cleanly, and serves it
// until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, path string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	ds, err := dataset.Load(path)
	if err != nil {
		printError("Cannot load dataset: %v", err)
		return err
	}

	// Build once up front so a broken dataset fails at startup, not on
	// the first request.
	g, err := ds.BuildGraph()
	if err != nil {
		printError("Build failed: %v", err)
		return err
	}
	logger.Debugf("Dataset builds cleanly: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(ds, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %s", StyleHighlight.Render(ds.Title))
	printStats(g.NodeCount(), g.EdgeCount(), false)
	printDetail("Viewer: %s", StyleLink.Render("http://"+opts.addr+"/"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
