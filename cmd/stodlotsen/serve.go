package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/hyperjump/stodlotsen/internal/mcp"
	"github.com/hyperjump/stodlotsen/internal/server"
	"github.com/hyperjump/stodlotsen/internal/watcher"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with metrics and the MCP endpoint",
		Long: `Run the HTTP API on server.host:server.port (PORT overrides the port).

Routes:
  POST /api/v1/search           ranked search
  GET  /api/v1/records          list records (?audience=, ?lang=)
  GET  /api/v1/records/{id}     one record
  GET  /api/v1/stats            catalog statistics
  POST /api/v1/catalog/reload   reload the catalog file
  GET  /health, /metrics
  /mcp                          MCP streamable HTTP transport

With catalog.watch enabled the catalog file is reloaded when it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serveHTTP(ctx)
		},
	}
}

func (a *app) newMCPServer() (*mcpserver.Server, error) {
	return mcpserver.NewServer(&mcpserver.Config{
		Name:         a.cfg.MCP.Name,
		Version:      a.cfg.MCP.Version,
		Instructions: mcpserver.DefaultInstructions,
		Logger:       a.logger,
	}, a.engine, a.provider, a.checker)
}

// serveHTTP runs the HTTP server until ctx is cancelled, then shuts it down.
func (a *app) serveHTTP(ctx context.Context) error {
	if _, err := a.provider.Reload(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	mcpSrv, err := a.newMCPServer()
	if err != nil {
		return err
	}

	if a.cfg.Catalog.Watch && a.cfg.Catalog.Path != "" {
		w := watcher.NewWatcher(a.cfg.Catalog.Path, a.reloadCatalog, watcher.WithLogger(a.logger))
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("start catalog watcher: %w", err)
		}
		defer w.Stop()
	}

	srv := server.NewServer(a.engine, a.provider, a.checker, mcpSrv.Handler(), &a.cfg.Server, a.logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func (a *app) reloadCatalog(path string) {
	snap, err := a.provider.Reload(context.Background())
	if err != nil {
		a.logger.Warn("catalog reload failed; keeping previous catalog", zap.String("path", path), zap.Error(err))
		return
	}
	a.logger.Info("catalog reloaded", zap.String("path", path), zap.Int("records", snap.Len()))
}
