package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hyperjump/stodlotsen/internal/config"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio, or over HTTP when PORT is set",
		Long: `Run the MCP server exposing sok_stod, stod_detaljer, lista_stod and
stod_statistik.

Without PORT the server speaks MCP over stdin/stdout and logs to stderr.
With PORT set it serves the streamable HTTP transport at /mcp, next to the
HTTP API.

Examples:
  stodlotsen mcp
  PORT=8000 stodlotsen mcp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp()
			if err != nil {
				return err
			}
			defer a.logger.Sync()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if config.PortFromEnv(os.Getenv) {
				return a.serveHTTP(ctx)
			}
			if _, err := a.provider.Reload(ctx); err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			srv, err := a.newMCPServer()
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}
