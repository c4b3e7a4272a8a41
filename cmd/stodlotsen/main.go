// Package main is the stodlotsen CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/config"
	"github.com/hyperjump/stodlotsen/internal/format"
	"github.com/hyperjump/stodlotsen/internal/freshness"
	"github.com/hyperjump/stodlotsen/internal/search"
	"github.com/hyperjump/stodlotsen/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/stodlotsen/config.yaml"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "stodlotsen",
		Short: "Find Swedish support programs and benefits",
		Long: `stodlotsen searches a catalog of Swedish support programs for individuals
and businesses. It serves the catalog over an HTTP API and as MCP tools, and
can query it directly from the command line.

Examples:
  stodlotsen serve
  stodlotsen mcp
  stodlotsen search ensamstående mamma hyra
  stodlotsen search --audience företag --category investering vill investera i maskiner
  stodlotsen show fk-bostadsbidrag --lang en`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfigPath, "config file path")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(opts),
		newMCPCmd(opts),
		newSearchCmd(opts),
		newShowCmd(opts),
		newListCmd(opts),
		newStatsCmd(opts),
		newImportCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development), then the default path,
// and finally falls back to built-in defaults when neither exists.
// Returns the config and the path that was actually loaded ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(fallback); err == nil {
				cfg, err := config.Load(fallback)
				if err != nil {
					return nil, "", err
				}
				return cfg, fallback, nil
			}
		}
		if _, err := os.Stat(path); err != nil {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// app bundles the components a command needs.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	provider  *catalog.Provider
	checker   *freshness.Checker
	engine    *search.Engine
	formatter *format.Formatter
}

func (o *rootOptions) newApp() (*app, error) {
	cfg, resolved, err := loadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.ApplyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	debug := cfg.Debug || o.debug
	logger, err := utils.NewLogger(debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("config_path", resolved),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.Bool("debug", debug),
	)

	provider := catalog.NewProvider(cfg.Catalog.Path, catalog.WithLogger(logger))
	checker := freshness.NewChecker(time.Duration(cfg.Catalog.StaleAfterDays) * 24 * time.Hour)
	return &app{
		cfg:       cfg,
		logger:    logger,
		provider:  provider,
		checker:   checker,
		engine:    search.NewEngine(provider, &cfg.Search, search.WithLogger(logger)),
		formatter: format.New(checker),
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stodlotsen version %s\n", version)
		},
	}
}
