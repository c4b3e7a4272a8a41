// Package mcp exposes the support catalog as Model Context Protocol tools.
//
// The tool names and argument names are Swedish and form the public contract
// with MCP clients: sok_stod, stod_detaljer, lista_stod and stod_statistik.
package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/format"
	"github.com/hyperjump/stodlotsen/internal/freshness"
	"github.com/hyperjump/stodlotsen/internal/search"
)

// DefaultInstructions is sent to clients during initialization.
const DefaultInstructions = "Hjälper dig hitta svenska bidrag och stöd för privatpersoner och företag. " +
	"Supports Swedish, English, and Arabic."

// Config configures the MCP server.
type Config struct {
	// Name is the server implementation name (default: "Stödlotsen")
	Name string

	// Version is the server version (default: "1.0.0")
	Version string

	// Instructions is the usage hint for clients (default: DefaultInstructions)
	Instructions string

	// Logger for structured logging
	Logger *zap.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:         "Stödlotsen",
		Version:      "1.0.0",
		Instructions: DefaultInstructions,
		Logger:       zap.NewNop(),
	}
}

// Server serves the catalog tools over an MCP transport.
type Server struct {
	mcp       *mcp.Server
	engine    *search.Engine
	source    catalog.Source
	checker   *freshness.Checker
	formatter *format.Formatter
	logger    *zap.Logger
}

// NewServer creates an MCP server. Every tool call reads the current
// snapshot from source, so catalog reloads are picked up immediately.
func NewServer(cfg *Config, engine *search.Engine, source catalog.Source, checker *freshness.Checker) (*Server, error) {
	defaults := DefaultConfig()
	if cfg == nil {
		cfg = defaults
	}
	if engine == nil {
		return nil, fmt.Errorf("search engine is required")
	}
	if source == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	if checker == nil {
		checker = freshness.NewChecker(0)
	}
	name, version, instructions, logger := cfg.Name, cfg.Version, cfg.Instructions, cfg.Logger
	if name == "" {
		name = defaults.Name
	}
	if version == "" {
		version = defaults.Version
	}
	if instructions == "" {
		instructions = defaults.Instructions
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcp: mcp.NewServer(
			&mcp.Implementation{Name: name, Version: version},
			&mcp.ServerOptions{Instructions: instructions},
		),
		engine:    engine,
		source:    source,
		checker:   checker,
		formatter: format.New(checker),
		logger:    logger,
	}
	s.registerTools()
	return s, nil
}

// Run serves MCP on stdin/stdout until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio transport")
	if err := s.mcp.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("server run failed: %w", err)
	}
	return nil
}

// Handler returns a streamable HTTP handler serving the same tools.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}
