// Package config provides configuration loading and structs for the Stödlotsen server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Search  SearchConfig  `yaml:"search"`
	MCP     MCPConfig     `yaml:"mcp"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig says where support records come from.
// An empty Path uses the catalog built into the binary.
type CatalogConfig struct {
	Path           string `yaml:"path"`
	Watch          bool   `yaml:"watch"`
	StaleAfterDays int    `yaml:"stale_after_days"`
}

// SearchConfig holds ranking and filter settings.
type SearchConfig struct {
	MaxResults int `yaml:"max_results"`
	// NationalRegions are region values that match every region filter.
	NationalRegions []string `yaml:"national_regions"`
}

// MCPConfig names the server in the MCP handshake.
type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Environment variables that override file settings.
const (
	EnvPort    = "PORT"
	EnvCatalog = "STODLOTSEN_CATALOG"
	EnvDebug   = "STODLOTSEN_DEBUG"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if cfg.Catalog.Path != "" {
		cfg.Catalog.Path = expandPath(cfg.Catalog.Path, filepath.Dir(path))
	}

	return &cfg, nil
}

// ApplyEnv overrides cfg from the environment. getenv is usually os.Getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q", EnvPort, v)
		}
		cfg.Server.Port = port
	}
	if v := strings.TrimSpace(getenv(EnvCatalog)); v != "" {
		cfg.Catalog.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvDebug)); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q", EnvDebug, v)
		}
		cfg.Debug = debug
	}
	return nil
}

// PortFromEnv reports whether PORT is set. Its presence selects HTTP mode
// for the MCP server.
func PortFromEnv(getenv func(string) string) bool {
	return strings.TrimSpace(getenv(EnvPort)) != ""
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
