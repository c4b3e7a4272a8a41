package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns a zap logger writing to stderr. When debug is true, uses
// development config (human-readable, debug level); otherwise uses production
// config (JSON, info level). Stdout stays free for CLI output and MCP stdio.
func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := loggerConfig(debug)
	return cfg.Build()
}

func loggerConfig(debug bool) zap.Config {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}
