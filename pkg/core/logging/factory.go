// ============================================================================
// mdwloc - Localization Compiler and Runtime
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating Foundation loggers from config
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Component name, written as "logger" on every entry
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json", "text" or "console" (default: console)
	Format string

	// Output writer (default: os.Stderr)
	Output io.Writer

	// Additional outputs, e.g. a log file
	AdditionalOutputs []io.Writer

	// EnableCaller adds file:line to every entry
	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "console",
	}
}

// NewLogger creates a new Foundation logger. Unknown levels and formats fall
// back to info and console.
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level := parseLevel(cfg.Level)

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatConsole
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.Name,
		EnableCaller: cfg.EnableCaller,
	})
}

// NewSimpleLogger creates a console logger at info level
func NewSimpleLogger(name string) *mdwlog.Logger {
	return NewLogger(DefaultLoggerConfig(name))
}

// parseLevel converts a string level to mdwlog.Level
func parseLevel(level string) mdwlog.Level {
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelInfo
	}
	return parsed
}
