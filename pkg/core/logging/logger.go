// ============================================================================
// mdwloc - Localization Compiler and Runtime
// ============================================================================
//
// Package:     logging
// Description: Key-value logging facade over the Foundation logger
// License:     MIT
// ============================================================================

package logging

import (
	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

// Level represents log severity for the key-value facade
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger wraps the Foundation logger with key-value pair methods
type Logger struct {
	*mdwlog.Logger
	name string
}

// New creates a console logger named name
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap adapts a Foundation logger. A nil logger is replaced by the default.
func Wrap(logger *mdwlog.Logger) *Logger {
	return &Logger{Logger: mdwlog.OrDefault(logger)}
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	mdwLevel := mdwlog.LevelInfo
	switch level {
	case LevelDebug:
		mdwLevel = mdwlog.LevelDebug
	case LevelInfo:
		mdwLevel = mdwlog.LevelInfo
	case LevelWarn:
		mdwLevel = mdwlog.LevelWarn
	case LevelError:
		mdwLevel = mdwlog.LevelError
	}

	return &Logger{
		Logger: l.Logger.WithLevel(mdwLevel),
		name:   l.name,
	}
}

// WithCorrelationID returns a new logger that stamps id on every entry
func (l *Logger) WithCorrelationID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.WithCorrelationID(id),
		name:   l.name,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to mdwlog.Fields
func toFields(keysAndValues ...interface{}) mdwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mdwlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
