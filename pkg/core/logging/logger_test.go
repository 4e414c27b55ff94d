package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"

	mdwlog "github.com/msto63/mdwloc/foundation/core/log"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := New("test-service")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.name != "test-service" {
		t.Errorf("name = %v, want test-service", logger.name)
	}
}

func TestLogger_WithLevel(t *testing.T) {
	logger := New("test")
	result := logger.WithLevel(LevelError)

	if result.GetLevel() != mdwlog.LevelError {
		t.Errorf("level = %v, want error", result.GetLevel())
	}
	if result.name != "test" {
		t.Errorf("name should be preserved: got %v", result.name)
	}
	if logger.GetLevel() != mdwlog.LevelInfo {
		t.Error("WithLevel must not modify the original logger")
	}
}

func TestLogger_KeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := Wrap(NewLogger(LoggerConfig{Name: "kv", Level: "debug", Format: "json", Output: &buf}))

	logger.WithCorrelationID("run-1").Info("message", "key1", "value1", "key2", 42, "orphan")

	out := buf.String()
	for _, want := range []string{`"key1":"value1"`, `"key2":42`, `"correlation_id":"run-1"`, `"logger":"kv"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
	if strings.Contains(out, "orphan") {
		t.Errorf("orphan key must be dropped: %s", out)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		input    string
		expected mdwlog.Level
	}{
		{"trace", mdwlog.LevelTrace},
		{"debug", mdwlog.LevelDebug},
		{"info", mdwlog.LevelInfo},
		{"warning", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"invalid", mdwlog.LevelInfo},
		{"", mdwlog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			logger := NewLogger(LoggerConfig{Level: tt.input, Output: &bytes.Buffer{}})
			if got := logger.GetLevel(); got != tt.expected {
				t.Errorf("level = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, extra bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("written twice")

	if !strings.Contains(primary.String(), "written twice") {
		t.Errorf("primary output = %q", primary.String())
	}
	if primary.String() != extra.String() {
		t.Errorf("outputs differ: %q vs %q", primary.String(), extra.String())
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("mdwloc")

	if cfg.Name != "mdwloc" {
		t.Errorf("Name = %v, want mdwloc", cfg.Name)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("Format = %v, want console", cfg.Format)
	}
}

func TestToFields(t *testing.T) {
	if fields := toFields(); fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields := toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	// Non-string key (should be skipped)
	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Wrap(NewLogger(LoggerConfig{Output: io.Discard}))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("benchmark message", "iteration", i)
	}
}
