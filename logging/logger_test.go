package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

var (
	_ Logger = (*SwarmLogger)(nil)
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = NoOpLogger{}
)

func TestSwarmLoggerKeyValueArgs(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&LoggerConfig{
		Level:  LogLevelDebug,
		Format: "json",
		Output: &buf,
	})

	logger.WithComponent("runner").WithRun("conv-1", "run-1").Info("run.start", "agent", "Greeter", "turns", 0)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log entry, got %q: %v", buf.String(), err)
	}

	if entry["msg"] != "run.start" {
		t.Errorf("expected msg run.start, got %v", entry["msg"])
	}
	if entry["component"] != "runner" {
		t.Errorf("expected component runner, got %v", entry["component"])
	}
	if entry["conversation_id"] != "conv-1" {
		t.Errorf("expected conversation_id conv-1, got %v", entry["conversation_id"])
	}
	if entry["run_id"] != "run-1" {
		t.Errorf("expected run_id run-1, got %v", entry["run_id"])
	}
	if entry["agent"] != "Greeter" {
		t.Errorf("expected agent Greeter, got %v", entry["agent"])
	}
}

func TestSwarmLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&LoggerConfig{
		Level:  LogLevelWarn,
		Format: "text",
		Output: &buf,
	})

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn level, got %q", buf.String())
	}

	logger.Warn("visible")
	if buf.Len() == 0 {
		t.Fatal("expected warn output")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"", LogLevelInfo},
		{"nonsense", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
