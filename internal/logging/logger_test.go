// Package logging provides structured logging functionality tests
package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func decodeLastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("Failed to parse log output: %v", err)
	}
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"info level default", "invalid", slog.LevelInfo},
		{"warn level", "warn", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestLoggerJSONContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "debug", "json", "busseed", "1.0.0")

	logger.WithRunID("run-1").WithPhase("booking", 4).WithTable("Booking").Info("phase complete")

	entry := decodeLastLine(t, &buf)
	if entry["msg"] != "phase complete" {
		t.Errorf("Expected message 'phase complete', got %v", entry["msg"])
	}
	if entry[FieldService] != "busseed" {
		t.Errorf("Expected service 'busseed', got %v", entry[FieldService])
	}
	if entry[FieldRunID] != "run-1" {
		t.Errorf("Expected run_id 'run-1', got %v", entry[FieldRunID])
	}
	if entry[FieldPhase] != "booking" {
		t.Errorf("Expected phase 'booking', got %v", entry[FieldPhase])
	}
	if entry[FieldLevelNo] != float64(4) {
		t.Errorf("Expected level_no 4, got %v", entry[FieldLevelNo])
	}
	if entry[FieldTable] != "Booking" {
		t.Errorf("Expected table 'Booking', got %v", entry[FieldTable])
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "warn", "text", "busseed", "dev")

	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("Expected text output to contain the warning, got %q", buf.String())
	}
}

func TestLoggerWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "info", "json", "busseed", "dev")

	if logger.WithError(nil) != logger {
		t.Error("Expected WithError(nil) to return the same logger")
	}

	logger.WithError(errors.New("disk full")).Error("write failed")
	entry := decodeLastLine(t, &buf)
	if entry[FieldError] != "disk full" {
		t.Errorf("Expected error 'disk full', got %v", entry[FieldError])
	}
}

func TestStandardFieldShortfall(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "info", "json", "busseed", "dev")
	sf := NewStandardField()

	logger.Warn("fewer unique pairs than requested", sf.Shortfall("DriverList", 10, 4, 50)...)
	entry := decodeLastLine(t, &buf)

	if entry[FieldRequested] != float64(10) || entry[FieldProduced] != float64(4) {
		t.Errorf("Unexpected shortfall fields: %v", entry)
	}
	if entry[FieldAttempts] != float64(50) {
		t.Errorf("Expected attempts 50, got %v", entry[FieldAttempts])
	}

	if got := sf.Duration(1500 * time.Millisecond); got.Value.Int64() != 1500 {
		t.Errorf("Expected duration 1500ms, got %v", got.Value)
	}
}
