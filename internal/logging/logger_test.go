package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo}, // default
		{"", LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
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
			result := tt.level.String()
			if result != tt.expected {
				t.Errorf("Level.String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"unknown", FormatText}, // default
		{"", FormatText},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output %q: %v", buf.String(), err)
	}
	return entry
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelDebug, FormatJSON, &buf)

	l.Info("test message", "key1", "value1", "key2", 42)

	entry := decodeEntry(t, &buf)
	if entry["level"] != "info" {
		t.Errorf("Expected level=info, got %v", entry["level"])
	}
	if entry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", entry["msg"])
	}
	if entry["key1"] != "value1" {
		t.Errorf("Expected key1=value1, got %v", entry["key1"])
	}
	if entry["key2"] != float64(42) { // JSON numbers are float64
		t.Errorf("Expected key2=42, got %v", entry["key2"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("Expected ts field")
	}
}

func TestLoggerText(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelDebug, FormatText, &buf)

	l.Info("test message", "key1", "value1")

	output := buf.String()
	if !strings.Contains(output, "level=info") {
		t.Errorf("Expected level=info in output, got: %s", output)
	}
	if !strings.Contains(output, `msg="test message"`) {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
	if !strings.Contains(output, "key1=value1") {
		t.Errorf("Expected 'key1=value1' in output, got: %s", output)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelWarn, FormatText, &buf)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should be filtered")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should be present")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error message should be present")
	}
}

func TestLoggerSetLevelAffectsDerived(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelWarn, FormatText, &buf)
	child := l.WithSource("rest")

	child.Info("before")
	l.SetLevel(LevelDebug)
	child.Debug("after")

	output := buf.String()
	if strings.Contains(output, "before") {
		t.Error("Info message should be filtered at warn level")
	}
	if !strings.Contains(output, "after") {
		t.Error("derived logger should follow the new level")
	}
}

func TestLoggerWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelDebug, FormatJSON, &buf)

	l.WithRequestID("req-123").Info("test message")

	entry := decodeEntry(t, &buf)
	if entry["request_id"] != "req-123" {
		t.Errorf("Expected request_id=req-123, got %v", entry["request_id"])
	}
}

func TestLoggerWithSource(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelDebug, FormatJSON, &buf)

	l.WithSource("simulation").Info("run started")

	entry := decodeEntry(t, &buf)
	if entry["source"] != "simulation" {
		t.Errorf("Expected source=simulation, got %v", entry["source"])
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelDebug, FormatJSON, &buf)

	l.WithFields("cluster", "pd", "majority", true).Info("test message")

	entry := decodeEntry(t, &buf)
	if entry["cluster"] != "pd" {
		t.Errorf("Expected cluster=pd, got %v", entry["cluster"])
	}
	if entry["majority"] != true {
		t.Errorf("Expected majority=true, got %v", entry["majority"])
	}
}

func TestLoggerIgnoresMalformedPairs(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelDebug, FormatJSON, &buf)

	l.Info("odd pairs", 7, "dropped", "dangling")

	entry := decodeEntry(t, &buf)
	if _, ok := entry["dangling"]; ok {
		t.Error("a key without value should be dropped")
	}
	if entry["msg"] != "odd pairs" {
		t.Errorf("Expected msg='odd pairs', got %v", entry["msg"])
	}
}

func TestLoggerCloneIsolation(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelDebug, FormatJSON, &buf)

	child := l.WithFields("child_field", "value")

	buf.Reset()
	l.Info("parent message")
	if _, ok := decodeEntry(t, &buf)["child_field"]; ok {
		t.Error("Parent logger should not have child's fields")
	}

	buf.Reset()
	child.Info("child message")
	if decodeEntry(t, &buf)["child_field"] != "value" {
		t.Error("Child logger should have its fields")
	}
}

func TestLoggerAllLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(LevelDebug, FormatJSON, &buf)

	tests := []struct {
		logFunc func(string, ...interface{})
		level   string
	}{
		{l.Debug, "debug"},
		{l.Info, "info"},
		{l.Warn, "warning"},
		{l.Error, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("test message")

			entry := decodeEntry(t, &buf)
			if entry["level"] != tt.level {
				t.Errorf("Expected level=%s, got %v", tt.level, entry["level"])
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	l := New(Config{Level: "debug", Format: "json", Output: "stderr"})
	if l == nil {
		t.Fatal("New returned nil")
	}
}

func TestNewLoggerFileOutput(t *testing.T) {
	path := t.TempDir() + "/failover.log"
	l := New(Config{Level: "info", Format: "text", Output: path})
	l.Info("written to file")
}

func TestNopLogger(t *testing.T) {
	l := NewNop()

	// These should not panic
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")
	l.SetLevel(LevelDebug)

	if l.WithRequestID("req-123") == nil {
		t.Error("WithRequestID returned nil")
	}
	if l.WithSource("rest") == nil {
		t.Error("WithSource returned nil")
	}
	if l.WithFields("key", "value") == nil {
		t.Error("WithFields returned nil")
	}
}
