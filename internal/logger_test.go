package internal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLogger_RingBufferBound(t *testing.T) {
	logger := NewLogger()
	logger.SetLevel(LogLevelError) // keep stderr quiet

	for i := 0; i < 150; i++ {
		logger.Infof("test", "entry %d", i)
	}

	entries := logger.Entries()
	if len(entries) != LogBufferCapacity {
		t.Fatalf("Entries() length = %d, want %d", len(entries), LogBufferCapacity)
	}

	// The oldest 50 were evicted; the survivors keep their original order
	for i, entry := range entries {
		want := fmt.Sprintf("entry %d", i+50)
		if entry.Message != want {
			t.Fatalf("entry %d message = %q, want %q", i, entry.Message, want)
		}
	}
}

func TestLogger_EntriesSnapshot(t *testing.T) {
	logger := NewLogger()
	logger.SetLevel(LogLevelError)

	logger.Infof("test", "one")
	entries := logger.Entries()
	logger.Infof("test", "two")

	if len(entries) != 1 {
		t.Errorf("snapshot length = %d, want 1", len(entries))
	}
	if len(logger.Entries()) != 2 {
		t.Errorf("buffer length = %d, want 2", len(logger.Entries()))
	}
}

func TestLogger_LogErrorDetail(t *testing.T) {
	logger := NewLogger()
	logger.SetLevel(LogLevelError - 1) // suppress even error echo

	cause := &APIError{StatusCode: 503, Message: "unavailable"}
	logger.LogError("api", "request failed", cause, map[string]interface{}{"operation": "get-meetings", "attempt": 2})

	entries := logger.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() length = %d, want 1", len(entries))
	}
	entry := entries[0]
	if entry.Level != LogLevelError {
		t.Errorf("level = %v, want error", entry.Level)
	}
	if entry.Error == nil {
		t.Fatal("entry.Error is nil")
	}
	if entry.Error.Kind != "*internal.APIError" {
		t.Errorf("error kind = %q", entry.Error.Kind)
	}
	if entry.Data["attempt"] != 2 {
		t.Errorf("data attempt = %v, want 2", entry.Data["attempt"])
	}
}

func TestLogger_SetVerbose(t *testing.T) {
	logger := NewLogger()

	logger.SetVerbose(true)
	if logger.level != LogLevelVerbose {
		t.Errorf("level after SetVerbose(true) = %v, want verbose", logger.level)
	}
	logger.SetVerbose(false)
	if logger.level != LogLevelInfo {
		t.Errorf("level after SetVerbose(false) = %v, want info", logger.level)
	}
}

func TestLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.log")

	logger := NewLogger()
	logger.SetLevel(LogLevelError)
	if err := logger.LogToFile(path); err != nil {
		t.Fatalf("LogToFile() error = %v", err)
	}

	logger.Infof("test", "first line")
	logger.LogError("test", "second line", errors.New("boom"), nil)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log file: %v", err)
	}
	defer f.Close()

	var lines []LogEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry LogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("log line is not JSON: %v", err)
		}
		lines = append(lines, entry)
	}
	if len(lines) != 2 {
		t.Fatalf("log file has %d lines, want 2", len(lines))
	}
	if lines[0].Message != "first line" || lines[1].Message != "second line" {
		t.Errorf("unexpected messages: %q, %q", lines[0].Message, lines[1].Message)
	}
	if lines[1].Error == nil || lines[1].Error.Message != "boom" {
		t.Errorf("second line missing error detail")
	}
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelError, "ERROR"},
		{LogLevelWarning, "WARN"},
		{LogLevelInfo, "INFO"},
		{LogLevelDebug, "DEBUG"},
		{LogLevelVerbose, "VERBOSE"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}
