package internal

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarning
	LogLevelInfo
	LogLevelDebug
	LogLevelVerbose
)

// String returns the display name of the level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "ERROR"
	case LogLevelWarning:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelVerbose:
		return "VERBOSE"
	default:
		return "UNKNOWN"
	}
}

// LogBufferCapacity is the fixed size of the in-memory log ring buffer.
// When full, the oldest entry is evicted first.
const LogBufferCapacity = 100

// LogErrorDetail captures error information attached to a log entry
type LogErrorDetail struct {
	Message    string `json:"message"`
	Kind       string `json:"kind"`
	StackTrace string `json:"stack_trace,omitempty"`
}

// LogEntry is a single structured log record
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     LogLevel               `json:"level"`
	Category  string                 `json:"category"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Error     *LogErrorDetail        `json:"error,omitempty"`
}

// Logger appends structured records to a bounded in-memory buffer and echoes
// them to stderr according to the configured level. An optional file sink
// receives every entry as a JSON line regardless of the echo level.
type Logger struct {
	mu      sync.Mutex
	level   LogLevel
	entries []LogEntry
	echo    *log.Logger
	file    *os.File
}

// NewLogger creates a logger echoing to stderr at Info level
func NewLogger() *Logger {
	return &Logger{
		level: LogLevelInfo,
		echo:  log.New(os.Stderr, "", log.LstdFlags),
	}
}

// SetLevel sets the echo level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetVerbose enables verbose (most detailed) echoing
func (l *Logger) SetVerbose(verbose bool) {
	if verbose {
		l.SetLevel(LogLevelVerbose)
	} else {
		l.SetLevel(LogLevelInfo)
	}
}

// LogToFile appends every subsequent entry to the given file as JSON lines
func (l *Logger) LogToFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	return nil
}

// Close closes the file sink, if any
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Log appends a structured entry
func (l *Logger) Log(level LogLevel, category, message string, data map[string]interface{}) {
	l.append(LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Category:  category,
		Message:   message,
		Data:      data,
	})
}

// LogError appends an error-level entry with error detail attached
func (l *Logger) LogError(category, message string, err error, data map[string]interface{}) {
	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     LogLevelError,
		Category:  category,
		Message:   message,
		Data:      data,
	}
	if err != nil {
		entry.Error = &LogErrorDetail{
			Message:    err.Error(),
			Kind:       fmt.Sprintf("%T", err),
			StackTrace: callerTrace(),
		}
	}
	l.append(entry)
}

// Verbosef logs a formatted verbose message
func (l *Logger) Verbosef(category, format string, args ...interface{}) {
	l.Log(LogLevelVerbose, category, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(category, format string, args ...interface{}) {
	l.Log(LogLevelDebug, category, fmt.Sprintf(format, args...), nil)
}

// Infof logs a formatted info message
func (l *Logger) Infof(category, format string, args ...interface{}) {
	l.Log(LogLevelInfo, category, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(category, format string, args ...interface{}) {
	l.Log(LogLevelWarning, category, fmt.Sprintf(format, args...), nil)
}

// Errorf logs a formatted error message without error detail
func (l *Logger) Errorf(category, format string, args ...interface{}) {
	l.Log(LogLevelError, category, fmt.Sprintf(format, args...), nil)
}

// Entries returns a snapshot of the buffered entries, oldest first
func (l *Logger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Logger) append(entry LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= LogBufferCapacity {
		// FIFO eviction: drop the oldest entry
		l.entries = append(l.entries[:0], l.entries[1:]...)
	}
	l.entries = append(l.entries, entry)

	if entry.Level <= l.level {
		suffix := ""
		if entry.Error != nil {
			suffix = ": " + entry.Error.Message
		}
		l.echo.Printf("[%s] %s: %s%s", entry.Level, entry.Category, entry.Message, suffix)
	}

	if l.file != nil {
		line, err := json.Marshal(entry)
		if err == nil {
			_, _ = l.file.Write(append(line, '\n'))
		}
	}
}

func callerTrace() string {
	buf := make([]byte, 2048)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
