// Package interfaces defines core domain contracts.
//
//nolint:revive // Package name 'interfaces' is intentional for domain layer
package interfaces

import (
	"fmt"
	"io"
	"sync"
)

// Logger defines the interface for structured diagnostic logging. It never
// carries the tool's user-facing outcome messages, which go to stdout.
type Logger interface {
	// Debug logs debug-level messages
	Debug(msg string, fields ...Field)

	// Info logs informational messages
	Info(msg string, fields ...Field)

	// Warn logs warning messages
	Warn(msg string, fields ...Field)

	// Error logs error messages
	Error(msg string, fields ...Field)
}

// Field represents a structured log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new Field (convenience function)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoOpLogger is a logger that does nothing (useful for tests)
type NoOpLogger struct{}

// Debug does nothing (no-op implementation)
func (n *NoOpLogger) Debug(_ string, _ ...Field) {}

// Info does nothing (no-op implementation)
func (n *NoOpLogger) Info(_ string, _ ...Field) {}

// Warn does nothing (no-op implementation)
func (n *NoOpLogger) Warn(_ string, _ ...Field) {}

// Error does nothing (no-op implementation)
func (n *NoOpLogger) Error(_ string, _ ...Field) {}

// Level is a minimum severity threshold for WriterLogger.
type Level int

// Severity levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// WriterLogger writes leveled key=value lines to an io.Writer, normally
// stderr so diagnostics never mix with the stdout contract messages.
type WriterLogger struct {
	mu  sync.Mutex
	w   io.Writer
	min Level
}

// NewWriterLogger creates a WriterLogger that drops entries below min.
func NewWriterLogger(w io.Writer, min Level) *WriterLogger {
	return &WriterLogger{w: w, min: min}
}

// Debug logs debug-level messages
func (l *WriterLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, "DEBUG", msg, fields) }

// Info logs informational messages
func (l *WriterLogger) Info(msg string, fields ...Field) { l.log(LevelInfo, "INFO", msg, fields) }

// Warn logs warning messages
func (l *WriterLogger) Warn(msg string, fields ...Field) { l.log(LevelWarn, "WARN", msg, fields) }

// Error logs error messages
func (l *WriterLogger) Error(msg string, fields ...Field) { l.log(LevelError, "ERROR", msg, fields) }

func (l *WriterLogger) log(level Level, tag, msg string, fields []Field) {
	if level < l.min {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s: %s", tag, msg)
	for _, f := range fields {
		fmt.Fprintf(l.w, " %s=%v", f.Key, f.Value)
	}
	fmt.Fprintln(l.w)
}
