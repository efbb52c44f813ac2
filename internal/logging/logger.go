// Package logging provides a logging abstraction layer that decouples the analytics
// core from a specific logging framework. Components receive a Logger by constructor
// injection so tests can capture output with MockLogger.
package logging

import "sync"

// Logger defines the interface for structured logging throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger

	// Fatal logs a fatal-level message and exits the program
	Fatal(msg string, fields ...Field)

	// Fatalf logs a fatal-level message with formatting and exits the program
	Fatalf(msg string, args ...interface{})
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

var (
	defaultLogger Logger
	defaultOnce   sync.Once
)

// GetLogger returns the process-wide fallback logger used when a component is
// constructed without one. It logs at info level in text format.
func GetLogger() Logger {
	defaultOnce.Do(func() {
		defaultLogger = NewLogrusAdapter("info", "text")
	})
	return defaultLogger
}

// OrDefault returns logger, or the fallback logger when logger is nil.
func OrDefault(logger Logger) Logger {
	if logger == nil {
		return GetLogger()
	}
	return logger
}
