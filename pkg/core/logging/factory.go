// ============================================================================
// tabwerk - Robot Framework Testdaten-Werkzeug
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, logged in the "service" field
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format
	Format string // "json" or "text" (default: text)

	// Output writer (default: os.Stderr)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "text",
	}
}

// NewLogger creates a logger from the configuration
func NewLogger(cfg LoggerConfig) *Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	base := logrus.New()
	base.SetOutput(output)
	base.SetLevel(parseLevel(cfg.Level))
	if cfg.Format == "json" {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	entry := logrus.NewEntry(base)
	if cfg.ServiceName != "" {
		entry = entry.WithField("service", cfg.ServiceName)
	}
	return &Logger{entry: entry, name: cfg.ServiceName}
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// Discard returns a logger that drops every entry
func Discard() *Logger {
	cfg := DefaultLoggerConfig("")
	cfg.Output = io.Discard
	cfg.Level = "error"
	return NewLogger(cfg)
}

// OrDiscard returns l, or a discarding logger when l is nil
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// parseLevel converts a string level to a logrus level
func parseLevel(level string) logrus.Level {
	switch level {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger is the key/value logger handed to the components
type Logger struct {
	entry *logrus.Entry
	name  string
}

// New creates a simple logger
func New(name string) *Logger {
	return NewSimpleLogger(name)
}

// Name returns the service name of the logger
func (l *Logger) Name() string {
	return l.name
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	src := l.entry.Logger
	base := &logrus.Logger{
		Out:          src.Out,
		Formatter:    src.Formatter,
		Hooks:        src.Hooks,
		Level:        level.logrusLevel(),
		ExitFunc:     src.ExitFunc,
		ReportCaller: src.ReportCaller,
	}
	return &Logger{
		entry: logrus.NewEntry(base).WithFields(l.entry.Data),
		name:  l.name,
	}
}

// With returns a logger that adds the key/value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		entry: l.entry.WithFields(toFields(keysAndValues...)),
		name:  l.name,
	}
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues...)).Debug(msg)
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues...)).Info(msg)
}

// Warn logs a warning message with key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues...)).Warn(msg)
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(toFields(keysAndValues...)).Error(msg)
}

// toFields converts key-value pairs to logrus fields
func toFields(keysAndValues ...interface{}) logrus.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(logrus.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
