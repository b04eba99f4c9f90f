package infrastructure

import (
	"log/slog"

	"weatherdash.app/internal/ports"
)

// SlogLoggerAdapter implements the Logger port using slog
type SlogLoggerAdapter struct {
	logger *slog.Logger
}

// NewSlogLoggerAdapter wraps logger, falling back to slog.Default when nil
func NewSlogLoggerAdapter(logger *slog.Logger) *SlogLoggerAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLoggerAdapter{logger: logger}
}

// Debug logs a debug message
func (l *SlogLoggerAdapter) Debug(msg string, fields ...ports.Field) {
	l.logger.Debug(msg, fieldArgs(fields)...)
}

// Info logs an info message
func (l *SlogLoggerAdapter) Info(msg string, fields ...ports.Field) {
	l.logger.Info(msg, fieldArgs(fields)...)
}

// Warn logs a warning message
func (l *SlogLoggerAdapter) Warn(msg string, fields ...ports.Field) {
	l.logger.Warn(msg, fieldArgs(fields)...)
}

// Error logs an error message
func (l *SlogLoggerAdapter) Error(msg string, fields ...ports.Field) {
	l.logger.Error(msg, fieldArgs(fields)...)
}

func fieldArgs(fields []ports.Field) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for _, field := range fields {
		args = append(args, field.Key, field.Value)
	}
	return args
}

// MultiLogger fans every entry out to each logger
type MultiLogger []ports.Logger

func (m MultiLogger) Debug(msg string, fields ...ports.Field) {
	for _, l := range m {
		l.Debug(msg, fields...)
	}
}

func (m MultiLogger) Info(msg string, fields ...ports.Field) {
	for _, l := range m {
		l.Info(msg, fields...)
	}
}

func (m MultiLogger) Warn(msg string, fields ...ports.Field) {
	for _, l := range m {
		l.Warn(msg, fields...)
	}
}

func (m MultiLogger) Error(msg string, fields ...ports.Field) {
	for _, l := range m {
		l.Error(msg, fields...)
	}
}
