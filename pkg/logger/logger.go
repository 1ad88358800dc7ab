package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"image-panel/internal/domain"

	"github.com/rs/zerolog"
)

// AppLogger implements the domain.Logger interface on top of zerolog
type AppLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a new logger instance writing JSON lines to stdout
func NewLogger(levelStr string) domain.Logger {
	return NewLoggerWithWriter(os.Stdout, levelStr)
}

// NewConsoleLogger creates a human readable logger, used by the batch command
func NewConsoleLogger(levelStr string) domain.Logger {
	return NewLoggerWithWriter(zerolog.ConsoleWriter{Out: os.Stderr}, levelStr)
}

// NewLoggerWithWriter creates a logger writing to w
func NewLoggerWithWriter(w io.Writer, levelStr string) *AppLogger {
	l := zerolog.New(w).
		Level(parseLogLevel(levelStr)).
		With().
		Timestamp().
		Logger()

	return &AppLogger{logger: l}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	withFields(l.logger.Info(), fields).Msg(msg)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	withFields(l.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	withFields(l.logger.Debug(), fields).Msg(msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	withFields(l.logger.Warn(), fields).Msg(msg)
}

// withFields attaches key/value pairs; a trailing key without value is dropped
func withFields(event *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		if err, isErr := fields[i+1].(error); isErr {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, fields[i+1])
	}
	return event
}

// parseLogLevel converts string log level to a zerolog level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
