// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/pollwatch/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr at info level.
func New() ports.Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		output: os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// rebuild swaps the slog handler for the current mode and output. Callers hold mu.
func (l *Logger) rebuild() {
	w := l.output
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: l.level}
	var handler slog.Handler
	if l.jsonMode {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = NewPrettyHandler(w, opts)
	}
	l.logger = slog.New(handler)
}

// SetOutput updates the logger's output destination, preserving the format.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetLevel changes the minimum level. It takes effect immediately for both formats.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error, rendering its cause chain in pretty mode.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatChain(collectMessages(err)))
}

// collectMessages walks the chain while errors report their own message.
// The first error without Message() contributes its full text and ends the walk.
func collectMessages(err error) []string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		messages = append(messages, m.Message())
		current = errors.Unwrap(current)
	}
	return messages
}

// formatChain renders messages as a main error followed by its causes.
func formatChain(messages []string) string {
	var lines []string

	for i, msg := range messages {
		parts := strings.Split(msg, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+parts[0])
			for _, line := range parts[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+parts[0])
		for _, line := range parts[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}
