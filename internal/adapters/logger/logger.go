// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/zmkbuild/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// This matches the Message() method provided by zerr.Error.
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured key/value context, like zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

type multiUnwrapper interface {
	Unwrap() []error
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing to stdout, where all progress and diagnostics belong.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(NewPrettyHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stdout is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stdout
	}
	l.logger = slog.New(NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
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

// Error logs an error with its chain of causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries flattens the error chain. zerr errors contribute their own
// message and metadata; joined errors contribute each branch in order.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry

	for current := err; current != nil; {
		if joined, ok := current.(multiUnwrapper); ok {
			for _, e := range joined.Unwrap() {
				entries = append(entries, collectErrorEntries(e)...)
			}
			break
		}

		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error()})
			break
		}

		entry := errorEntry{message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message+formatMetadata(entry.metadata), "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(md map[string]any) string {
	if len(md) == 0 {
		return ""
	}

	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, md[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
