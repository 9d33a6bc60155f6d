// Package logging provides the small leveled logger used across the client.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger writes prefixed log lines to stderr or to a file.
type Logger struct {
	file   *os.File
	logger *log.Logger
}

// New creates a logger. An empty path logs to stderr.
func New(filePath string) (*Logger, error) {
	var out io.Writer = os.Stderr
	var file *os.File
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		file = f
	}
	return &Logger{
		file:   file,
		logger: log.New(out, "", log.LstdFlags),
	}, nil
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0)}
}

func (l *Logger) Info(format string, args ...any) {
	l.logger.SetPrefix("INFO: ")
	l.logger.Printf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.logger.SetPrefix("WARN: ")
	l.logger.Printf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.logger.SetPrefix("ERROR: ")
	l.logger.Printf(format, args...)
}

// Close closes the underlying file, if any.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}
