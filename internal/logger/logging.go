// Package logger provides modifications to charmbracelet/log's default logger to be used in various files/packages.
//
// Every logger writes to stderr: stdout carries the msgpack stream in server
// mode and the results in CLI mode.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a new charm log with timestamps that respects the global log level.
func New(prefix string) *log.Logger {
	return NewTo(os.Stderr, prefix, true)
}

// Default creates a new charm log without timestamps that respects the global log level.
func Default(prefix string) *log.Logger {
	return NewTo(os.Stderr, prefix, false)
}

// NewTo creates a charm log writing to w.
func NewTo(w io.Writer, prefix string, showTimestamp bool) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: showTimestamp,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a new charm log with custom config
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       fmt,
	})
}
