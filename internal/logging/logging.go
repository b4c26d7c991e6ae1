// Package logging builds the structured logger shared by the server, the CLI
// and the background scheduler.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr at the given level.
// Unknown levels fall back to info.
func New(level, prefix string) *log.Logger {
	return NewWithWriter(os.Stderr, level, prefix)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           ParseLevel(level),
	})
}

// ParseLevel maps debug, info, warn and error to log levels.
func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
