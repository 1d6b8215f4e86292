// Package logging builds the structured logger shared by nifeed commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/nifeed/internal/messages"
)

// Prefix is printed before every log line.
const Prefix = "nifeed"

// Options configures New.
type Options struct {
	// Level is a charmbracelet/log level name; empty means info.
	Level string
	// Quiet raises the level to at least warn.
	Quiet bool
	// Timestamps adds a time field to every line.
	Timestamps bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Quiet && level < log.WarnLevel {
		level = log.WarnLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		Level:           level,
		ReportTimestamp: opts.Timestamps,
	}), nil
}

// ParseLevel converts a level name, accepting "warning" as an alias of warn.
func ParseLevel(name string) (log.Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "":
		return log.InfoLevel, nil
	case "warning":
		normalized = "warn"
	}
	level, err := log.ParseLevel(normalized)
	if err != nil {
		return 0, fmt.Errorf(messages.LoggingInvalidLevelFmt, name, err)
	}
	return level, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
