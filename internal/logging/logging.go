// ABOUTME: Builds the process logger on top of charmbracelet/log.
// ABOUTME: Diagnostics go to stderr so command output on stdout stays clean.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured or the name is unknown.
const DefaultLevel = log.WarnLevel

// Options configures a logger.
type Options struct {
	Level  string
	Format string // "text" (default), "json" or "logfmt"
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "healthtrack",
		ReportTimestamp: true,
		Level:           ParseLevel(opts.Level),
		Formatter:       parseFormatter(opts.Format),
	})
	return logger
}

// ParseLevel maps a level name to a log level, falling back to DefaultLevel.
func ParseLevel(name string) log.Level {
	if strings.TrimSpace(name) == "" {
		return DefaultLevel
	}
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return DefaultLevel
	}
	return lvl
}

func parseFormatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Discard returns a logger that drops everything, for tests.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
