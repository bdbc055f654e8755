// Package logging builds the leveled console logger shared by the CLI and the synchronizer.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todo-sync/internal/config"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel, Prefix: "todo"})
)

// New creates a logger for the given settings writing to w.
// Every record carries a run id so lines from one invocation can be grouped.
func New(cfg config.LoggingConfig, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:     ParseLevel(cfg.Level),
		Formatter: ParseFormatter(cfg.Format),
		Prefix:    "todo",
	})
	return logger.With("run", NewRunID())
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// NewRunID returns a short random identifier for one process run
func NewRunID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// ParseLevel maps a config level name to a log level, defaulting to warn.
func ParseLevel(level string) log.Level {
	parsed, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.WarnLevel
	}
	return parsed
}

// ParseFormatter maps a config format name to a formatter, defaulting to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// SetDefault replaces the logger used by Debugf and Debugln.
// The level is forced to debug since those helpers are gated by TODO_DEBUG.
func SetDefault(logger *log.Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger.WithPrefix(logger.GetPrefix())
	defaultLogger.SetLevel(log.DebugLevel)
}

func debugLogger() *log.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}
