// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global logger to write to w at the given level, as JSON or,
// for format "console", as human-readable lines.
func Setup(w io.Writer, level, format string) error {
	if w == nil {
		w = os.Stdout
	}
	if err := SetLevel(level); err != nil {
		return err
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	switch strings.ToLower(format) {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// SetLevel changes the global level. It can be called while the server runs.
func SetLevel(level string) error {
	if level == "" {
		level = "info"
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(l)
	return nil
}

// Component returns a sub-logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// GormLevel maps the global level to the names accepted by db.Config.LogLevel.
func GormLevel() string {
	switch zerolog.GlobalLevel() {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return "info"
	case zerolog.InfoLevel, zerolog.WarnLevel:
		return "warn"
	case zerolog.ErrorLevel:
		return "error"
	}
	return "silent"
}
