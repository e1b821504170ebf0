// Package logger builds the zerolog logger shared by the server, the
// migration command and the activity consumer.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/config"
)

// New returns a logger writing to stderr.  Pretty selects the human
// friendly console writer; otherwise one JSON object is written per line.
func New(cfg config.LogConfig, env string) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(w, cfg.Level).With().Str("env", env).Logger()
}

// NewWithWriter returns a timestamped logger writing to w at the given
// level.  Unknown levels fall back to info.
func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
