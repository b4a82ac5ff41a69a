package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func parseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(level))
}

// NewLogger builds a logger writing to w (stderr when nil). An unknown level
// falls back to info.
func NewLogger(cfg LogConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "keiho").Logger()
}
