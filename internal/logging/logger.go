// Package logging builds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a timestamped JSON logger on stdout. In development the output
// is human-readable instead. Unknown levels fall back to info.
func New(level string, development bool) zerolog.Logger {
	return newLogger(os.Stdout, level, development)
}

func newLogger(w io.Writer, level string, development bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if development {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "txtracker").Logger()
}
