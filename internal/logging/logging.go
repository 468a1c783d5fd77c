// Package logging builds the structured logger shared by tubelens components.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Service is the value of the "service" field on every log line.
const Service = "tubelens"

// New returns a JSON logger writing to w at the given level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info. A nil w writes to stderr.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	return zerolog.New(w).Level(lvl).With().
		Timestamp().
		Str("service", Service).
		Logger()
}

// Nop discards everything. Components use it when no logger is configured.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
