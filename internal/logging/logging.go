// Package logging constructs the zerolog loggers used by the text
// operations. It replaces the side-channel output file the toolkit used
// to append every operation's result to.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// New returns a structured JSON logger writing to w at the given level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = io.Discard
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Console returns a human-readable logger for interactive use.
func Console(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
