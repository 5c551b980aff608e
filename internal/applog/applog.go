// Package applog constructs the structured logger shared across the
// core engines. The core never prints user-facing output (that's the
// collaborating CLI's job) — this logger is for diagnostic traces: cache
// hits/misses, non-fatal walk errors, per-item clean failures.
package applog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing to w at the given level. Passing
// a nil w defaults to os.Stderr, matching where the teacher's dedupe
// pipeline writes its own error lines.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Verbose returns a debug-level logger, matching the teacher's
// --verbose flag intent of surfacing individual operations.
func Verbose(w io.Writer) zerolog.Logger {
	return New(w, zerolog.DebugLevel)
}

// Quiet returns a warn-level logger, surfacing only non-fatal problems.
func Quiet(w io.Writer) zerolog.Logger {
	return New(w, zerolog.WarnLevel)
}
