// Package knotlog is the ambient logger carried regardless of
// spec.md's non-goals around CLI/observability surfaces: a thin
// io.Writer wrapper, modeled directly on the teacher's log/logger.go
// and internal/util/log.go, deliberately not a structured logging
// framework.
package knotlog

import (
	"fmt"
	"io"
)

// Logger is a minimal wrapper around an io.Writer with a configurable
// line prefix (default "knot: ").
type Logger struct {
	io.Writer
	Prefix  string
	Verbose bool
}

// New returns a logger writing to w with the default "knot: " prefix.
func New(w io.Writer) *Logger {
	return &Logger{Writer: w, Prefix: "knot: "}
}

// Logln logs a line with no prefix, the way the teacher's bare Logln
// does for already-formatted user-facing output.
func (l *Logger) Logln(args ...interface{}) {
	fmt.Fprintln(l, args...)
}

// Logf logs a formatted, prefixed line.
func (l *Logger) Logf(format string, args ...interface{}) {
	fmt.Fprintf(l, l.Prefix+format+"\n", args...)
}

// Vlogf logs a formatted, prefixed line only when Verbose is set,
// mirroring the teacher's Vlogf/Verbose-flag gating for `-v` output.
func (l *Logger) Vlogf(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	l.Logf(format, args...)
}

// Warnf logs a formatted warning line, used by internal/commands to
// report a knot.lock write failure that does not abort the install.
// Resolver warnings on a result are logged through Vlogf instead.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Logf("warning: "+format, args...)
}
