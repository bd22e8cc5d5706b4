// Package logx is the engine's leveled logger. It mirrors gorisk's
// internal/interproc logger (log.Logger + env-gated Verbose + Debugf/Infof/
// Warnf/Errorf) but is instantiated per component tag rather than held as a
// single package global, since multiple adapters can run concurrently during
// a scan and a shared global would interleave their tags unpredictably.
package logx

import (
	"io"
	"log"
	"os"
)

// Logger writes level-prefixed, tagged log lines to an underlying
// *log.Logger. Debug/Info/Warn lines are gated by Verbose; Error always
// prints.
type Logger struct {
	tag     string
	std     *log.Logger
	Verbose bool
}

// New returns a Logger tagged with the given adapter/component name (e.g.
// "js", "php"). Verbose defaults from the REACHVET_VERBOSE environment
// variable, matching gorisk's GORISK_VERBOSE convention.
func New(tag string) *Logger {
	return &Logger{
		tag:     tag,
		std:     log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds),
		Verbose: os.Getenv("REACHVET_VERBOSE") == "1",
	}
}

// SetOutput redirects the underlying writer, useful for tests.
func (l *Logger) SetOutput(w io.Writer) { l.std.SetOutput(w) }

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.Verbose {
		l.std.Printf("[DEBUG][%s] "+format, prepend(l.tag, args)...)
	}
}

func (l *Logger) Infof(format string, args ...interface{}) {
	if l.Verbose {
		l.std.Printf("[INFO][%s] "+format, prepend(l.tag, args)...)
	}
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	if l.Verbose {
		l.std.Printf("[WARN][%s] "+format, prepend(l.tag, args)...)
	}
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.std.Printf("[ERROR][%s] "+format, prepend(l.tag, args)...)
}

func prepend(tag string, args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, tag)
	return append(out, args...)
}
