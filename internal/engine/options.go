// Package engine wires discovery, the adapter dispatcher, and the
// aggregator into one entry point.
//
// Grounded on specvital-core/pkg/parser/options.go's ScanOptions/ScanOption
// (functional options with a newDefaultOptions/applyDefaults pair) — the
// teacher itself has no options layer, so this is enriched from the rest of
// the example pack rather than adapted from gorisk.
package engine

import "time"

// Options configures one Engine run.
type Options struct {
	// Workers bounds concurrent file parsing in adapters that fan out
	// (currently the JS/TS adapter). Zero or negative uses the adapter's
	// own default.
	Workers int

	// Timeout bounds the whole run. Zero or negative means no timeout.
	Timeout time.Duration

	// ExcludePatterns are additional doublestar ignore globs merged with
	// discovery.DefaultIgnoreGlobs.
	ExcludePatterns []string

	// Verbose enables debug-level logging across every adapter.
	Verbose bool
}

// Option is a functional option for configuring an Engine.
type Option func(*Options)

// WithWorkers sets the worker cap for parallel-fanout adapters. Negative
// values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the whole-run timeout. Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithExcludePatterns adds doublestar glob patterns to skip during
// discovery, on top of discovery.DefaultIgnoreGlobs.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithVerbose toggles debug logging.
func WithVerbose(v bool) Option {
	return func(o *Options) {
		o.Verbose = v
	}
}

func newDefaultOptions() Options {
	return Options{Workers: 8}
}
