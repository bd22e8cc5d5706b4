// Package perl is the Perl language adapter: a thin regex pattern pack over
// internal/adapters/regexlang, matching `use Module::Name;` / `require
// Module::Name;` statements.
package perl

import (
	"regexp"

	"github.com/reachvet/engine/internal/adapters/regexlang"
	"github.com/reachvet/engine/internal/patterns"
)

var reUse = regexp.MustCompile(`^\s*(?:use|require)\s+([A-Za-z][A-Za-z0-9_:]*)\s*[;(]`)

// New returns the Perl adapter.
func New() *regexlang.Adapter {
	return regexlang.New(regexlang.Config{
		Language:     "perl",
		Extensions:   []string{".pl", ".pm"},
		ManifestFile: "cpanfile",
		ImportRegex:  reUse,
	}, patterns.MustLoadPatterns("perl"))
}
