// Package scala is the Scala language adapter: a thin regex pattern pack
// over internal/adapters/regexlang, matching `import a.b.C` statements
// (including the `import a.b.{C, D}` braced form's prefix).
package scala

import (
	"regexp"

	"github.com/reachvet/engine/internal/adapters/regexlang"
	"github.com/reachvet/engine/internal/patterns"
)

var reImport = regexp.MustCompile(`^\s*import\s+([A-Za-z0-9_.]+)`)

// New returns the Scala adapter.
func New() *regexlang.Adapter {
	return regexlang.New(regexlang.Config{
		Language:    "scala",
		Extensions:  []string{".scala"},
		ImportRegex: reImport,
	}, patterns.MustLoadPatterns("scala"))
}
