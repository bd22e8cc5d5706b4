// Package swift is the Swift language adapter: a thin regex pattern pack
// over internal/adapters/regexlang, matching `import Module` declarations.
package swift

import (
	"regexp"

	"github.com/reachvet/engine/internal/adapters/regexlang"
	"github.com/reachvet/engine/internal/patterns"
)

var reImport = regexp.MustCompile(`^\s*import\s+(?:struct\s+|class\s+|enum\s+|protocol\s+|func\s+|typealias\s+|var\s+|let\s+)?([A-Za-z0-9_.]+)`)

// New returns the Swift adapter.
func New() *regexlang.Adapter {
	return regexlang.New(regexlang.Config{
		Language:     "swift",
		Extensions:   []string{".swift"},
		ManifestFile: "Package.swift",
		ImportRegex:  reImport,
	}, patterns.MustLoadPatterns("swift"))
}
