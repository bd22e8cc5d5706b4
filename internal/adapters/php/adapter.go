// Package php is the PHP language adapter: a thin regex pattern pack over
// internal/adapters/regexlang, matching `use Vendor\Package\Class;`
// statements. Adapted from the teacher's own Composer-lockfile-based
// adapter — that code built a dependency graph from composer.lock; this
// engine instead scans PHP source directly for `use` statements, since
// reachability needs source-level imports, not a resolved dependency tree
// (composer.lock parsing and the capability bitmask it fed are dropped, see
// DESIGN.md).
package php

import (
	"regexp"

	"github.com/reachvet/engine/internal/adapters/regexlang"
	"github.com/reachvet/engine/internal/patterns"
)

// reUse captures the namespace path out of a PHP `use` statement, mirroring
// the teacher's checkUseStatement parsing of "use Vendor\Package\Class;".
var reUse = regexp.MustCompile(`^\s*use\s+([A-Za-z0-9_\\]+)\s*;`)

// New returns the PHP adapter.
func New() *regexlang.Adapter {
	return regexlang.New(regexlang.Config{
		Language:     "php",
		Extensions:   []string{".php"},
		ManifestFile: "composer.json",
		ImportRegex:  reUse,
	}, patterns.MustLoadPatterns("php"))
}
