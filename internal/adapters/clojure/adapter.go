// Package clojure is the Clojure language adapter: a thin regex pattern
// pack over internal/adapters/regexlang, matching `ns.path` symbols inside
// `(:require [ns.path ...])` forms.
package clojure

import (
	"regexp"

	"github.com/reachvet/engine/internal/adapters/regexlang"
	"github.com/reachvet/engine/internal/patterns"
)

var reRequire = regexp.MustCompile(`\(:require\s*\[\s*([a-zA-Z0-9_.\-]+)`)

// New returns the Clojure adapter.
func New() *regexlang.Adapter {
	return regexlang.New(regexlang.Config{
		Language:     "clojure",
		Extensions:   []string{".clj", ".cljc", ".cljs"},
		ManifestFile: "project.clj",
		ImportRegex:  reRequire,
	}, patterns.MustLoadPatterns("clojure"))
}
