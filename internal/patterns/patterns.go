// Package patterns loads the curated package→module(namespace) maps used by
// the Component Analyzer's import-matching step (spec §4.5 step 1: "only for
// ecosystems where package name ≠ import name... via a curated
// package→module map"). Definitions live as embedded YAML, one file per
// non-JS adapter language, grounded on languages/languages.go's
// //go:embed *.yaml and internal/capability/patternset.go's
// LoadPatterns/MustLoadPatterns (rawPatternSet → typed PatternSet, loaded
// from the embedded FS and validated once at call time).
package patterns

import (
	"fmt"

	"github.com/reachvet/engine/languages"
	"gopkg.in/yaml.v3"
)

// PatternSet is the resolved curated map for one language/ecosystem: package
// name → candidate source-level namespace/module prefixes it is imported
// under. Import-statement regexes are not part of it; each adapter package
// compiles its own.
type PatternSet struct {
	Name              string
	PackageNamespaces map[string][]string `yaml:"packageNamespaces"`
}

// LoadPatterns reads and parses languages/<lang>.yaml from the embedded FS.
func LoadPatterns(lang string) (*PatternSet, error) {
	data, err := languages.FS.ReadFile(lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("patterns: load %q: %w", lang, err)
	}
	var ps PatternSet
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("patterns: parse %s.yaml: %w", lang, err)
	}
	return &ps, nil
}

// MustLoadPatterns is like LoadPatterns but panics on error. Safe at
// package-init time since the YAML is embedded at compile time.
func MustLoadPatterns(lang string) *PatternSet {
	ps, err := LoadPatterns(lang)
	if err != nil {
		panic(fmt.Sprintf("reachvet: %v", err))
	}
	return ps
}

// NamespacesFor returns the candidate source-level namespace prefixes for a
// package name, or nil if the package is not in the curated map (in which
// case the adapter falls back to title-casing / direct-name matching, per
// spec §9's ambiguity note on inferred namespaces).
func (ps *PatternSet) NamespacesFor(pkg string) []string {
	return ps.PackageNamespaces[pkg]
}
