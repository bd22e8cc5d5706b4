// Package discovery enumerates source files under a root directory for a
// given language, per spec §4.1: deterministic (sorted) output, fixed extension and ignore-glob sets, unreadable entries dropped
// with a low-severity warning rather than treated as fatal.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Warning is a low-severity, non-fatal discovery problem (e.g. a directory
// entry that could not be stat'd).
type Warning struct {
	Path    string
	Message string
}

// Options controls one discovery pass.
type Options struct {
	Root       string
	Extensions []string // e.g. []string{".js", ".jsx", ".ts", ".tsx"}
	// IgnoreGlobs are doublestar patterns matched against the path relative
	// to Root; a match excludes the file (and, for directory-shaped
	// patterns, its whole subtree).
	IgnoreGlobs []string
}

// DefaultIgnoreGlobs covers the directories and generated-file patterns
// common across the JS/TS ecosystem and beyond (spec §4.1 examples:
// node_modules, dist, build, .next, minified *.min.js).
var DefaultIgnoreGlobs = []string{
	"**/node_modules/**",
	"**/.git/**",
	"**/dist/**",
	"**/build/**",
	"**/.next/**",
	"**/vendor/**",
	"**/coverage/**",
	"**/*.min.js",
}

// Discover walks Root with filepath.Walk (depth-first, lexical order) and
// returns every file matching one of Extensions that isn't excluded by
// IgnoreGlobs, sorted by path, plus any non-fatal warnings encountered.
// Because the result is sorted, the traversal order does not affect it.
func Discover(opts Options) ([]string, []Warning, error) {
	var files []string
	var warnings []Warning

	err := filepath.Walk(opts.Root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Message: err.Error()})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && matchesAny(opts.IgnoreGlobs, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if matchesAny(opts.IgnoreGlobs, rel) {
			return nil
		}
		if !hasAnyExt(path, opts.Extensions) {
			return nil
		}

		if _, statErr := os.Stat(path); statErr != nil {
			warnings = append(warnings, Warning{Path: path, Message: statErr.Error()})
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}

	sort.Strings(files)
	return files, warnings, nil
}

func hasAnyExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func matchesAny(globs []string, rel string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
	}
	return false
}
