// Package regexlang is the shared body behind every thin, non-JS language
// adapter (Dart, C#, PHP, Swift, Perl, Scala, Clojure): per spec §1, "their
// bodies are regular-expression pattern packs around the same contract and
// are not the interesting engineering." Each language supplies only a
// Config (file extensions, manifest filename, one import-line regex, and a
// curated PatternSet); this package does the discovery, per-line scan, and
// Component Analyzer wiring common to all of them.
//
// Grounded on internal/adapters/php/capability.go's scanFile (bufio.Scanner
// line-by-line read, one regex/substring check per line) and checkUseStatement
// (exact-match-then-prefix-fallback resolution, here delegated to
// internal/analyzer's NamespaceMapper fallback chain instead of being
// duplicated per language).
package regexlang

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/reachvet/engine/internal/analyzer"
	"github.com/reachvet/engine/internal/discovery"
	"github.com/reachvet/engine/internal/domain"
	"github.com/reachvet/engine/internal/logx"
)

// Config describes one thin language's import syntax.
type Config struct {
	Language     string
	Extensions   []string
	ManifestFile string // e.g. "composer.json", "Package.swift", "pubspec.yaml"

	// ImportRegex must have exactly one capturing group yielding the raw
	// namespace/module path the source line imports (e.g. "GuzzleHttp\Client"
	// for PHP, "System.Net.Http" for C#).
	ImportRegex *regexp.Regexp
}

// Adapter implements adapter.Adapter for one thin, regex-pattern-pack
// language.
type Adapter struct {
	cfg    Config
	mapper analyzer.NamespaceMapper
	log    *logx.Logger

	// ExcludeGlobs are additional doublestar patterns merged with
	// discovery.DefaultIgnoreGlobs for this run.
	ExcludeGlobs []string
}

// New builds a thin adapter from cfg and its curated namespace map.
func New(cfg Config, mapper analyzer.NamespaceMapper) *Adapter {
	return &Adapter{cfg: cfg, mapper: mapper, log: logx.New(cfg.Language)}
}

func (a *Adapter) Language() string         { return a.cfg.Language }
func (a *Adapter) FileExtensions() []string { return a.cfg.Extensions }

func (a *Adapter) CanHandle(root string) bool {
	if a.cfg.ManifestFile != "" {
		if _, err := os.Stat(filepath.Join(root, a.cfg.ManifestFile)); err == nil {
			return true
		}
	}
	files, _, err := discovery.Discover(discovery.Options{
		Root: root, Extensions: a.cfg.Extensions, IgnoreGlobs: a.ignoreGlobs(),
	})
	return err == nil && len(files) > 0
}

func (a *Adapter) ignoreGlobs() []string {
	return append(append([]string{}, discovery.DefaultIgnoreGlobs...), a.ExcludeGlobs...)
}

// Analyze discovers every source file of this language, scans it line by
// line for ImportRegex matches, and runs the Component Analyzer. Matched
// imports carry an empty CallGraph: these adapters have no call-graph
// builder (per spec §1's "not the interesting engineering"), so the
// resulting status tops out at `imported`, never `reachable`, unless a
// future language-specific call scanner is added.
func (a *Adapter) Analyze(ctx context.Context, root string, components []domain.Component) ([]domain.ComponentResult, error) {
	files, warnings, err := discovery.Discover(discovery.Options{
		Root: root, Extensions: a.cfg.Extensions, IgnoreGlobs: a.ignoreGlobs(),
	})
	if err != nil {
		a.log.Errorf("discovery failed: %v", err)
		return nil, err
	}
	for _, w := range warnings {
		a.log.Warnf("discovery: %s: %s", w.Path, w.Message)
	}
	a.log.Infof("Discovered %d %s files", len(files), a.cfg.Language)

	var fileData []analyzer.FileData
	for _, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		imports := a.scanFile(path, rel)
		if len(imports) == 0 {
			continue
		}
		fileData = append(fileData, analyzer.FileData{Path: rel, Imports: imports, Graph: domain.NewCallGraph()})
	}

	results := make([]domain.ComponentResult, len(components))
	for i, c := range components {
		results[i] = analyzer.AnalyzeComponent(c, fileData, a.mapper)
	}
	return results, nil
}

func (a *Adapter) scanFile(path, rel string) []domain.ImportRecord {
	f, err := os.Open(path)
	if err != nil {
		a.log.Warnf("skipping %s: %v", rel, err)
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	var out []domain.ImportRecord
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		m := a.cfg.ImportRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ns := m[1]
		last := lastSegment(ns)
		out = append(out, domain.ImportRecord{
			Kind:     domain.ImportNamed,
			Source:   ns,
			Bindings: []domain.Binding{{Imported: last, Local: last}},
			Location: domain.Location{File: rel, Line: lineNo, Snippet: domain.TrimSnippet(line)},
		})
	}
	return out
}

func lastSegment(ns string) string {
	sep := -1
	for i := len(ns) - 1; i >= 0; i-- {
		switch ns[i] {
		case '.', '\\', '/', ':':
			sep = i
		}
		if sep >= 0 {
			break
		}
	}
	if sep < 0 {
		return ns
	}
	return ns[sep+1:]
}
