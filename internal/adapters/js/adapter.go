// Package js is the JS/TS Adapter (spec §4.1-§4.6's core subsystem): it
// discovers source files, parses imports, builds call graphs, and runs the
// Component Analyzer over every tracked component.
//
// Grounded on internal/adapters/node/adapter.go's Load (progress logging via
// interproc.Infof/Debugf/Errorf every N items, root-package construction)
// for the logging cadence, generalized here to bounded parallel file
// processing via golang.org/x/sync/errgroup + semaphore since this adapter's
// per-file parsing is embarrassingly parallel and the teacher's npm-package
// loop is not (it is sequential over lockfile entries, not files).
package js

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/reachvet/engine/internal/analyzer"
	"github.com/reachvet/engine/internal/callgraph"
	"github.com/reachvet/engine/internal/discovery"
	"github.com/reachvet/engine/internal/domain"
	"github.com/reachvet/engine/internal/jsimport"
	"github.com/reachvet/engine/internal/logx"
)

var extensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// Adapter implements adapter.Adapter for JavaScript/TypeScript projects.
type Adapter struct {
	// MaxWorkers bounds concurrent file parsing; zero means a fixed
	// default of 8.
	MaxWorkers int
	// ExcludeGlobs are additional doublestar patterns merged with
	// discovery.DefaultIgnoreGlobs for this run.
	ExcludeGlobs []string
	log          *logx.Logger
}

// New returns a JS/TS adapter with default concurrency.
func New() *Adapter {
	return &Adapter{log: logx.New("js")}
}

func (a *Adapter) Language() string          { return "js" }
func (a *Adapter) FileExtensions() []string  { return extensions }

// CanHandle reports whether root looks like a JS/TS project (package.json
// present), per spec §4.1's discovery-is-per-language-ecosystem model.
func (a *Adapter) CanHandle(root string) bool {
	_, err := os.Stat(filepath.Join(root, "package.json"))
	return err == nil
}

// parsedFile bundles one source file's imports and call graph, matching
// analyzer.FileData.
type parsedFile struct {
	path    string
	imports []domain.ImportRecord
	graph   *domain.CallGraph
}

// Analyze implements the full pipeline: discover → parse/build (bounded
// parallel fan-out) → analyze each component (sequential, deterministic
// order, spec §5).
func (a *Adapter) Analyze(ctx context.Context, root string, components []domain.Component) ([]domain.ComponentResult, error) {
	l := a.log
	if l == nil {
		l = logx.New("js")
	}
	l.Infof("Starting JS/TS analysis in %s", root)

	files, warnings, err := discovery.Discover(discovery.Options{
		Root:        root,
		Extensions:  extensions,
		IgnoreGlobs: append(append([]string{}, discovery.DefaultIgnoreGlobs...), a.ExcludeGlobs...),
	})
	if err != nil {
		l.Errorf("discovery failed: %v", err)
		return nil, err
	}
	for _, w := range warnings {
		l.Warnf("discovery: %s: %s", w.Path, w.Message)
	}
	l.Infof("Discovered %d source files", len(files))

	parsed, err := parseAll(ctx, files, root, a.workers(), l)
	if err != nil {
		return nil, err
	}

	fileData := make([]analyzer.FileData, 0, len(parsed))
	for _, p := range parsed {
		fileData = append(fileData, analyzer.FileData{Path: p.path, Imports: p.imports, Graph: p.graph})
	}

	results := make([]domain.ComponentResult, len(components))
	for i, c := range components {
		results[i] = analyzer.AnalyzeComponent(c, fileData, nil)
	}
	l.Infof("Analyzed %d components", len(results))
	return results, nil
}

func (a *Adapter) workers() int64 {
	if a.MaxWorkers > 0 {
		return int64(a.MaxWorkers)
	}
	return 8
}

// parseAll runs jsimport.Parse + callgraph.Build over every file under a
// bounded worker semaphore, matching spec §5's "optional bounded parallel
// fan-out, file-granularity, deterministic output ordering" requirement:
// results are re-sorted by path before returning regardless of completion
// order.
func parseAll(ctx context.Context, files []string, root string, workers int64, l *logx.Logger) ([]parsedFile, error) {
	sem := semaphore.NewWeighted(workers)
	g, gctx := errgroup.WithContext(ctx)

	out := make([]parsedFile, len(files))
	for i, path := range files {
		i, path := i, path
		if err := sem.Acquire(gctx, 1); err != nil {
			return nil, err
		}
		g.Go(func() error {
			defer sem.Release(1)
			return parseOne(gctx, path, root, &out[i], l)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out, nil
}

func parseOne(ctx context.Context, path, root string, dst *parsedFile, l *logx.Logger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		l.Warnf("skipping %s: %v", path, err)
		*dst = parsedFile{path: path}
		return nil
	}

	rel, relErr := filepath.Rel(root, path)
	if relErr != nil {
		rel = path
	}

	isTS := isTypeScript(path)
	imports := jsimport.Parse(ctx, src, rel, isTS)
	graph := callgraph.Build(ctx, src, isTS)

	l.Debugf("parsed %s: %d imports, %d calls", rel, len(imports), len(graph.Calls))

	*dst = parsedFile{path: rel, imports: imports, graph: graph}
	return nil
}

func isTypeScript(path string) bool {
	switch filepath.Ext(path) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	default:
		return false
	}
}
