package goadapter

import (
	"context"
	"go/token"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/reachvet/engine/internal/analyzer"
	"github.com/reachvet/engine/internal/domain"
	"github.com/reachvet/engine/internal/logx"
)

// Adapter implements adapter.Adapter for Go module source trees.
//
// Grounded on the teacher's own adapter.go (which wrapped graph.Load to
// build a whole-tree dependency graph); replaced here with
// golang.org/x/tools/go/packages.Load in name/files/imports-only mode
// (NeedName|NeedFiles|NeedImports, no NeedTypes/NeedDeps) — a lightweight
// import-graph enumeration, not the type-checked, whole-program SSA graph
// internal/reachability/go.go built with golang.org/x/tools/go/ssa +
// golang.org/x/tools/go/callgraph/rta, which spec §1's Non-goals exclude.
type Adapter struct {
	log *logx.Logger
}

// New returns the Go-source adapter.
func New() *Adapter {
	return &Adapter{log: logx.New("gosrc")}
}

func (a *Adapter) Language() string         { return "gosrc" }
func (a *Adapter) FileExtensions() []string { return []string{".go"} }

func (a *Adapter) CanHandle(root string) bool {
	_, err := os.Stat(filepath.Join(root, "go.mod"))
	return err == nil
}

// modulePath reads the module directive out of go.mod via
// golang.org/x/mod/modfile. Analyze only logs it; imports of the project's
// own module are not filtered out by it.
func modulePath(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	mf, err := modfile.Parse("go.mod", data, nil)
	if err != nil || mf.Module == nil {
		return ""
	}
	return mf.Module.Mod.Path
}

func (a *Adapter) Analyze(ctx context.Context, root string, components []domain.Component) ([]domain.ComponentResult, error) {
	l := a.log
	if l == nil {
		l = logx.New("gosrc")
	}

	mod := modulePath(root)
	l.Infof("Starting Go-source analysis in %s (module %s)", root, mod)

	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedImports,
		Dir:     root,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		l.Errorf("packages.Load failed: %v", err)
		return nil, err
	}

	var fileData []analyzer.FileData
	fset := token.NewFileSet()
	for _, pkg := range pkgs {
		for _, errp := range pkg.Errors {
			l.Warnf("%s: %s", pkg.PkgPath, errp.Msg)
		}
		for _, gofile := range pkg.GoFiles {
			rel, relErr := filepath.Rel(root, gofile)
			if relErr != nil {
				rel = gofile
			}
			res := detectFile(gofile, rel, fset)
			fileData = append(fileData, analyzer.FileData{Path: rel, Imports: res.imports, Graph: res.graph})
		}
	}
	l.Infof("Parsed %d Go source files across %d packages", len(fileData), len(pkgs))

	results := make([]domain.ComponentResult, len(components))
	for i, c := range components {
		results[i] = analyzer.AnalyzeComponent(c, fileData, nil)
	}
	return results, nil
}
