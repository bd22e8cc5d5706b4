// Package goadapter is the supplemental Go-source adapter (spec §12
// supplement: the distilled spec names only JS/TS as the worked example and
// other languages as thin regex packs; Go source is parseable without a
// hand-rolled regex pass, so it gets a real call-graph builder instead of a
// thin one). It uses go/ast directly rather than golang.org/x/tools/go/ssa
// or /callgraph/rta — those build a whole-program, type-checked call graph,
// which spec §1's Non-goals explicitly exclude ("no whole-program pointer
// analysis... no interprocedural dataflow").
//
// Grounded on the teacher's own internal/adapters/go/detector.go
// (DetectFile/DetectPackage: go/parser.ParseFile + ast.Inspect over
// CallExpr/SelectorExpr, import-alias tracking) — generalized here from
// capability.CapabilitySet evidence collection to domain.ImportRecord /
// domain.CallGraph population.
package goadapter

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/reachvet/engine/internal/domain"
)

// fileResult is one Go source file's imports and call graph.
type fileResult struct {
	imports []domain.ImportRecord
	graph   *domain.CallGraph
}

// detectFile parses one Go file and extracts its import records and call
// graph. Unparseable files are skipped and return an empty result, per
// spec §7's "parsers never throw" requirement.
func detectFile(fpath, rel string, fset *token.FileSet) fileResult {
	f, err := parser.ParseFile(fset, fpath, nil, parser.ParseComments)
	if err != nil {
		return fileResult{graph: domain.NewCallGraph()}
	}

	graph := domain.NewCallGraph()
	var records []domain.ImportRecord
	aliasToPath := make(map[string]string)

	for _, imp := range f.Imports {
		path, unquoteErr := strconv.Unquote(imp.Path.Value)
		if unquoteErr != nil {
			path = strings.Trim(imp.Path.Value, `"`)
		}
		pos := fset.Position(imp.Path.Pos())
		loc := domain.Location{File: rel, Line: pos.Line, Column: pos.Column}

		if imp.Name != nil && imp.Name.Name == "_" {
			records = append(records, domain.ImportRecord{Kind: domain.ImportSideEffect, Source: path, Location: loc})
			continue
		}

		local := filepath.Base(path)
		if imp.Name != nil {
			local = imp.Name.Name
		}
		aliasToPath[local] = path

		// A Go import exposes an entire package's exported surface under
		// one local name — functionally a namespace import, per spec §4.2's
		// table.
		records = append(records, domain.ImportRecord{
			Kind: domain.ImportNamespace, Source: path, Alias: local,
			Bindings: []domain.Binding{{Imported: "*", Local: local}},
			Location: loc,
		})
	}

	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		pos := fset.Position(call.Pos())
		loc := domain.Location{File: rel, Line: pos.Line, Column: pos.Column}

		switch fn := call.Fun.(type) {
		case *ast.SelectorExpr:
			ident, identOK := fn.X.(*ast.Ident)
			if !identOK {
				return true
			}
			if _, known := aliasToPath[ident.Name]; !known {
				return true
			}
			// Dotted-path dual recording, mirroring internal/callgraph's
			// member-call handling for JS (spec §9's "permissive
			// dual-recording" design note applies equally here).
			graph.AddCall(ident.Name+"."+fn.Sel.Name, false, loc)
			graph.AddCall(fn.Sel.Name, false, loc)
		case *ast.Ident:
			graph.AddCall(fn.Name, false, loc)
		}
		return true
	})

	ast.Inspect(f, func(n ast.Node) bool {
		if ident, ok := n.(*ast.Ident); ok {
			if _, known := aliasToPath[ident.Name]; known {
				graph.AddReference(ident.Name)
			}
		}
		return true
	})

	return fileResult{imports: records, graph: graph}
}
