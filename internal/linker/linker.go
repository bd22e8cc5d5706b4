// Package linker implements the Import-Usage Linker (spec §4.4):
// classifyImports joins a file's imported bindings against that file's
// CallGraph to produce the {called, uncertain, not_called} triple.
//
// Grounded on internal/reachability/node.go's resolveReachable for the
// general shape of "classify names against call-graph evidence" — adapted
// from BFS-over-module-edges (cross-file) to per-file set membership, since
// linking itself is local to one file (spec §4.4's scope is one file's
// bindings against that file's own CallGraph).
package linker

import "github.com/reachvet/engine/internal/domain"

// Classification is the disjoint {called, uncertain, not_called} triple for
// one file's import bindings against its CallGraph.
type Classification struct {
	Called    []string
	Uncertain []string
	NotCalled []string
}

// ClassifyImports classifies each local binding name L: called when L (or,
// for a namespace alias, ns.L for any dotted member) is in calledFunctions;
// uncertain when not called but referenced (escaped, could be invoked
// later); not_called otherwise.
func ClassifyImports(localNames []string, graph *domain.CallGraph, namespaceAlias string) Classification {
	var out Classification
	for _, name := range localNames {
		if isCalled(name, graph, namespaceAlias) {
			out.Called = append(out.Called, name)
			continue
		}
		if graph.References[name] || (namespaceAlias != "" && referencesNamespaceMember(graph, namespaceAlias)) {
			out.Uncertain = append(out.Uncertain, name)
			continue
		}
		out.NotCalled = append(out.NotCalled, name)
	}
	return out
}

func isCalled(name string, graph *domain.CallGraph, namespaceAlias string) bool {
	if graph.CalledFunctions[name] {
		return true
	}
	if namespaceAlias != "" && graph.CalledFunctions[namespaceAlias+"."+name] {
		return true
	}
	return false
}

func referencesNamespaceMember(graph *domain.CallGraph, namespaceAlias string) bool {
	return graph.References[namespaceAlias]
}
