// Package analyzer implements the Component Analyzer (spec §4.5): given one
// Component and the parsed imports + call graphs of every file in a
// project, produce that component's ComponentResult.
//
// Grounded on internal/capability/detector.go's DetectPackage (per-package
// aggregation loop merging per-file evidence) for the aggregation shape, and
// internal/adapters/php/capability.go's checkUseStatement fallback-matching
// (exact match, then vendor-prefix fallback) for spec §4.5 step 1's match
// resolution order — php's vendor-prefix fallback is the direct precedent
// for this package's curated-namespace-map fallback chain.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reachvet/engine/internal/domain"
	"github.com/reachvet/engine/internal/linker"
)

// FileData is one file's parsed imports and call graph, as produced by
// internal/jsimport and internal/callgraph.
type FileData struct {
	Path    string
	Imports []domain.ImportRecord
	Graph   *domain.CallGraph
}

// NamespaceMapper resolves a component's package name to candidate
// source-level namespace prefixes, for ecosystems where the package name
// does not equal the import name (PHP/C#/Swift/Perl/Scala/Clojure/Dart).
// Adapters where the import specifier already equals the package name (JS,
// Go modules) pass a nil mapper.
type NamespaceMapper interface {
	NamespacesFor(pkg string) []string
}

// matchedImport pairs an ImportRecord with the file it was found in.
type matchedImport struct {
	file     string
	record   domain.ImportRecord
	inferred bool // matched only via a guessed, uncurated namespace
}

// AnalyzeComponent runs the 8-step algorithm of spec §4.5 against one
// component.
func AnalyzeComponent(component domain.Component, files []FileData, mapper NamespaceMapper) domain.ComponentResult {
	matches := matchImports(component, files, mapper)

	// Step 1 (no match): no import found at all.
	if len(matches) == 0 {
		return domain.ComponentResult{
			Component:  component,
			Status:     domain.StatusNotReachable,
			Confidence: domain.ConfidenceHigh,
			Reasons:    []string{"No import statements found"},
		}
	}

	runtimeMatches, typeOnlyMatches := partitionTypeOnly(matches)

	var warnings []domain.AnalysisWarning
	for _, m := range typeOnlyMatches {
		loc := m.record.Location
		warnings = append(warnings, domain.AnalysisWarning{
			Code:     domain.WarnTypeOnlyImport,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Type-only import of %q", component.Name),
			Location: &loc,
		})
	}

	if len(runtimeMatches) == 0 {
		return domain.ComponentResult{
			Component:  component,
			Status:     domain.StatusNotReachable,
			Confidence: domain.ConfidenceHigh,
			Reasons:    []string{"Only type-only imports found"},
			Warnings:   warnings,
		}
	}

	// Step 3: aggregate usage across every matching import/file. Candidate
	// vulnerable members are threaded in up front so a namespace/aliased
	// import (e.g. `import * as _ from 'lodash'`) can be tested as `alias.M`
	// against the call graph, not just the bare alias.
	affected := affectedFunctions(component)
	called, uncertain, notCalled, locations := aggregateUsage(runtimeMatches, files, affected)

	// Step 4: vulnerability intersection.
	status, confidence, usedMembers, reason := classifyStatus(affected, called, uncertain)

	// Step 5: namespace/wildcard import downgrade.
	for _, m := range runtimeMatches {
		if m.record.Kind == domain.ImportNamespace {
			loc := m.record.Location
			warnings = append(warnings, domain.AnalysisWarning{
				Code:     domain.WarnNamespaceImport,
				Severity: domain.SeverityWarning,
				Message:  "Namespace import resolves members dynamically",
				Location: &loc,
			})
			confidence = confidence.CapAt(domain.ConfidenceMedium)
		}
	}

	// Inferred (uncurated) namespace matches: spec §9's PHP/C#/Swift
	// ambiguity. These are always low confidence regardless of call
	// evidence, since the match itself is a guess.
	for _, m := range runtimeMatches {
		if m.inferred {
			confidence = domain.ConfidenceLow
			reason = fmt.Sprintf("%s (module match inferred from an uncurated namespace guess)", reason)
			break
		}
	}

	// Step 6: dynamic-code attribution.
	for _, m := range runtimeMatches {
		if m.record.Kind == domain.ImportDynamic {
			loc := m.record.Location
			warnings = append(warnings, domain.AnalysisWarning{
				Code:     domain.WarnDynamicImport,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Dynamic import of %q", component.Name),
				Location: &loc,
			})
			status = domain.StatusReachable
			confidence = confidence.CapAt(domain.ConfidenceMedium)
		}
	}
	matchedFiles := map[string]bool{}
	for _, m := range runtimeMatches {
		matchedFiles[m.file] = true
	}
	for _, f := range files {
		if !matchedFiles[f.Path] || f.Graph == nil || len(f.Graph.DynamicCodeWarnings) == 0 {
			continue
		}
		confidence = confidence.CapAt(domain.ConfidenceMedium)
		warnings = append(warnings, domain.AnalysisWarning{
			Code:     domain.WarnDynamicCode,
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Dynamic code construct present in %s alongside an import of %q", f.Path, component.Name),
		})
	}

	// Step 7: conditional (guarded) loads.
	for _, m := range runtimeMatches {
		if !m.record.Guarded {
			continue
		}
		loc := m.record.Location
		confidence = confidence.CapAt(domain.ConfidenceMedium)
		warnings = append(warnings, domain.AnalysisWarning{
			Code:     domain.WarnIndirectUsage,
			Severity: domain.SeverityInfo,
			Message:  "Conditional import",
			Location: &loc,
		})
	}

	// Step 8: unused named imports.
	for _, name := range notCalled {
		warnings = append(warnings, domain.AnalysisWarning{
			Code:     domain.WarnUnusedImport,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("Imported but never called: %s", name),
		})
	}

	usage := &domain.UsageInfo{
		ImportStyle: runtimeMatches[0].record.Kind,
		UsedMembers: usedMembers,
		Locations:   locations,
	}

	return domain.ComponentResult{
		Component:  component,
		Status:     status,
		Confidence: confidence,
		Reasons:    []string{reason},
		Usage:      usage,
		Warnings:   warnings,
	}
}

// matchImports implements spec §4.5 step 1: exact module specifier, subpath,
// and (only when a NamespaceMapper is supplied) a curated package→namespace
// map, falling back to an uncurated title-cased guess.
func matchImports(component domain.Component, files []FileData, mapper NamespaceMapper) []matchedImport {
	var out []matchedImport
	var namespaces []string
	if mapper != nil {
		namespaces = mapper.NamespacesFor(component.Name)
	}

	for _, f := range files {
		for _, rec := range f.Imports {
			switch {
			case rec.Source == component.Name || strings.HasPrefix(rec.Source, component.Name+"/"):
				out = append(out, matchedImport{file: f.Path, record: rec})
			case matchesNamespace(rec.Source, namespaces):
				out = append(out, matchedImport{file: f.Path, record: rec})
			case mapper != nil && len(namespaces) == 0 && matchesInferredNamespace(rec.Source, component.Name):
				out = append(out, matchedImport{file: f.Path, record: rec, inferred: true})
			}
		}
	}
	return out
}

func matchesNamespace(source string, namespaces []string) bool {
	for _, ns := range namespaces {
		if source == ns ||
			strings.HasPrefix(source, ns+".") ||
			strings.HasPrefix(source, ns+"\\") ||
			strings.HasPrefix(source, ns+"/") ||
			strings.HasPrefix(source, ns+"::") {
			return true
		}
	}
	return false
}

// matchesInferredNamespace implements the fallback named in spec §9: guess a
// namespace by title-casing the package's base name (e.g.
// "guzzlehttp/guzzle" → "Guzzle"), grounded on php/capability.go's
// checkUseStatement prefix fallback. Matches found this way are always
// marked `inferred` and capped to low confidence by the caller.
func matchesInferredNamespace(source, packageName string) bool {
	base := packageName
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	if base == "" {
		return false
	}
	guess := strings.ToUpper(base[:1]) + base[1:]
	return source == guess || strings.HasPrefix(source, guess+".") || strings.HasPrefix(source, guess+"\\")
}

func partitionTypeOnly(matches []matchedImport) (runtime, typeOnly []matchedImport) {
	for _, m := range matches {
		if m.record.IsTypeOnly {
			typeOnly = append(typeOnly, m)
			continue
		}
		runtime = append(runtime, m)
	}
	return
}

// aggregateUsage implements step 3: union called/uncertain/not_called names
// across every matching import, resolved per-file through the linker.
// affected carries the component's vulnerable function names, which for a
// namespace/aliased import are candidate members to test as `alias.M`
// (ClassifyImports has no other way to learn what M might be).
func aggregateUsage(matches []matchedImport, files []FileData, affected []string) (called, uncertain, notCalled []string, locations []domain.Location) {
	graphByFile := make(map[string]*domain.CallGraph, len(files))
	for _, f := range files {
		graphByFile[f.Path] = f.Graph
	}

	calledSet := map[string]bool{}
	uncertainSet := map[string]bool{}
	notCalledSet := map[string]bool{}

	for _, m := range matches {
		graph := graphByFile[m.file]
		if graph == nil {
			continue
		}
		locations = append(locations, m.record.Location)

		var localNames []string
		namespaceAlias := ""
		if m.record.Kind == domain.ImportNamespace || (m.record.Kind == domain.ImportDynamic && m.record.Alias != "") {
			namespaceAlias = m.record.Alias
			localNames = append(localNames, m.record.Alias)
			localNames = append(localNames, affected...)
			localNames = append(localNames, namespaceMembers(graph, m.record.Alias)...)
		}
		for _, b := range m.record.Bindings {
			if b.Imported == "*" {
				continue
			}
			localNames = append(localNames, b.Local)
		}

		cls := linker.ClassifyImports(localNames, graph, namespaceAlias)
		for _, n := range cls.Called {
			calledSet[n] = true
		}
		for _, n := range cls.Uncertain {
			uncertainSet[n] = true
		}
		for _, n := range cls.NotCalled {
			notCalledSet[n] = true
		}
	}

	// A name classified called (or uncertain) in any file wins over
	// not_called in another (union semantics across files).
	for n := range notCalledSet {
		if calledSet[n] || uncertainSet[n] {
			delete(notCalledSet, n)
		}
	}
	for n := range uncertainSet {
		if calledSet[n] {
			delete(uncertainSet, n)
		}
	}

	called = sortedKeys(calledSet)
	uncertain = sortedKeys(uncertainSet)
	notCalled = sortedKeys(notCalledSet)
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].File != locations[j].File {
			return locations[i].File < locations[j].File
		}
		if locations[i].Line != locations[j].Line {
			return locations[i].Line < locations[j].Line
		}
		return locations[i].Column < locations[j].Column
	})
	return
}

// namespaceMembers returns the last-segment member names actually observed
// called under alias (e.g. "template" from a recorded "_.template" callee),
// so an unaffected-but-called member still counts toward generic usage when
// the component carries no vulnerability data to intersect against.
func namespaceMembers(graph *domain.CallGraph, alias string) []string {
	prefix := alias + "."
	seen := map[string]bool{}
	var out []string
	for callee := range graph.CalledFunctions {
		if name, ok := strings.CutPrefix(callee, prefix); ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func affectedFunctions(c domain.Component) []string {
	set := map[string]bool{}
	for _, v := range c.Vulnerabilities {
		for _, fn := range v.AffectedFunctions {
			set[fn] = true
		}
	}
	return sortedKeys(set)
}

// classifyStatus implements spec §4.5 step 4.
func classifyStatus(affected, called, uncertain []string) (domain.Status, domain.Confidence, []string, string) {
	calledSet := toSet(called)
	calledOrUncertainSet := toSet(called)
	for _, n := range uncertain {
		calledOrUncertainSet[n] = true
	}

	if len(affected) > 0 {
		if hit := intersect(affected, calledSet); len(hit) > 0 {
			return domain.StatusReachable, domain.ConfidenceHigh, hit,
				fmt.Sprintf("Vulnerable method(s) called: %s", strings.Join(hit, ", "))
		}
		if hit := intersect(affected, calledOrUncertainSet); len(hit) > 0 {
			return domain.StatusReachable, domain.ConfidenceMedium, nil,
				fmt.Sprintf("Vulnerable method(s) possibly reachable: %s", strings.Join(hit, ", "))
		}
		return domain.StatusImported, domain.ConfidenceHigh, nil,
			"Imported but no vulnerable method call found"
	}

	if len(called) > 0 {
		return domain.StatusReachable, domain.ConfidenceHigh, called,
			fmt.Sprintf("Used in %d location(s)", len(called))
	}
	return domain.StatusImported, domain.ConfidenceHigh, nil, "Imported but nothing called"
}

func toSet(ss []string) map[string]bool {
	m := make(map[string]bool, len(ss))
	for _, s := range ss {
		m[s] = true
	}
	return m
}

func intersect(a []string, bSet map[string]bool) []string {
	var out []string
	for _, x := range a {
		if bSet[x] {
			out = append(out, x)
		}
	}
	sort.Strings(out)
	return out
}
