// Package callgraph builds the per-file CallGraph defined in spec §3/§4.3:
// calls, calledFunctions, references, and dynamic-code sites.
//
// Grounded on internal/adapters/node/astdetector.go's DetectFileAST, whose
// reChainedCall/reVarCall/reBareCall regexes are the direct teacher
// precedent for resolving call sites line-by-line; generalized from
// gorisk's capability-bearing subset (only calls resolving to a known
// import) to the spec's full requirement that every call site feeds
// calledFunctions/references regardless of whether it resolves to an
// import.
package callgraph

import (
	"context"
	"regexp"
	"strings"

	"github.com/reachvet/engine/internal/domain"
	"github.com/reachvet/engine/internal/jsstrip"
)

var (
	// reMemberCall matches "a.b.c(" capturing the full dotted path and the
	// final segment separately, per spec §4.3: "member expression a.b.c(…)
	// → the full dotted path a.b.c and its last segment c are both
	// recorded".
	reMemberCall = regexp.MustCompile(`\b([A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)+)\s*\(`)
	reBareCall   = regexp.MustCompile(`\b([A-Za-z_$][\w$]*)\s*\(`)
	reNewCall    = regexp.MustCompile(`\bnew\s+([A-Za-z_$][\w$.]*)\s*\(`)
	reBracketStr = regexp.MustCompile(`\b[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*\[\s*['"]([^'"]+)['"]\s*\]\s*\(`)

	reIdentifier = regexp.MustCompile(`[A-Za-z_$][\w$]*`)

	reEval         = regexp.MustCompile(`\beval\s*\(`)
	reIndirectEval = regexp.MustCompile(`\((?:0\s*,\s*eval|\s*0\s*,\s*eval\s*)\)\s*\(|\b(?:window|globalThis)\.eval\s*\(`)
	reFunctionCtor = regexp.MustCompile(`\bnew\s+Function\s*\(|(?:^|[^.\w])Function\s*\(\s*['"]`)
	reSetTimeoutStr = regexp.MustCompile(`\bsetTimeout\s*\(\s*['"` + "`" + `]`)
	reSetIntervalStr = regexp.MustCompile(`\bsetInterval\s*\(\s*['"` + "`" + `]`)
	reExecScript    = regexp.MustCompile(`\bexecScript\s*\(`)

	// reDeclaration excludes declarations from reference tracking (spec
	// §4.3: "Declarations, property keys, and type positions do not count"):
	// on an import or `export type` line no name counts as a reference; on a
	// function/class/const/let/var line the declared name is skipped. Names
	// inside a destructuring pattern (`const { a } = ...`) are not excluded.
	reDeclaration = regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\*?\s+(\w+)|^\s*(?:export\s+)?class\s+(\w+)|^\s*(?:const|let|var)\s+(\w+)\s*=|^\s*import\b|^\s*export\s+type\b`)
)

// Build constructs a CallGraph for one source file's content.
func Build(ctx context.Context, src []byte, isTS bool) *domain.CallGraph {
	stripped := jsstrip.Strip(ctx, src, isTS)
	lines := strings.Split(string(stripped), "\n")

	g := domain.NewCallGraph()

	for i, line := range lines {
		lineNo := i + 1
		loc := domain.Location{Line: lineNo, Snippet: domain.TrimSnippet(line)}

		detectDynamicCode(g, line, loc)
		detectCalls(g, line, loc)
		detectReferences(g, line)
	}

	return g
}

func detectDynamicCode(g *domain.CallGraph, line string, loc domain.Location) {
	switch {
	case reIndirectEval.MatchString(line):
		g.AddDynamicCode(domain.DynIndirectEval, loc)
	case reEval.MatchString(line):
		g.AddDynamicCode(domain.DynEval, loc)
	}
	if reFunctionCtor.MatchString(line) {
		g.AddDynamicCode(domain.DynFunction, loc)
	}
	if reSetTimeoutStr.MatchString(line) {
		g.AddDynamicCode(domain.DynSetTimeoutStr, loc)
	}
	if reSetIntervalStr.MatchString(line) {
		g.AddDynamicCode(domain.DynSetIntervalStr, loc)
	}
	if reExecScript.MatchString(line) {
		g.AddDynamicCode(domain.DynExecScript, loc)
	}
}

func detectCalls(g *domain.CallGraph, line string, loc domain.Location) {
	for _, m := range reNewCall.FindAllStringSubmatch(line, -1) {
		g.AddCall(m[1], true, loc)
		recordLastSegment(g, m[1], true, loc)
	}
	for _, m := range reBracketStr.FindAllStringSubmatch(line, -1) {
		g.AddCall(m[1], false, loc)
	}
	for _, m := range reMemberCall.FindAllStringSubmatch(line, -1) {
		full := m[1]
		g.AddCall(full, false, loc)
		recordLastSegment(g, full, false, loc)
	}
	// Bare calls: only record identifiers that aren't part of a dotted call
	// already captured above (avoids double-recording "c" from "a.b.c(" as
	// an unrelated bare call at a different offset — harmless duplication
	// in a flat table, but skipped for cleanliness via a simple suffix
	// check against reMemberCall matches on the same line).
	dotted := reMemberCall.FindAllString(line, -1)
	for _, m := range reBareCall.FindAllStringSubmatch(line, -1) {
		if isPartOfAny(dotted, m[1]) {
			continue
		}
		g.AddCall(m[1], false, loc)
	}
}

func recordLastSegment(g *domain.CallGraph, dotted string, isConstructor bool, loc domain.Location) {
	parts := strings.Split(dotted, ".")
	last := parts[len(parts)-1]
	if last != dotted {
		g.AddCall(last, isConstructor, loc)
	}
}

func isPartOfAny(dottedMatches []string, name string) bool {
	for _, d := range dottedMatches {
		if strings.HasSuffix(strings.TrimSuffix(strings.TrimSpace(d), "("), "."+strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// detectReferences records identifiers mentioned in value position, skipping
// each occurrence that is itself in callee position and names at a
// declaration/property-key position. A name called at one occurrence and
// mentioned bare at another on the same line is recorded as a reference.
func detectReferences(g *domain.CallGraph, line string) {
	declStart := -1
	if dm := reDeclaration.FindStringSubmatchIndex(line); dm != nil {
		for k := 2; k+1 < len(dm); k += 2 {
			if dm[k] >= 0 {
				declStart = dm[k]
			}
		}
		if declStart < 0 {
			return // import / export type line: declarations only
		}
	}
	callNames := callSiteNames(line)
	for _, m := range reIdentifier.FindAllStringIndex(line, -1) {
		name := line[m[0]:m[1]]
		if isReservedWord(name) || m[0] == declStart {
			continue
		}
		// Skip the callee position of a call on this same occurrence: if the
		// identifier is immediately followed by "(" it's a call, not a bare
		// reference, unless it's part of a dotted chain already counted as
		// a call (still fine to also mark as reference — spec allows both).
		if followedByCallParen(line, m[1]) && !isMemberAccess(line, m[0]) {
			continue
		}
		if isPropertyKeyOrDeclTarget(line, m[0]) {
			continue
		}
		_ = callNames
		g.AddReference(name)
	}
}

func callSiteNames(line string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range reBareCall.FindAllStringSubmatch(line, -1) {
		names[m[1]] = true
	}
	return names
}

func followedByCallParen(line string, afterIdx int) bool {
	i := afterIdx
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i < len(line) && line[i] == '('
}

// isMemberAccess reports whether the identifier starting at idx is preceded
// by a '.', i.e. it's a member name like the "b" in "a.b(" — those are
// already captured via detectCalls/recordLastSegment and are additionally
// valid references per spec §3 (a name may be both called and referenced).
func isMemberAccess(line string, idx int) bool {
	j := idx - 1
	for j >= 0 && (line[j] == ' ' || line[j] == '\t') {
		j--
	}
	return j >= 0 && line[j] == '.'
}

func isPropertyKeyOrDeclTarget(line string, idx int) bool {
	// A simple, conservative heuristic: treat an identifier immediately
	// followed by ':' (and not '::') as a property key / type annotation
	// target rather than a value reference.
	j := idx
	for j < len(line) && line[j] != ':' && line[j] != ',' && line[j] != '\n' && isIdentChar(line[j]) {
		j++
	}
	return j < len(line) && line[j] == ':' && !(j+1 < len(line) && line[j+1] == ':')
}

func isIdentChar(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

var reservedWords = map[string]bool{
	"if": true, "else": true, "for": true, "while": true, "do": true, "switch": true,
	"case": true, "default": true, "break": true, "continue": true, "return": true,
	"function": true, "class": true, "extends": true, "new": true, "typeof": true,
	"instanceof": true, "in": true, "of": true, "try": true, "catch": true, "finally": true,
	"throw": true, "const": true, "let": true, "var": true, "import": true, "export": true,
	"from": true, "as": true, "async": true, "await": true, "yield": true, "this": true,
	"super": true, "null": true, "undefined": true, "true": true, "false": true,
	"void": true, "delete": true, "interface": true, "type": true, "enum": true,
	"implements": true, "public": true, "private": true, "protected": true, "static": true,
	"readonly": true, "abstract": true, "namespace": true, "declare": true,
}

func isReservedWord(name string) bool { return reservedWords[name] }
