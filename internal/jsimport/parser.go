// Package jsimport is the JS/TS Import Parser (spec §4.2). It is a
// hand-written, line-oriented pattern parser rather than a full-grammar
// parser: it needs only import shape and symbol names, and must stay
// resilient to syntax it doesn't fully understand. It skips comments
// (via internal/jsstrip) and silently drops forms it cannot classify —
// conservative, never inventing a phantom import.
//
// Grounded on internal/adapters/node/astdetector.go's ParseBindings, which
// uses the same const/let/var + require() and import ... from regex
// classification approach; extended here to cover every kind in spec §4.2's
// table (side-effect, dynamic, require-property, re-export, type-only).
package jsimport

import (
	"bytes"
	"context"
	"regexp"
	"strings"

	"github.com/reachvet/engine/internal/domain"
	"github.com/reachvet/engine/internal/jsstrip"
)

var (
	reImportTypeNamed  = regexp.MustCompile(`^import\s+type\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)
	reImportTypeDef    = regexp.MustCompile(`^import\s+type\s+(\w+)\s+from\s*['"]([^'"]+)['"]`)
	reDynamicImport    = regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"]+)['"]\s*\)`)
	reImportNamespace  = regexp.MustCompile(`^import\s*\*\s*as\s+(\w+)\s+from\s*['"]([^'"]+)['"]`)
	reImportNamedFull  = regexp.MustCompile(`^import\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)
	reImportCombined   = regexp.MustCompile(`^import\s+(\w+)\s*,\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)
	reImportDefault    = regexp.MustCompile(`^import\s+(\w+)\s+from\s*['"]([^'"]+)['"]`)
	reImportSideEffect = regexp.MustCompile(`^import\s*['"]([^'"]+)['"]`)
	reReExport         = regexp.MustCompile(`^export\s*\{([^}]*)\}\s*from\s*['"]([^'"]+)['"]`)

	reRequireProperty    = regexp.MustCompile(`^(?:const|let|var)\s+(\w+)\s*=\s*require\(\s*['"]([^'"]+)['"]\s*\)\s*\.\s*(\w+)`)
	reRequireDestructure = regexp.MustCompile(`^(?:const|let|var)\s*\{([^}]*)\}\s*=\s*require\(\s*['"]([^'"]+)['"]\s*\)`)
	reRequirePlain       = regexp.MustCompile(`^(?:const|let|var)\s+(\w+)\s*=\s*require\(\s*['"]([^'"]+)['"]\s*\)`)

	// reDynamicAssign matches "const x = [await] import('m')" — a dynamic
	// import bound to a local name behaves like a namespace binding (the
	// module's default export object), so it carries an Alias like
	// ImportNamespace does.
	reDynamicAssign = regexp.MustCompile(`^(?:const|let|var)\s+(\w+)\s*=\s*(?:await\s+)?import\s*\(\s*['"]([^'"]+)['"]\s*\)`)

	reStatementStart = regexp.MustCompile(`^\s*(import\b|export\s*\{|export\s+type|(?:const|let|var)\s+\w*\s*\{?[^=]*=\s*(?:require\(|(?:await\s+)?import\()|\bawait\s+import\()`)

	reGuardLine = regexp.MustCompile(`^(try\s*\{?|\}?\s*catch\b.*|if\s*\(.*\)\s*\{?)\s*$`)
)

// maxJoinLines bounds how many physical lines a multi-line import/require
// statement (unbalanced braces) may span before parsing gives up on it.
const maxJoinLines = 25

// Parse extracts every ImportRecord from src. isTS selects the TypeScript
// grammar for the comment-stripping pre-pass.
func Parse(ctx context.Context, src []byte, file string, isTS bool) []domain.ImportRecord {
	stripped := stripTemplates(src)
	stripped = jsstrip.Strip(ctx, stripped, isTS)

	lines := strings.Split(string(stripped), "\n")
	var records []domain.ImportRecord

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}

		if m := reDynamicAssign.FindStringSubmatch(lines[i]); m != nil {
			records = append(records, domain.ImportRecord{
				Kind: domain.ImportDynamic, Source: m[2], Alias: m[1],
				Bindings: []domain.Binding{{Imported: "*", Local: m[1]}},
				Location: domain.Location{File: file, Line: i + 1, Snippet: domain.TrimSnippet(trimmed)},
				Guarded:  isGuarded(lines, i),
			})
			continue
		}

		// Dynamic import() can appear anywhere in an expression, not only at
		// statement start, so it is scanned independently of reStatementStart.
		for _, m := range reDynamicImport.FindAllStringSubmatch(lines[i], -1) {
			records = append(records, domain.ImportRecord{
				Kind: domain.ImportDynamic, Source: m[1],
				Location: domain.Location{File: file, Line: i + 1, Snippet: domain.TrimSnippet(trimmed)},
				Guarded:  isGuarded(lines, i),
			})
		}

		if !reStatementStart.MatchString(lines[i]) {
			continue
		}

		stmt, consumed := joinStatement(lines, i)
		guarded := isGuarded(lines, i)
		recs := classify(stmt, file, i+1, trimmed)
		for j := range recs {
			recs[j].Guarded = guarded
		}
		records = append(records, recs...)
		i += consumed - 1
	}

	return records
}

// joinStatement appends subsequent physical lines to lines[start] until
// braces/parens balance or maxJoinLines is hit, returning the combined
// statement text and how many physical lines it consumed.
func joinStatement(lines []string, start int) (string, int) {
	joined := lines[start]
	depth := braceParenDepth(joined)
	consumed := 1
	for depth > 0 && start+consumed < len(lines) && consumed < maxJoinLines {
		next := lines[start+consumed]
		joined += " " + strings.TrimSpace(next)
		depth += braceParenDepth(next)
		consumed++
	}
	return joined, consumed
}

func braceParenDepth(s string) int {
	depth := 0
	for _, r := range s {
		switch r {
		case '{', '(':
			depth++
		case '}', ')':
			depth--
		}
	}
	return depth
}

// isGuarded decides whether the statement at lines[idx] sits inside a
// try/catch or an if-gate, per the decided reading of spec §9's ambiguity:
// a try, catch, or if line is the statement's own line or one of the two
// lines directly before it. Block nesting is not tracked.
func isGuarded(lines []string, idx int) bool {
	if reGuardLine.MatchString(strings.TrimSpace(lines[idx])) {
		return true
	}
	for back := 1; back <= 2 && idx-back >= 0; back++ {
		if reGuardLine.MatchString(strings.TrimSpace(lines[idx-back])) {
			return true
		}
	}
	return false
}

func classify(stmt, file string, line int, snippet string) []domain.ImportRecord {
	loc := domain.Location{File: file, Line: line, Snippet: domain.TrimSnippet(snippet)}

	if m := reImportTypeNamed.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{
			Kind: domain.ImportTypeOnly, Source: m[2], IsTypeOnly: true,
			Bindings: parseNamedList(m[1]), Location: loc,
		}}
	}
	if m := reImportTypeDef.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{
			Kind: domain.ImportTypeOnly, Source: m[2], IsTypeOnly: true,
			Bindings: []domain.Binding{{Imported: "default", Local: m[1]}}, Location: loc,
		}}
	}
	if m := reImportNamespace.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{
			Kind: domain.ImportNamespace, Source: m[2], Alias: m[1],
			Bindings: []domain.Binding{{Imported: "*", Local: m[1]}}, Location: loc,
		}}
	}
	if m := reImportCombined.FindStringSubmatch(stmt); m != nil {
		out := []domain.ImportRecord{{
			Kind: domain.ImportDefault, Source: m[3],
			Bindings: []domain.Binding{{Imported: "default", Local: m[1]}}, Location: loc,
		}}
		return appendNamedSplit(out, m[2], m[3], loc)
	}
	if m := reImportNamedFull.FindStringSubmatch(stmt); m != nil {
		return appendNamedSplit(nil, m[1], m[2], loc)
	}
	if m := reImportDefault.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{
			Kind: domain.ImportDefault, Source: m[2],
			Bindings: []domain.Binding{{Imported: "default", Local: m[1]}}, Location: loc,
		}}
	}
	if m := reReExport.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{
			Kind: domain.ImportReExport, Source: m[2], Bindings: parseNamedList(m[1]), Location: loc,
		}}
	}
	if m := reImportSideEffect.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{Kind: domain.ImportSideEffect, Source: m[1], Location: loc}}
	}
	if m := reRequireProperty.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{
			Kind: domain.ImportRequireProperty, Source: m[2],
			Bindings: []domain.Binding{{Imported: m[3], Local: m[1]}}, Location: loc,
		}}
	}
	if m := reRequireDestructure.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{
			Kind: domain.ImportRequireDestructure, Source: m[2],
			Bindings: parseDestructureList(m[1]), Location: loc,
		}}
	}
	if m := reRequirePlain.FindStringSubmatch(stmt); m != nil {
		return []domain.ImportRecord{{
			Kind: domain.ImportRequire, Source: m[2],
			Bindings: []domain.Binding{{Imported: "*", Local: m[1]}}, Location: loc,
		}}
	}
	return nil
}

// appendNamedSplit splits a named-import braces body into type-only and
// runtime bindings (handling inline "{ type T, a }" per spec §4.2's table),
// appending the resulting record(s) to base.
func appendNamedSplit(base []domain.ImportRecord, body, source string, loc domain.Location) []domain.ImportRecord {
	var typeOnly, runtime []domain.Binding
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "type ") {
			typeOnly = append(typeOnly, parseBindingPart(strings.TrimPrefix(part, "type ")))
			continue
		}
		runtime = append(runtime, parseBindingPart(part))
	}
	if len(runtime) > 0 {
		base = append(base, domain.ImportRecord{Kind: domain.ImportNamed, Source: source, Bindings: runtime, Location: loc})
	}
	if len(typeOnly) > 0 {
		base = append(base, domain.ImportRecord{Kind: domain.ImportTypeOnly, Source: source, IsTypeOnly: true, Bindings: typeOnly, Location: loc})
	}
	return base
}

func parseNamedList(body string) []domain.Binding {
	var out []domain.Binding
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "type "))
		if part == "" {
			continue
		}
		out = append(out, parseBindingPart(part))
	}
	return out
}

func parseBindingPart(part string) domain.Binding {
	if imported, local, ok := strings.Cut(part, " as "); ok {
		return domain.Binding{Imported: strings.TrimSpace(imported), Local: strings.TrimSpace(local)}
	}
	return domain.Binding{Imported: part, Local: part}
}

// parseDestructureList parses a CommonJS destructuring list, which aliases
// via colon ("{ a: b }") rather than "as".
func parseDestructureList(body string) []domain.Binding {
	var out []domain.Binding
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if imported, local, ok := strings.Cut(part, ":"); ok {
			out = append(out, domain.Binding{Imported: strings.TrimSpace(imported), Local: strings.TrimSpace(local)})
			continue
		}
		out = append(out, domain.Binding{Imported: part, Local: part})
	}
	return out
}

// templateRe is a best-effort template-literal stripper: it blanks out
// backtick-delimited bodies so stray import-like text inside a template
// string cannot be misclassified. It does not handle nested ${} template
// expressions containing their own backticks — an acceptable simplification
// for a hand-written line-oriented parser (spec §4.2's own rationale).
var templateRe = regexp.MustCompile("`[^`]*`")

func stripTemplates(src []byte) []byte {
	if !bytes.Contains(src, []byte("`")) {
		return src
	}
	return templateRe.ReplaceAllFunc(src, func(m []byte) []byte {
		out := make([]byte, len(m))
		for i, b := range m {
			if b == '\n' {
				out[i] = '\n'
			} else {
				out[i] = ' '
			}
		}
		return out
	})
}
