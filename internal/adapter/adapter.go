// Package adapter defines the Adapter Contract (spec §4.6): a uniform
// interface each language implements, plus the top-level Dispatcher that
// picks adapters by CanHandle(root) and merges their results.
//
// Grounded on internal/analyzer/analyzer.go's Analyzer interface + ForLang /
// detect / multiAnalyzer.Load (auto-detect by manifest presence, run every
// matching adapter, merge) — modeled as a capability per spec §9 ("model the
// adapter as a capability... no inheritance hierarchy is required"), not a
// class hierarchy.
package adapter

import (
	"context"

	"github.com/reachvet/engine/internal/domain"
)

// Adapter is the contract every language implementation satisfies.
type Adapter interface {
	Language() string
	FileExtensions() []string
	CanHandle(root string) bool
	Analyze(ctx context.Context, root string, components []domain.Component) ([]domain.ComponentResult, error)
}

// Dispatcher holds an ordered list of adapters and runs every one that
// CanHandle(root), merging their per-component results. A component that no
// adapter recognizes (by ecosystem tag) becomes status=unknown.
type Dispatcher struct {
	adapters []Adapter
}

// NewDispatcher returns a Dispatcher over the given adapters, in priority
// order (first match for a given component's ecosystem wins on conflicts).
func NewDispatcher(adapters ...Adapter) *Dispatcher {
	return &Dispatcher{adapters: adapters}
}

// Run executes every adapter whose CanHandle(root) is true over the
// components it recognizes, merges results, and fills in status=unknown for
// any component no adapter handled. Results preserve the input component
// order (spec §5's ordering guarantee).
//
// On error (including context cancellation), Run still returns the results
// slice alongside the error: every component an adapter had already resolved
// before the failure keeps its real ComponentResult, and only the
// still-unresolved ones are left as a zero-value ComponentResult (Component
// set, Status empty) — spec §5's "partial report on cancel" means the caller
// must not discard completed work just because a later adapter failed.
func (d *Dispatcher) Run(ctx context.Context, root string, components []domain.Component) ([]domain.ComponentResult, error) {
	resultByComponent := make(map[string]domain.ComponentResult, len(components))

	var runErr error
	for _, a := range d.adapters {
		if !a.CanHandle(root) {
			continue
		}
		recognized := recognizedBy(a, components)
		if len(recognized) == 0 {
			continue
		}
		results, err := a.Analyze(ctx, root, recognized)
		if err != nil {
			runErr = err
			break
		}
		for _, r := range results {
			key := componentKey(r.Component)
			if _, seen := resultByComponent[key]; seen {
				continue // an earlier adapter already resolved it
			}
			resultByComponent[key] = r
		}
	}

	out := make([]domain.ComponentResult, len(components))
	for i, c := range components {
		out[i].Component = c
		if r, ok := resultByComponent[componentKey(c)]; ok {
			out[i] = r
			continue
		}
		if runErr != nil {
			continue // left unresolved; caller fills this in once it knows why
		}
		out[i].Status = domain.StatusUnknown
		out[i].Confidence = domain.ConfidenceLow
		out[i].Reasons = []string{"no adapter"}
	}
	return out, runErr
}

func componentKey(c domain.Component) string {
	return c.Ecosystem + "|" + c.Name + "|" + c.Version
}

// recognizedBy filters components to those whose ecosystem tag the adapter's
// language owns. Ecosystem tags map 1:1 onto adapter languages in this
// engine (npm→js, composer→php, nuget→csharp, cocoapods/spm→swift,
// cpan→perl, maven→scala, clojars→clojure, pub→dart, go→gosrc).
func recognizedBy(a Adapter, components []domain.Component) []domain.Component {
	lang := a.Language()
	var out []domain.Component
	for _, c := range components {
		if EcosystemLanguage(c.Ecosystem) == lang {
			out = append(out, c)
		}
	}
	return out
}

// EcosystemLanguage maps a Component.Ecosystem tag to the adapter language
// that owns it.
func EcosystemLanguage(ecosystem string) string {
	switch ecosystem {
	case "npm", "":
		return "js"
	case "composer":
		return "php"
	case "nuget":
		return "csharp"
	case "cocoapods", "spm":
		return "swift"
	case "cpan":
		return "perl"
	case "maven":
		return "scala"
	case "clojars":
		return "clojure"
	case "pub":
		return "dart"
	case "go":
		return "gosrc"
	default:
		return ecosystem
	}
}
