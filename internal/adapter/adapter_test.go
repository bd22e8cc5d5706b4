package adapter

import (
	"context"
	"testing"

	"github.com/reachvet/engine/internal/domain"
)

type stubAdapter struct {
	lang     string
	canHandle bool
	results   map[string]domain.ComponentResult // keyed by component name
	err       error
}

func (s *stubAdapter) Language() string            { return s.lang }
func (s *stubAdapter) FileExtensions() []string     { return nil }
func (s *stubAdapter) CanHandle(root string) bool   { return s.canHandle }
func (s *stubAdapter) Analyze(ctx context.Context, root string, components []domain.Component) ([]domain.ComponentResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.ComponentResult, 0, len(components))
	for _, c := range components {
		r, ok := s.results[c.Name]
		if !ok {
			r = domain.ComponentResult{Component: c, Status: domain.StatusNotReachable, Confidence: domain.ConfidenceHigh}
		} else {
			r.Component = c
		}
		out = append(out, r)
	}
	return out, nil
}

func TestDispatcherRunMergesAndPreservesOrder(t *testing.T) {
	js := &stubAdapter{
		lang: "js", canHandle: true,
		results: map[string]domain.ComponentResult{
			"lodash": {Status: domain.StatusReachable, Confidence: domain.ConfidenceHigh},
		},
	}
	components := []domain.Component{
		{Name: "express", Ecosystem: "npm"},
		{Name: "lodash", Ecosystem: "npm"},
	}
	d := NewDispatcher(js)
	out, err := d.Run(context.Background(), "/tmp/x", components)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].Component.Name != "express" || out[1].Component.Name != "lodash" {
		t.Fatalf("expected input order preserved, got %+v", out)
	}
	if out[1].Status != domain.StatusReachable {
		t.Fatalf("got %+v", out[1])
	}
}

func TestDispatcherUnrecognizedComponentIsUnknown(t *testing.T) {
	d := NewDispatcher(&stubAdapter{lang: "js", canHandle: true, results: map[string]domain.ComponentResult{}})
	components := []domain.Component{{Name: "some-gem", Ecosystem: "rubygems"}}
	out, err := d.Run(context.Background(), "/tmp/x", components)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].Status != domain.StatusUnknown {
		t.Fatalf("got %+v", out)
	}
}

func TestDispatcherSkipsAdapterThatCannotHandleRoot(t *testing.T) {
	php := &stubAdapter{lang: "php", canHandle: false}
	components := []domain.Component{{Name: "guzzlehttp/guzzle", Ecosystem: "composer"}}
	d := NewDispatcher(php)
	out, err := d.Run(context.Background(), "/tmp/x", components)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Status != domain.StatusUnknown {
		t.Fatalf("expected unknown since adapter never ran, got %+v", out[0])
	}
}

func TestDispatcherPropagatesAdapterError(t *testing.T) {
	boom := &stubAdapter{lang: "js", canHandle: true, err: context.Canceled}
	components := []domain.Component{{Name: "lodash", Ecosystem: "npm"}}
	d := NewDispatcher(boom)
	_, err := d.Run(context.Background(), "/tmp/x", components)
	if err == nil {
		t.Fatal("expected error to propagate")
	}
}

// A later adapter's failure must not discard an earlier adapter's completed
// work: guzzle, already resolved by the php adapter that ran first, should
// survive the error, while lodash — handled only by the failing js adapter —
// comes back unresolved (zero Status) for the caller to classify.
func TestDispatcherRunReturnsPartialResultsOnError(t *testing.T) {
	done := &stubAdapter{
		lang: "php", canHandle: true,
		results: map[string]domain.ComponentResult{
			"guzzlehttp/guzzle": {Status: domain.StatusReachable, Confidence: domain.ConfidenceHigh},
		},
	}
	boom := &stubAdapter{lang: "js", canHandle: true, err: context.Canceled}
	components := []domain.Component{
		{Name: "guzzlehttp/guzzle", Ecosystem: "composer"},
		{Name: "lodash", Ecosystem: "npm"},
	}
	d := NewDispatcher(done, boom)
	out, err := d.Run(context.Background(), "/tmp/x", components)
	if err == nil {
		t.Fatal("expected error to propagate")
	}
	if len(out) != 2 {
		t.Fatalf("expected partial results for both components, got %+v", out)
	}
	if out[0].Component.Name != "guzzlehttp/guzzle" || out[0].Status != domain.StatusReachable {
		t.Fatalf("expected the already-completed result to survive, got %+v", out[0])
	}
	if out[1].Component.Name != "lodash" || out[1].Status != "" {
		t.Fatalf("expected the unresolved component to carry a zero Status, got %+v", out[1])
	}
}

func TestEcosystemLanguageMapping(t *testing.T) {
	cases := map[string]string{
		"npm": "js", "": "js", "composer": "php", "nuget": "csharp",
		"cocoapods": "swift", "spm": "swift", "cpan": "perl", "maven": "scala",
		"clojars": "clojure", "pub": "dart", "go": "gosrc", "rubygems": "rubygems",
	}
	for eco, want := range cases {
		if got := EcosystemLanguage(eco); got != want {
			t.Errorf("EcosystemLanguage(%q) = %q, want %q", eco, got, want)
		}
	}
}
