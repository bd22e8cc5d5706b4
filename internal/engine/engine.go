package engine

import (
	"context"
	"os"
	"time"

	"github.com/reachvet/engine/internal/adapter"
	"github.com/reachvet/engine/internal/adapters/csharp"
	"github.com/reachvet/engine/internal/adapters/clojure"
	"github.com/reachvet/engine/internal/adapters/dart"
	goadapter "github.com/reachvet/engine/internal/adapters/go"
	"github.com/reachvet/engine/internal/adapters/js"
	"github.com/reachvet/engine/internal/adapters/perl"
	"github.com/reachvet/engine/internal/adapters/php"
	"github.com/reachvet/engine/internal/adapters/regexlang"
	"github.com/reachvet/engine/internal/adapters/scala"
	"github.com/reachvet/engine/internal/adapters/swift"
	"github.com/reachvet/engine/internal/aggregate"
	"github.com/reachvet/engine/internal/domain"
	"github.com/reachvet/engine/internal/logx"
)

// Engine is the top-level entry point: discovery → adapter dispatch →
// aggregation, for one analysis run.
type Engine struct {
	opts       Options
	dispatcher *adapter.Dispatcher
	log        *logx.Logger
}

// New builds an Engine with every language adapter registered, configured
// by opts.
func New(opts ...Option) *Engine {
	o := newDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Verbose {
		os.Setenv("REACHVET_VERBOSE", "1")
	}

	jsAdapter := js.New()
	jsAdapter.MaxWorkers = o.Workers
	jsAdapter.ExcludeGlobs = o.ExcludePatterns

	thin := []*regexlang.Adapter{
		php.New(), csharp.New(), swift.New(), perl.New(), scala.New(), clojure.New(), dart.New(),
	}
	for _, t := range thin {
		t.ExcludeGlobs = o.ExcludePatterns
	}

	d := adapter.NewDispatcher(
		jsAdapter,
		thin[0], thin[1], thin[2], thin[3], thin[4], thin[5], thin[6],
		goadapter.New(),
	)

	return &Engine{opts: o, dispatcher: d, log: logx.New("engine")}
}

// Run analyzes every component against the source tree rooted at root,
// returning the Result document defined in spec §6.
func (e *Engine) Run(ctx context.Context, root string, components []domain.Component) (aggregate.Report, error) {
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	results, err := e.dispatcher.Run(ctx, root, components)
	elapsed := time.Since(start).Milliseconds()

	if err != nil {
		if ctx.Err() != nil {
			e.log.Warnf("run cancelled: %v", ctx.Err())
			return cancelledReport(results, elapsed), nil
		}
		e.log.Errorf("run failed: %v", err)
		return aggregate.Report{}, err
	}

	return aggregate.Report{
		Results: results,
		Summary: aggregate.Summarize(results, elapsed),
	}, nil
}

// cancelledReport builds the partial report spec §5 requires on
// cancellation: components an adapter already resolved before the
// cancellation hit keep their real result; only the ones dispatcher.Run
// never reached (zero-value Status) become status=unknown. The document is
// marked cancelled, and the run never returns an error for this case.
func cancelledReport(results []domain.ComponentResult, elapsedMs int64) aggregate.Report {
	for i, r := range results {
		if r.Status != "" {
			continue
		}
		results[i] = domain.ComponentResult{
			Component:  r.Component,
			Status:     domain.StatusUnknown,
			Confidence: domain.ConfidenceLow,
			Reasons:    []string{"analysis cancelled before this component was reached"},
		}
	}
	return aggregate.Report{
		Results:   results,
		Summary:   aggregate.Summarize(results, elapsedMs),
		Cancelled: true,
	}
}
