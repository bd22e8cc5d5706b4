// Package aggregate implements the Aggregator (spec §6): folds a run's
// per-component results into the Result document's summary block and maps
// that summary onto a CLI exit code.
//
// Grounded on internal/sbom/sbom.go's Generate, which folds per-module
// capability/health/risk reports into one summary structure the same way —
// generalized here from BOM properties to the {total, reachable, imported,
// notReachable, unknown, warningsCount, elapsedMs} shape spec §6 names.
package aggregate

import "github.com/reachvet/engine/internal/domain"

// Summary is the Result document's summary block.
type Summary struct {
	Total         int   `json:"total"`
	Reachable     int   `json:"reachable"`
	Imported      int   `json:"imported"`
	NotReachable  int   `json:"notReachable"`
	Unknown       int   `json:"unknown"`
	WarningsCount int   `json:"warningsCount"`
	ElapsedMs     int64 `json:"elapsedMs"`
}

// Report is the full Result document.
type Report struct {
	Results   []domain.ComponentResult `json:"results"`
	Summary   Summary                  `json:"summary"`
	Cancelled bool                      `json:"cancelled,omitempty"`
}

// Summarize counts statuses and warnings across results. elapsedMs is
// supplied by the caller (this package does no timing of its own, keeping it
// a pure function of its inputs).
func Summarize(results []domain.ComponentResult, elapsedMs int64) Summary {
	s := Summary{Total: len(results), ElapsedMs: elapsedMs}
	for _, r := range results {
		switch r.Status {
		case domain.StatusReachable:
			s.Reachable++
		case domain.StatusImported:
			s.Imported++
		case domain.StatusNotReachable:
			s.NotReachable++
		case domain.StatusUnknown:
			s.Unknown++
		}
		s.WarningsCount += len(r.Warnings)
	}
	return s
}

// Exit codes per spec §6: 0 = clean, 1 = any reachable+high, 2 = usage
// error, 3 = internal error. Only 0/1 are derivable from a completed run;
// 2/3 are assigned by the caller at the boundaries those errors occur.
const (
	ExitClean        = 0
	ExitReachableHigh = 1
	ExitUsageError    = 2
	ExitInternalError = 3
)

// ExitCode maps a completed run's results to the 0/1 exit-code contract.
func ExitCode(results []domain.ComponentResult) int {
	for _, r := range results {
		if r.Status == domain.StatusReachable && r.Confidence == domain.ConfidenceHigh {
			return ExitReachableHigh
		}
	}
	return ExitClean
}
