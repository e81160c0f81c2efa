package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/algoviz/tracekit/internal/errors"
	"github.com/algoviz/tracekit/internal/fibonacci"
	"github.com/algoviz/tracekit/internal/logging"
	"github.com/algoviz/tracekit/internal/trace"
)

// BuildResult encapsulates the outcome of a single trace build. It is
// the shared type between orchestration and presentation layers.
type BuildResult struct {
	// Strategy identifies the algorithm variant that produced the trace.
	Strategy fibonacci.Strategy
	// Trace is the recorded step sequence. It is nil if an error occurred.
	Trace trace.Trace
	// Duration is the time taken to build the trace.
	Duration time.Duration
	// Err contains any error that occurred during the build.
	Err error
}

// ResultPresenter formats comparison outcomes for the user. The
// interface keeps CLI and JSON rendering out of the orchestration
// layer.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy summary table.
	PresentComparisonTable(results []BuildResult, out io.Writer)
	// PresentWinner displays the fastest successful build.
	PresentWinner(result BuildResult, out io.Writer)
}

// BuildAll builds one trace per strategy concurrently and returns the
// results in strategy order. Individual build failures are recorded in
// their slot rather than aborting the group; a context cancellation
// still propagates to every build.
//
// Parameters:
//   - ctx: Context for cancellation and deadlines.
//   - in: The validated build input; its Strategy field is overridden per slot.
//   - strategies: The strategy variants to compare.
//   - log: Logger for per-build lifecycle events.
//
// Returns:
//   - []BuildResult: One entry per requested strategy.
func BuildAll(ctx context.Context, in fibonacci.Input, strategies []fibonacci.Strategy, log logging.Logger) []BuildResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]BuildResult, len(strategies))

	for i, strat := range strategies {
		idx, strategy := i, strat
		g.Go(func() error {
			input := in
			input.Strategy = strategy
			builder := fibonacci.NewBuilder(input, fibonacci.WithLogger(log))

			start := time.Now()
			tr, err := builder.GenerateTrace(ctx)
			results[idx] = BuildResult{
				Strategy: strategy,
				Trace:    tr,
				Duration: time.Since(start),
				Err:      err,
			}
			if err != nil {
				log.Warn("trace build failed",
					logging.String("strategy", string(strategy)),
					logging.Err(err))
			}
			return nil
		})
	}

	// Goroutines never return errors; Wait only joins them.
	_ = g.Wait()
	return results
}

// FinalValue extracts the computed value from a completed trace. The
// second return is false for nil traces and traces that ended on any
// terminal other than a completion step.
func FinalValue(tr trace.Trace) (string, bool) {
	last, ok := tr.Last()
	if !ok || last.Kind != trace.KindComplete {
		return "", false
	}
	payload, ok := last.Payload.(fibonacci.CompletePayload)
	if !ok {
		return "", false
	}
	return payload.Result, true
}

// AnalyzeAgreement sorts results fastest-first, cross-checks that every
// successful build computed the same final value, and renders the
// summary through the presenter.
//
// Returns an exit code: success, the first build error's code when no
// build succeeded, or the mismatch code when two strategies disagree.
func AnalyzeAgreement(results []BuildResult, presenter ResultPresenter, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var winner *BuildResult
	var firstErr error
	reference := ""
	for i := range results {
		if results[i].Err != nil {
			if firstErr == nil {
				firstErr = results[i].Err
			}
			continue
		}
		if winner == nil {
			winner = &results[i]
			reference, _ = FinalValue(results[i].Trace)
		}
	}

	presenter.PresentComparisonTable(results, out)

	if winner == nil {
		fmt.Fprintf(out, "\nGlobal status: failure, no strategy completed the build.\n")
		return apperrors.HandleBuildError(firstErr, 0, out, nil)
	}

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		value, ok := FinalValue(res.Trace)
		if !ok || value != reference {
			fmt.Fprintf(out, "\nGlobal status: CRITICAL, strategies disagree on the final value.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal status: success, all strategies agree.\n")
	presenter.PresentWinner(*winner, out)
	return apperrors.ExitSuccess
}
