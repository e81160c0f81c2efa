package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/algoviz/tracekit/internal/cli"
	"github.com/algoviz/tracekit/internal/config"
	apperrors "github.com/algoviz/tracekit/internal/errors"
	"github.com/algoviz/tracekit/internal/fibonacci"
	"github.com/algoviz/tracekit/internal/orchestration"
	"github.com/algoviz/tracekit/internal/playback"
	"github.com/algoviz/tracekit/internal/queens"
	"github.com/algoviz/tracekit/internal/trace"
	"github.com/algoviz/tracekit/internal/tui"
	"github.com/algoviz/tracekit/internal/ui"
)

// newGenerator builds the trace generator selected by -algo. Validation
// failures surface as ValidationError so callers map them to the
// config exit code.
func (a *Application) newGenerator() (trace.Generator, error) {
	switch a.Config.Algo {
	case "n-queens":
		in := queens.Input{
			N:            a.Config.QueensN,
			MaxSolutions: a.Config.MaxSolutions,
			Mode:         queens.Mode(a.Config.QueensMode),
			UseBitmask:   a.Config.UseBitmask(),
		}
		if result := queens.Validate(in); !result.Valid {
			return nil, apperrors.NewValidationError("n-queens input", "%s", result.Error)
		}
		return queens.NewBuilder(in, queens.WithLogger(a.Log)), nil

	default:
		in := fibonacci.Input{
			N:           a.Config.N,
			Strategy:    fibonacci.Strategy(a.Config.Strategy),
			DetailLevel: a.Config.DetailLevel,
			Mode:        fibonacci.Mode(a.Config.Mode),
		}
		if result := fibonacci.Validate(in); !result.Valid {
			return nil, apperrors.NewValidationError("fibonacci input", "%s", result.Error)
		}
		return fibonacci.NewBuilder(in, fibonacci.WithLogger(a.Log)), nil
	}
}

// runBuild executes the single-generator CLI mode: build one trace,
// record metrics and render it.
func (a *Application) runBuild(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	gen, err := a.newGenerator()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	a.Metrics.BuildStarted()
	start := time.Now()
	var tr trace.Trace
	buildErr := cli.RunWithSpinner(
		fmt.Sprintf("Building %s trace...", gen.Algorithm()),
		out, a.Config.Quiet,
		func() error {
			var genErr error
			tr, genErr = gen.GenerateTrace(ctx)
			return genErr
		},
	)
	elapsed := time.Since(start)
	a.Metrics.BuildFinished()
	a.Metrics.ObserveBuild(gen.Algorithm(), tr.Len(), elapsed, buildErr)

	if buildErr != nil {
		return apperrors.HandleBuildError(buildErr, elapsed, a.ErrWriter, ui.ErrorPalette{})
	}
	return a.emitTrace(tr, gen.Algorithm(), out)
}

// emitTrace renders a built trace according to the output flags.
func (a *Application) emitTrace(tr trace.Trace, algorithm string, out io.Writer) int {
	switch {
	case a.Config.JSON:
		if err := cli.EncodeTrace(out, algorithm, tr); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error encoding trace: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	case a.Config.Quiet:
		cli.DisplayQuietTrace(out, tr)
	default:
		cli.DisplayTrace(out, tr, a.Config.Verbose)
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteTraceToFile(a.Config.OutputFile, algorithm, tr); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving trace: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Trace saved to: %s%s%s\n",
				ui.ColorSuccess(), ui.ColorInfo(), a.Config.OutputFile, ui.ColorReset())
		}
	}
	return apperrors.ExitSuccess
}

// runCompare builds the same Fibonacci input with every selected
// strategy concurrently and verifies the final values agree.
func (a *Application) runCompare(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Algo != "fibonacci" {
		fmt.Fprintf(a.ErrWriter, "Error: -compare supports the fibonacci algorithm only\n")
		return apperrors.ExitErrorConfig
	}

	// Comparing a single strategy against itself is pointless, so the
	// untouched default widens to the full set.
	selection := a.Config.Strategy
	if selection == config.DefaultStrategy {
		selection = "all"
	}
	strategies, err := orchestration.StrategiesToRun(selection)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	in := fibonacci.Input{N: a.Config.N, DetailLevel: a.Config.DetailLevel, Mode: fibonacci.Mode(a.Config.Mode)}
	if result := fibonacci.Validate(in); !result.Valid {
		err := apperrors.NewValidationError("fibonacci input", "%s", result.Error)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Comparing %d strategies for F(%d)...\n", len(strategies), a.Config.N)
	}

	a.Metrics.BuildStarted()
	results := orchestration.BuildAll(ctx, in, strategies, a.Log)
	a.Metrics.BuildFinished()
	for _, r := range results {
		a.Metrics.ObserveBuild("fibonacci", r.Trace.Len(), r.Duration, r.Err)
	}

	return orchestration.AnalyzeAgreement(results, cli.CLIResultPresenter{}, out)
}

// runTUI builds the selected trace and hands it to the interactive
// playback dashboard. The build honors the configured timeout; the
// dashboard itself only ends on user input or a signal.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	gen, err := a.newGenerator()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	buildCtx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()

	start := time.Now()
	tr, err := gen.GenerateTrace(buildCtx)
	if err != nil {
		return apperrors.HandleBuildError(err, time.Since(start), a.ErrWriter, ui.ErrorPalette{})
	}
	a.Metrics.ObserveBuild(gen.Algorithm(), tr.Len(), time.Since(start), nil)

	return tui.Run(ctx, tr, gen.Algorithm(), playback.Speed(a.Config.Speed), a.Metrics, Version)
}
