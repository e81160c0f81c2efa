// Package app ties configuration, logging, metrics and the execution
// modes (CLI build, comparison, REPL, TUI) into one runnable unit.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/algoviz/tracekit/internal/cli"
	"github.com/algoviz/tracekit/internal/config"
	apperrors "github.com/algoviz/tracekit/internal/errors"
	"github.com/algoviz/tracekit/internal/logging"
	"github.com/algoviz/tracekit/internal/metrics"
	"github.com/algoviz/tracekit/internal/playback"
	"github.com/algoviz/tracekit/internal/server"
	"github.com/algoviz/tracekit/internal/ui"
)

// Application represents one tracekit invocation.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Log       logging.Logger
	Metrics   *metrics.Metrics
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(log logging.Logger) AppOption {
	return func(a *Application) { a.Log = log }
}

// WithMetrics sets a custom metrics registry for the application.
func WithMetrics(m *metrics.Metrics) AppOption {
	return func(a *Application) { a.Metrics = m }
}

// New creates a new Application instance by parsing command-line arguments.
//
// Parameters:
//   - args: The full argument list, os.Args style (args[0] is the program name).
//   - errWriter: Destination for usage and error messages.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Metrics == nil {
		app.Metrics = metrics.New()
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	a.setupLogging()
	ui.InitTheme(false)

	if a.Config.MetricsAddr != "" {
		a.startMetricsServer(ctx)
	}

	switch {
	case a.Config.REPL:
		return a.runREPL()
	case a.Config.TUI:
		return a.runTUI(ctx, out)
	case a.Config.Compare:
		return a.runCompare(ctx, out)
	default:
		return a.runBuild(ctx, out)
	}
}

// setupLogging maps the verbosity flags onto the global zerolog level
// and installs the default logger when none was injected.
func (a *Application) setupLogging() {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if a.Log == nil {
		a.Log = logging.NewLogger(a.ErrWriter, "app")
	}
}

// startMetricsServer exposes /metrics and /healthz for the lifetime of
// the run. Serve errors are logged, never fatal: observability must not
// take the build down with it.
func (a *Application) startMetricsServer(ctx context.Context) {
	srv := server.New(a.Config.MetricsAddr, a.Metrics, a.Log)
	go func() {
		if err := srv.Start(ctx); err != nil {
			a.Log.Error("metrics server stopped", err)
		}
	}()
}

// runREPL starts the interactive playback prompt on stdin/stdout.
func (a *Application) runREPL() int {
	repl := cli.NewREPL(cli.REPLConfig{
		Timeout:      a.Config.Timeout,
		DetailLevel:  a.Config.DetailLevel,
		MaxSolutions: a.Config.MaxSolutions,
		Speed:        playback.Speed(a.Config.Speed),
	})
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
