// Package config parses the command line and environment into the
// application configuration. Priority is CLI flags, then TRACEKIT_*
// environment variables, then defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/algoviz/tracekit/internal/errors"
)

// EnvPrefix prefixes every environment variable this package reads.
const EnvPrefix = "TRACEKIT_"

// Defaults applied before flags and environment overrides.
const (
	DefaultAlgo         = "fibonacci"
	DefaultN            = 30
	DefaultDetailLevel  = 50
	DefaultStrategy     = "iterative"
	DefaultQueensN      = 8
	DefaultMaxSolutions = 10
	DefaultSpeed        = "medium"
	DefaultTimeout      = 1 * time.Minute
)

// AppConfig holds the full application configuration.
type AppConfig struct {
	// Algo selects the trace algorithm: "fibonacci" or "n-queens".
	Algo string

	// Fibonacci inputs.
	N           int
	DetailLevel int
	Strategy    string
	Mode        string
	Compare     bool

	// N-Queens inputs.
	QueensN      int
	MaxSolutions int
	QueensMode   string
	Bitmask      string // "auto", "on" or "off"

	// Playback and output.
	Speed      string
	JSON       bool
	OutputFile string
	TUI        bool
	REPL       bool

	// Runtime behavior.
	Timeout     time.Duration
	Verbose     bool
	Quiet       bool
	MetricsAddr string
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applying environment overrides for flags not set on the command line.
//
// Parameters:
//   - args: Command-line arguments, excluding the program name.
//   - output: Destination for flag usage messages.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: A ConfigError describing the first invalid setting.
func ParseConfig(args []string, output io.Writer) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet("tracekit", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, "algorithm to trace: fibonacci or n-queens")

	fs.IntVar(&cfg.N, "n", DefaultN, "Fibonacci index to trace")
	fs.IntVar(&cfg.DetailLevel, "detail", DefaultDetailLevel, "sampling detail level, 0 to 100")
	fs.StringVar(&cfg.Strategy, "strategy", DefaultStrategy, "fibonacci strategy, or a comma list / \"all\" with -compare")
	fs.StringVar(&cfg.Mode, "mode", "", "trace mode override (full, condensed, computation-only)")
	fs.BoolVar(&cfg.Compare, "compare", false, "build with every selected strategy and check agreement")

	fs.IntVar(&cfg.QueensN, "queens-n", DefaultQueensN, "N-Queens board size")
	fs.IntVar(&cfg.MaxSolutions, "max-solutions", DefaultMaxSolutions, "stop the search after this many solutions")
	fs.StringVar(&cfg.QueensMode, "queens-mode", "", "trace mode override (full, sampling, fast-solve)")
	fs.StringVar(&cfg.Bitmask, "bitmask", "auto", "bitmask safety checks: auto, on or off")

	fs.StringVar(&cfg.Speed, "speed", DefaultSpeed, "playback speed: slow, medium or fast")
	fs.BoolVar(&cfg.JSON, "json", false, "emit the trace as JSON instead of a table")
	fs.StringVar(&cfg.OutputFile, "output", "", "write the trace to this file")
	fs.StringVar(&cfg.OutputFile, "o", "", "shorthand for -output")
	fs.BoolVar(&cfg.TUI, "tui", false, "open the interactive playback dashboard")
	fs.BoolVar(&cfg.REPL, "repl", false, "open the playback command prompt")

	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "overall build timeout")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose logging")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "verbose logging")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "suppress progress output")
	fs.BoolVar(&cfg.Quiet, "q", false, "shorthand for -quiet")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (empty disables)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate rejects settings no builder could accept. Range checks on
// algorithm inputs stay with the builders' own validation.
func (c AppConfig) validate() error {
	switch c.Algo {
	case "fibonacci", "n-queens":
	default:
		return apperrors.NewConfigError("unknown algorithm %q (want fibonacci or n-queens)", c.Algo)
	}
	switch c.Speed {
	case "slow", "medium", "fast":
	default:
		return apperrors.NewConfigError("unknown speed %q (want slow, medium or fast)", c.Speed)
	}
	switch c.Bitmask {
	case "auto", "on", "off":
	default:
		return apperrors.NewConfigError("unknown bitmask setting %q (want auto, on or off)", c.Bitmask)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.TUI && c.REPL {
		return apperrors.NewConfigError("-tui and -repl are mutually exclusive")
	}
	return nil
}

// UseBitmask translates the tri-state bitmask flag into the builder's
// optional override: nil means automatic selection.
func (c AppConfig) UseBitmask() *bool {
	switch c.Bitmask {
	case "on":
		v := true
		return &v
	case "off":
		v := false
		return &v
	}
	return nil
}

// String renders the effective configuration for verbose logging.
func (c AppConfig) String() string {
	if c.Algo == "n-queens" {
		return fmt.Sprintf("algo=%s n=%d maxSolutions=%d bitmask=%s speed=%s",
			c.Algo, c.QueensN, c.MaxSolutions, c.Bitmask, c.Speed)
	}
	return fmt.Sprintf("algo=%s n=%d detail=%d strategy=%s speed=%s",
		c.Algo, c.N, c.DetailLevel, c.Strategy, c.Speed)
}
