package queens

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/algoviz/tracekit/internal/logging"
	"github.com/algoviz/tracekit/internal/trace"
)

// tracerName identifies this package's spans.
const tracerName = "tracekit/queens"

// Mode is the visualization density policy, chosen from board size when
// not supplied by the caller.
type Mode string

// Available modes.
const (
	ModeFull      Mode = "full"
	ModeSampling  Mode = "sampling"
	ModeFastSolve Mode = "fast-solve"
)

// IsValid reports whether m names a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeFull, ModeSampling, ModeFastSolve:
		return true
	}
	return false
}

// Mode derivation thresholds.
const (
	fullModeMax     = 12 // n <= 12 derives full (traditional, unsampled)
	samplingModeMax = 16 // 12 < n <= 16 derives sampling; above, fast-solve
)

// Input is the typed input object for an N-Queens trace build.
// Mode is optional; when empty it is derived from N. UseBitmask, when
// non-nil, overrides the automatic variant selection.
type Input struct {
	N            int   `json:"n"`
	MaxSolutions int   `json:"maxSolutions"`
	Mode         Mode  `json:"mode,omitempty"`
	UseBitmask   *bool `json:"useBitmask,omitempty"`
}

// Validate checks the input ranges before any computation. Callers must
// call Validate first; the builder assumes valid input.
func Validate(in Input) trace.ValidationResult {
	if in.N < MinN {
		return trace.Invalid("n must be >= %d, got %d", MinN, in.N)
	}
	if in.N > MaxN {
		return trace.Invalid("n must be <= %d, got %d", MaxN, in.N)
	}
	if in.MaxSolutions < 1 || in.MaxSolutions > MaxSolutionsLimit {
		return trace.Invalid("maxSolutions must be in [1,%d], got %d", MaxSolutionsLimit, in.MaxSolutions)
	}
	if in.Mode != "" && !in.Mode.IsValid() {
		return trace.Invalid("unknown mode %q", in.Mode)
	}
	return trace.OK()
}

// SamplingInterval derives the stride at which row-level steps are
// retained in non-full modes. Isolated so it can be unit-tested apart
// from trace generation.
func SamplingInterval(n int) int {
	interval := n / 4
	if interval < 1 {
		interval = 1
	}
	return interval
}

// Config is the resolved, effective configuration of one build,
// recorded in the trace's init step so consumers can assert on the
// effective variant rather than the requested one.
type Config struct {
	N                int     `json:"n"`
	MaxSolutions     int     `json:"maxSolutions"`
	Mode             Mode    `json:"mode"`
	Variant          Variant `json:"variant"`
	SamplingInterval int     `json:"samplingInterval,omitempty"`
	StepCeiling      int     `json:"stepCeiling"`
}

// Resolve derives the effective configuration from a validated input.
//
// Derivation rules:
//   - Mode absent: n <= 12 full, n <= 16 sampling, else fast-solve.
//   - Bitmask auto-enables for n > 12 unless UseBitmask overrides.
//   - Step ceiling follows the mode: 100k full, 50k sampling, 10k fast-solve.
func Resolve(in Input) Config {
	mode := in.Mode
	if mode == "" {
		switch {
		case in.N <= fullModeMax:
			mode = ModeFull
		case in.N <= samplingModeMax:
			mode = ModeSampling
		default:
			mode = ModeFastSolve
		}
	}

	variant := VariantTraditional
	if in.N > fullModeMax {
		variant = VariantBitmask
	}
	if in.UseBitmask != nil {
		if *in.UseBitmask {
			variant = VariantBitmask
		} else {
			variant = VariantTraditional
		}
	}

	cfg := Config{
		N:            in.N,
		MaxSolutions: in.MaxSolutions,
		Mode:         mode,
		Variant:      variant,
	}
	switch mode {
	case ModeFull:
		cfg.StepCeiling = CeilingFull
	case ModeSampling:
		cfg.StepCeiling = CeilingSampling
		cfg.SamplingInterval = SamplingInterval(in.N)
	case ModeFastSolve:
		cfg.StepCeiling = CeilingFastSolve
		cfg.SamplingInterval = SamplingInterval(in.N)
	}
	return cfg
}

// ─────────────────────────────────────────────────────────────────────────────
// Step payloads (stable wire shapes)
// ─────────────────────────────────────────────────────────────────────────────

// InitPayload carries the resolved configuration in the init step.
type InitPayload struct {
	Config Config `json:"config"`
}

// TryRowPayload marks the search entering a row.
type TryRowPayload struct {
	Row int `json:"row"`
}

// TryColPayload marks a column attempt.
type TryColPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CheckSafePayload reports a traditional-variant safety check.
type CheckSafePayload struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Safe bool `json:"safe"`
}

// PlacePayload carries a placement and the board snapshot after it.
type PlacePayload struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Board []int `json:"board"`
}

// BacktrackPayload carries an undone placement and the board after removal.
type BacktrackPayload struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Board []int `json:"board"`
}

// SolutionPayload carries a complete placement and the running counter.
type SolutionPayload struct {
	Count int   `json:"count"`
	Board []int `json:"board"`
}

// CompletePayload summarizes a finished search.
type CompletePayload struct {
	SolutionsFound int `json:"solutionsFound"`
	Steps          int `json:"steps"`
}

// NoSolutionPayload reports a search that found nothing.
type NoSolutionPayload struct {
	N     int `json:"n"`
	Steps int `json:"steps"`
}

// StepLimitPayload reports an early stop at the search step ceiling.
type StepLimitPayload struct {
	Steps          int `json:"steps"`
	SolutionsFound int `json:"solutionsFound"`
}

// Pseudocode line references for emitted steps.
const (
	lineInit      = 1
	lineTryRow    = 2
	lineTryCol    = 3
	lineCheckSafe = 4
	linePlace     = 5
	lineBacktrack = 7
	lineSolution  = 8
	lineComplete  = 9
)

// ─────────────────────────────────────────────────────────────────────────────
// Trace builder
// ─────────────────────────────────────────────────────────────────────────────

// Builder records one N-Queens search as a step trace. The fixed search
// order and resolved sampling interval make the trace a pure function of
// its validated input.
type Builder struct {
	input Input
	cfg   Config
	log   logging.Logger
}

// Verify interface compliance.
var _ trace.Generator = (*Builder)(nil)

// BuilderOption configures a Builder during construction.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for resolution and lifecycle events.
func WithLogger(log logging.Logger) BuilderOption {
	return func(b *Builder) { b.log = log }
}

// NewBuilder creates a Builder for a validated input and resolves its
// effective configuration immediately.
func NewBuilder(in Input, opts ...BuilderOption) *Builder {
	b := &Builder{input: in, cfg: Resolve(in), log: logging.NopLogger{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Algorithm returns the display name of the algorithm.
func (b *Builder) Algorithm() string { return "n-queens" }

// Config returns the resolved configuration for this build.
func (b *Builder) Config() Config { return b.cfg }

// emitRow decides whether row-level steps for this row are retained:
// full mode keeps everything, otherwise the first row, the last row and
// rows on the sampling interval.
func (b *Builder) emitRow(row int) bool {
	if b.cfg.Mode == ModeFull {
		return true
	}
	return row == 0 || row == b.cfg.N-1 || row%b.cfg.SamplingInterval == 0
}

// emitCol applies the same quarter-interval rule to column-level steps
// in the traditional path.
func (b *Builder) emitCol(col int) bool {
	if b.cfg.Mode == ModeFull {
		return true
	}
	return col == 0 || col == b.cfg.N-1 || col%b.cfg.SamplingInterval == 0
}

// GenerateTrace records one full search.
func (b *Builder) GenerateTrace(ctx context.Context) (trace.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := b.cfg
	_, span := otel.Tracer(tracerName).Start(ctx, "queens.generate",
		oteltrace.WithAttributes(
			attribute.Int("queens.n", cfg.N),
			attribute.String("queens.mode", string(cfg.Mode)),
			attribute.String("queens.variant", string(cfg.Variant)),
		))
	defer span.End()

	b.log.Debug("resolved n-queens configuration",
		logging.Int("n", cfg.N),
		logging.String("mode", string(cfg.Mode)),
		logging.String("variant", string(cfg.Variant)),
		logging.Int("samplingInterval", cfg.SamplingInterval),
		logging.Int("stepCeiling", cfg.StepCeiling),
	)

	tr := trace.Trace{{
		Kind:          trace.KindInit,
		Payload:       InitPayload{Config: cfg},
		SourceLineRef: lineInit,
		Description: fmt.Sprintf("N-Queens on a %dx%d board: mode=%s, variant=%s, up to %d solutions",
			cfg.N, cfg.N, cfg.Mode, cfg.Variant, cfg.MaxSolutions),
	}}

	result := Solve(Options{
		N:            cfg.N,
		MaxSolutions: cfg.MaxSolutions,
		Variant:      cfg.Variant,
		StepCeiling:  cfg.StepCeiling,
	}, b.callbacks(&tr))

	tr = append(tr, b.terminalStep(result))

	span.SetAttributes(
		attribute.Int("queens.steps", len(tr)),
		attribute.Int("queens.solutions", len(result.Solutions)),
	)
	b.log.Info("n-queens trace built",
		logging.Int("n", cfg.N),
		logging.Int("steps", len(tr)),
		logging.Int("solutions", len(result.Solutions)),
		logging.Bool("limitHit", result.LimitHit))
	return tr, nil
}

// callbacks wires sampled step recording into the solver events.
// Solution steps are always recorded; everything else obeys the
// row/column sampling rules.
func (b *Builder) callbacks(tr *trace.Trace) Callbacks {
	cb := Callbacks{
		TryRow: func(row int) {
			if row >= b.cfg.N || !b.emitRow(row) {
				return
			}
			*tr = append(*tr, trace.Step{
				Kind:          trace.KindTryRow,
				Payload:       TryRowPayload{Row: row},
				SourceLineRef: lineTryRow,
				Description:   fmt.Sprintf("Entering row %d", row),
			})
		},
		Place: func(row, col int, board []int) {
			if !b.emitRow(row) {
				return
			}
			*tr = append(*tr, trace.Step{
				Kind:          trace.KindPlaceQueen,
				Payload:       PlacePayload{Row: row, Col: col, Board: board},
				SourceLineRef: linePlace,
				Description:   fmt.Sprintf("Placed queen at row %d, column %d", row, col),
			})
		},
		Backtrack: func(row, col int, board []int) {
			if !b.emitRow(row) {
				return
			}
			*tr = append(*tr, trace.Step{
				Kind:          trace.KindBacktrack,
				Payload:       BacktrackPayload{Row: row, Col: col, Board: board},
				SourceLineRef: lineBacktrack,
				Description:   fmt.Sprintf("Backtracking from row %d, column %d", row, col),
			})
		},
		Solution: func(count int, board []int) {
			*tr = append(*tr, trace.Step{
				Kind:          trace.KindSolutionFound,
				Payload:       SolutionPayload{Count: count, Board: board},
				SourceLineRef: lineSolution,
				Description:   fmt.Sprintf("Solution #%d found", count),
			})
		},
	}

	// Column-level events carry meaning only in the traditional path;
	// the bitmask variant has no per-column scan worth showing.
	if b.cfg.Variant == VariantTraditional {
		cb.TryCol = func(row, col int) {
			if !b.emitRow(row) || !b.emitCol(col) {
				return
			}
			*tr = append(*tr, trace.Step{
				Kind:          trace.KindTryCol,
				Payload:       TryColPayload{Row: row, Col: col},
				SourceLineRef: lineTryCol,
				Description:   fmt.Sprintf("Trying column %d in row %d", col, row),
			})
		}
		cb.CheckSafe = func(row, col int, safe bool) {
			if !b.emitRow(row) || !b.emitCol(col) {
				return
			}
			verdict := "safe"
			if !safe {
				verdict = "attacked"
			}
			*tr = append(*tr, trace.Step{
				Kind:          trace.KindCheckSafe,
				Payload:       CheckSafePayload{Row: row, Col: col, Safe: safe},
				SourceLineRef: lineCheckSafe,
				Description:   fmt.Sprintf("Square (%d,%d) is %s", row, col, verdict),
			})
		}
	}

	return cb
}

// terminalStep picks the terminal step for a finished search: the step
// ceiling takes precedence, then the empty result set, then success.
func (b *Builder) terminalStep(result Result) trace.Step {
	switch {
	case result.LimitHit:
		return trace.Step{
			Kind:          trace.KindStepLimit,
			Payload:       StepLimitPayload{Steps: result.Steps, SolutionsFound: len(result.Solutions)},
			SourceLineRef: lineComplete,
			Description: fmt.Sprintf("Search ceiling (%d) reached; %d solution(s) found are final",
				b.cfg.StepCeiling, len(result.Solutions)),
		}
	case len(result.Solutions) == 0:
		return trace.Step{
			Kind:          trace.KindNoSolution,
			Payload:       NoSolutionPayload{N: b.cfg.N, Steps: result.Steps},
			SourceLineRef: lineComplete,
			Description:   fmt.Sprintf("No solution exists for n=%d", b.cfg.N),
		}
	default:
		return trace.Step{
			Kind:          trace.KindComplete,
			Payload:       CompletePayload{SolutionsFound: len(result.Solutions), Steps: result.Steps},
			SourceLineRef: lineComplete,
			Description: fmt.Sprintf("Search complete: %d solution(s) in %d steps",
				len(result.Solutions), result.Steps),
		}
	}
}
