package fibonacci

import (
	"context"
	"fmt"
	"math/big"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/algoviz/tracekit/internal/format"
	"github.com/algoviz/tracekit/internal/logging"
	"github.com/algoviz/tracekit/internal/trace"
)

// tracerName identifies this package's spans.
const tracerName = "tracekit/fibonacci"

// Mode is the visualization density policy, chosen from input size when
// not supplied by the caller.
type Mode string

// Available modes.
const (
	ModeFull            Mode = "full"
	ModeCondensed       Mode = "condensed"
	ModeComputationOnly Mode = "computation-only"
)

// IsValid reports whether m names a known mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeFull, ModeCondensed, ModeComputationOnly:
		return true
	}
	return false
}

// Input is the typed input object for a Fibonacci trace build.
// Mode is optional; when empty it is derived from N.
type Input struct {
	N           int      `json:"n"`
	Strategy    Strategy `json:"strategy"`
	DetailLevel int      `json:"detailLevel"`
	Mode        Mode     `json:"mode,omitempty"`
}

// Validate checks the input ranges before any computation. Callers must
// call Validate first; the builder assumes valid input and does not
// re-validate.
//
// Returns:
//   - trace.ValidationResult: Structured pass/fail with a message.
func Validate(in Input) trace.ValidationResult {
	if in.N < 0 {
		return trace.Invalid("n must be a non-negative integer, got %d", in.N)
	}
	if in.N > MaxN {
		return trace.Invalid("n must be <= %d, got %d", MaxN, in.N)
	}
	if in.DetailLevel < 0 || in.DetailLevel > MaxDetailLevel {
		return trace.Invalid("detailLevel must be in [0,%d], got %d", MaxDetailLevel, in.DetailLevel)
	}
	if in.Strategy != "" && !in.Strategy.IsValid() {
		return trace.Invalid("unknown strategy %q", in.Strategy)
	}
	if in.Mode != "" && !in.Mode.IsValid() {
		return trace.Invalid("unknown mode %q", in.Mode)
	}
	return trace.OK()
}

// Config is the resolved, effective configuration of one build. Mode and
// strategy auto-selection can silently override what the caller asked
// for; the resolution is explicit and inspectable here, and it is
// recorded in the trace's init step, so tests and consumers can assert
// on the effective strategy rather than the requested one.
type Config struct {
	N                 uint64   `json:"n"`
	Mode              Mode     `json:"mode"`
	Strategy          Strategy `json:"strategy"`
	RequestedStrategy Strategy `json:"requestedStrategy"`
	RequestedMode     Mode     `json:"requestedMode,omitempty"`
	SampleRate        int      `json:"sampleRate,omitempty"`
	Overridden        bool     `json:"overridden,omitempty"`
}

// Resolve derives the effective configuration from a validated input.
//
// Derivation rules:
//   - Mode absent: n <= 50 full, n <= 10000 condensed, else computation-only.
//   - n above TabulationCap forces computation-only and fast-doubling
//     regardless of the request (silent strategy override, not an error).
//   - Fast-doubling has no per-index state to show, so requesting it
//     resolves to computation-only.
func Resolve(in Input) Config {
	n := uint64(in.N)

	strategy := in.Strategy
	if strategy == "" {
		strategy = StrategyIterative
	}

	mode := in.Mode
	if mode == "" {
		switch {
		case n <= FullModeMax:
			mode = ModeFull
		case n <= TabulationCap:
			mode = ModeCondensed
		default:
			mode = ModeComputationOnly
		}
	}

	requested := strategy
	if n > TabulationCap || strategy == StrategyFastDoubling {
		mode = ModeComputationOnly
	}
	if mode == ModeComputationOnly {
		strategy = StrategyFastDoubling
	}

	cfg := Config{
		N:                 n,
		Mode:              mode,
		Strategy:          strategy,
		RequestedStrategy: requested,
		RequestedMode:     in.Mode,
		Overridden:        strategy != requested || (in.Mode != "" && mode != in.Mode),
	}

	switch mode {
	case ModeFull:
		cfg.SampleRate = 1
	case ModeCondensed:
		if strategy == StrategyTabulated {
			cfg.SampleRate = TabulatedSampleRate(n, in.DetailLevel)
		} else {
			cfg.SampleRate = IterativeSampleRate(n, in.DetailLevel)
		}
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

// BaseCasePayload carries a short-circuited base case value.
type BaseCasePayload struct {
	N     int   `json:"n"`
	Value int64 `json:"value"`
}

// ComputePayload shows the two addends of one recurrence application.
// In tabulated mode both addends come from the table; in iterative mode
// they are the two live running values.
type ComputePayload struct {
	Index uint64 `json:"index"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// StorePayload shows the newly produced value for one index.
type StorePayload struct {
	Index uint64 `json:"index"`
	Value string `json:"value"`
}

// ComputeStartPayload marks the start of an opaque fast computation.
type ComputeStartPayload struct {
	N        uint64   `json:"n"`
	Strategy Strategy `json:"strategy"`
}

// CompletePayload carries the final result rendered as decimal text.
type CompletePayload struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
	Digits int    `json:"digits"`
}

// StepLimitPayload reports an early stop at the trace step cap.
type StepLimitPayload struct {
	Emitted   int    `json:"emitted"`
	LastIndex uint64 `json:"lastIndex"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Trace builder
// ─────────────────────────────────────────────────────────────────────────────

// Builder records one Fibonacci run as a step trace. It is a pure
// function of its validated input: identical inputs always produce
// structurally identical traces.
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
// effective configuration immediately so it can be inspected (and
// logged) before generation runs.
func NewBuilder(in Input, opts ...BuilderOption) *Builder {
	b := &Builder{input: in, cfg: Resolve(in), log: logging.NopLogger{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Algorithm returns the display name of the algorithm.
func (b *Builder) Algorithm() string { return "fibonacci" }

// Config returns the resolved configuration for this build.
func (b *Builder) Config() Config { return b.cfg }

// GenerateTrace records one full run. The build is synchronous and
// bounded: validation already rejected inputs that could run unbounded,
// and StepCap caps the trace length as a second line of defense.
func (b *Builder) GenerateTrace(ctx context.Context) (trace.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := b.cfg
	_, span := otel.Tracer(tracerName).Start(ctx, "fibonacci.generate",
		oteltrace.WithAttributes(
			attribute.Int64("fib.n", int64(cfg.N)),
			attribute.String("fib.mode", string(cfg.Mode)),
			attribute.String("fib.strategy", string(cfg.Strategy)),
		))
	defer span.End()

	b.log.Debug("resolved fibonacci configuration",
		logging.Uint64("n", cfg.N),
		logging.String("mode", string(cfg.Mode)),
		logging.String("strategy", string(cfg.Strategy)),
		logging.String("requested", string(cfg.RequestedStrategy)),
		logging.Int("sampleRate", cfg.SampleRate),
		logging.Bool("overridden", cfg.Overridden),
	)

	var tr trace.Trace
	switch {
	case cfg.N <= 1:
		tr = b.baseCaseTrace()
	case cfg.Mode == ModeComputationOnly:
		tr = b.computationOnlyTrace()
	case cfg.Strategy == StrategyTabulated:
		tr = b.tabulatedTrace()
	default:
		tr = b.iterativeTrace()
	}

	span.SetAttributes(attribute.Int("fib.steps", len(tr)))
	b.log.Info("fibonacci trace built",
		logging.Uint64("n", cfg.N),
		logging.Int("steps", len(tr)))
	return tr, nil
}

// baseCaseTrace handles n in {0,1}: base-case then complete, nothing else.
func (b *Builder) baseCaseTrace() trace.Trace {
	value := int64(b.cfg.N)
	return trace.Trace{
		{
			Kind:          trace.KindBaseCase,
			Payload:       BaseCasePayload{N: int(b.cfg.N), Value: value},
			SourceLineRef: lineBaseCase,
			Description:   fmt.Sprintf("Base case: F(%d) = %d", b.cfg.N, value),
		},
		{
			Kind:          trace.KindComplete,
			Payload:       CompletePayload{N: b.cfg.N, Result: fmt.Sprint(value), Digits: 1},
			SourceLineRef: lineComplete,
			Description:   fmt.Sprintf("Finished: F(%d) = %d", b.cfg.N, value),
		},
	}
}

// computationOnlyTrace emits exactly one compute-start step, runs fast
// doubling, then one complete step carrying the result as text.
func (b *Builder) computationOnlyTrace() trace.Trace {
	n := b.cfg.N
	tr := trace.Trace{
		b.initStep(),
		{
			Kind:          trace.KindComputeStart,
			Payload:       ComputeStartPayload{N: n, Strategy: StrategyFastDoubling},
			SourceLineRef: lineLoop,
			Description:   fmt.Sprintf("Computing F(%d) with fast doubling (O(log n) multiplications)", n),
		},
	}
	result := FastDoubling(n)
	return append(tr, b.completeStep(result))
}

// tabulatedTrace builds the full table incrementally, emitting a compute
// and a store step for each sampled index.
func (b *Builder) tabulatedTrace() trace.Trace {
	n := b.cfg.N
	rate := b.cfg.SampleRate

	tr := trace.Trace{b.initStep()}
	table := make([]*big.Int, n+1)
	table[0] = big.NewInt(0)
	table[1] = big.NewInt(1)

	for i := uint64(2); i <= n; i++ {
		table[i] = new(big.Int).Add(table[i-1], table[i-2])
		if !shouldEmit(i, n, rate) {
			continue
		}
		if len(tr) >= StepCap-2 {
			return append(tr, b.stepLimitStep(len(tr), i))
		}
		tr = append(tr,
			trace.Step{
				Kind:          trace.KindCompute,
				Payload:       ComputePayload{Index: i, Left: table[i-1].String(), Right: table[i-2].String()},
				SourceLineRef: lineCompute,
				Description:   fmt.Sprintf("F(%d) = F(%d) + F(%d)", i, i-1, i-2),
			},
			trace.Step{
				Kind:          trace.KindStore,
				Payload:       StorePayload{Index: i, Value: table[i].String()},
				SourceLineRef: lineStore,
				Description:   fmt.Sprintf("table[%d] = %s", i, format.TruncateDecimal(table[i].String())),
			},
		)
	}

	return append(tr, b.completeStep(table[n]))
}

// iterativeTrace walks the recurrence with two live values; payloads
// carry only those, never a table.
func (b *Builder) iterativeTrace() trace.Trace {
	n := b.cfg.N
	rate := b.cfg.SampleRate

	tr := trace.Trace{b.initStep()}
	prev := big.NewInt(0)
	curr := big.NewInt(1)

	for i := uint64(2); i <= n; i++ {
		next := new(big.Int).Add(prev, curr)
		if shouldEmit(i, n, rate) {
			if len(tr) >= StepCap-2 {
				return append(tr, b.stepLimitStep(len(tr), i))
			}
			tr = append(tr,
				trace.Step{
					Kind:          trace.KindCompute,
					Payload:       ComputePayload{Index: i, Left: curr.String(), Right: prev.String()},
					SourceLineRef: lineCompute,
					Description:   fmt.Sprintf("F(%d) = F(%d) + F(%d)", i, i-1, i-2),
				},
				trace.Step{
					Kind:          trace.KindStore,
					Payload:       StorePayload{Index: i, Value: next.String()},
					SourceLineRef: lineStore,
					Description:   fmt.Sprintf("current = %s", format.TruncateDecimal(next.String())),
				},
			)
		}
		prev, curr = curr, next
	}

	return append(tr, b.completeStep(curr))
}

// initStep records the resolved configuration as the first step.
func (b *Builder) initStep() trace.Step {
	desc := fmt.Sprintf("Fibonacci F(%d): mode=%s, strategy=%s", b.cfg.N, b.cfg.Mode, b.cfg.Strategy)
	if b.cfg.Overridden {
		desc += fmt.Sprintf(" (requested %s)", b.cfg.RequestedStrategy)
	}
	return trace.Step{
		Kind:          trace.KindInit,
		Payload:       InitPayload{Config: b.cfg},
		SourceLineRef: lineInit,
		Description:   desc,
	}
}

// completeStep renders the terminal step with the decimal result.
func (b *Builder) completeStep(result *big.Int) trace.Step {
	text := result.String()
	return trace.Step{
		Kind:          trace.KindComplete,
		Payload:       CompletePayload{N: b.cfg.N, Result: text, Digits: len(text)},
		SourceLineRef: lineComplete,
		Description:   fmt.Sprintf("Finished: F(%d) = %s", b.cfg.N, format.TruncateDecimal(text)),
	}
}

// stepLimitStep terminates a trace that hit the step cap. The values
// recorded so far are final, not partial-and-continuing.
func (b *Builder) stepLimitStep(emitted int, lastIndex uint64) trace.Step {
	return trace.Step{
		Kind:          trace.KindStepLimit,
		Payload:       StepLimitPayload{Emitted: emitted, LastIndex: lastIndex},
		SourceLineRef: lineLoop,
		Description:   fmt.Sprintf("Step cap reached after %d steps at index %d", emitted, lastIndex),
	}
}
