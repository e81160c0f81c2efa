package trace

import (
	"context"
	"fmt"
)

// StepKind identifies the type of a recorded step. Each algorithm emits
// kinds from a small closed subset of this set.
type StepKind string

// Step kinds shared across algorithms.
const (
	// KindInit is the first step of every trace and carries the resolved
	// configuration (effective mode, strategy/variant, sampling rate).
	KindInit StepKind = "init"
	// KindComplete is the terminal step of a successful run.
	KindComplete StepKind = "complete"
	// KindNoSolution is the terminal step of a run that finished with an
	// empty result set. It is a normal outcome, not an error.
	KindNoSolution StepKind = "no-solution"
	// KindStepLimit is the terminal step of a run aborted by the
	// per-algorithm safety ceiling. Results found so far are final.
	KindStepLimit StepKind = "step-limit"
	// KindError records an internal failure surfaced through the trace.
	KindError StepKind = "error"
)

// Step kinds emitted by the Fibonacci builder.
const (
	KindBaseCase     StepKind = "base-case"
	KindComputeStart StepKind = "compute-start"
	KindCompute      StepKind = "compute"
	KindStore        StepKind = "store"
)

// Step kinds emitted by the N-Queens builder.
const (
	KindTryRow        StepKind = "try-row"
	KindTryCol        StepKind = "try-col"
	KindCheckSafe     StepKind = "check-safe"
	KindPlaceQueen    StepKind = "place-queen"
	KindBacktrack     StepKind = "backtrack"
	KindSolutionFound StepKind = "solution-found"
)

// Step is one immutable recorded event in a trace.
//
// Payload must be JSON-serializable; builders use small exported structs
// so the wire shape stays stable. SourceLineRef points into the
// pseudocode listing displayed next to the animation.
type Step struct {
	Kind          StepKind `json:"kind"`
	Payload       any      `json:"payload"`
	SourceLineRef int      `json:"sourceLineRef"`
	Description   string   `json:"description"`
}

// Trace is an ordered, finite sequence of Steps produced by exactly one
// builder invocation. A well-formed trace is non-empty and ends with a
// terminal step (complete, no-solution or step-limit).
type Trace []Step

// Len returns the number of steps in the trace.
func (t Trace) Len() int { return len(t) }

// Last returns the final step of the trace and true, or a zero Step and
// false for an empty trace.
func (t Trace) Last() (Step, bool) {
	if len(t) == 0 {
		return Step{}, false
	}
	return t[len(t)-1], true
}

// IsTerminal reports whether kind is one of the terminal step kinds.
func IsTerminal(kind StepKind) bool {
	switch kind {
	case KindComplete, KindNoSolution, KindStepLimit:
		return true
	}
	return false
}

// Verify checks the structural invariants every builder must uphold:
// the trace is non-empty, begins with an init or base-case step, and
// ends with a terminal step.
//
// Returns:
//   - error: A description of the first violated invariant, or nil.
func (t Trace) Verify() error {
	if len(t) == 0 {
		return fmt.Errorf("trace is empty")
	}
	switch t[0].Kind {
	case KindInit, KindBaseCase:
	default:
		return fmt.Errorf("trace starts with %q, want %q or %q", t[0].Kind, KindInit, KindBaseCase)
	}
	if last := t[len(t)-1]; !IsTerminal(last.Kind) {
		return fmt.Errorf("trace ends with non-terminal step %q", last.Kind)
	}
	return nil
}

// ValidationResult is the structured outcome of input validation.
// Validation failures are returned as values, never thrown, so a caller
// can render a user-facing message before any computation starts.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// OK returns a passing validation result.
func OK() ValidationResult { return ValidationResult{Valid: true} }

// Invalid returns a failing validation result with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
func Invalid(format string, a ...any) ValidationResult {
	return ValidationResult{Valid: false, Error: fmt.Sprintf(format, a...)}
}

// Generator is a trace builder bound to one validated input object.
// Implementations run synchronously to completion; the returned trace is
// read-only once built.
type Generator interface {
	// Algorithm returns the display name of the algorithm.
	Algorithm() string
	// GenerateTrace records one full run and returns the trace.
	GenerateTrace(ctx context.Context) (Trace, error)
}
