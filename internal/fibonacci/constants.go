package fibonacci

// ─────────────────────────────────────────────────────────────────────────────
// Visualization Mode and Safety Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// These constants bound trace generation so a single build can never
// materialize an unbounded table or an unbounded trace, regardless of
// the caller's requested strategy or detail level.

const (
	// MaxN is the largest index accepted by input validation. Above this,
	// the build is rejected up front rather than aborted mid-flight.
	MaxN = 1_000_000

	// TabulationCap is the hard array-size cap governing whether a full
	// value table may be materialized at all. Above it, the builder
	// forces computation-only mode and the fast-doubling strategy even
	// if the caller asked for something else.
	TabulationCap = 10_000

	// FullModeMax is the largest n that derives the full visualization
	// mode when no mode is supplied.
	FullModeMax = 50

	// MaxDetailLevel is the upper bound of the detail level scale.
	MaxDetailLevel = 100

	// LeadingIndices is the number of initial table indices always
	// emitted in condensed mode, regardless of the sampling rate.
	LeadingIndices = 10

	// StepCap bounds the total trace length. Full mode at the tabulation
	// cap emits two steps per index plus bookkeeping, so the cap sits
	// above 2*TabulationCap with headroom.
	StepCap = 25_000
)

// Pseudocode line references for emitted steps. These index into the
// algorithm listing a renderer displays next to the animation.
const (
	lineInit     = 1
	lineBaseCase = 2
	lineLoop     = 3
	lineCompute  = 4
	lineStore    = 5
	lineComplete = 6
)
