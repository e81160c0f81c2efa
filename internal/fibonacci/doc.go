// Package fibonacci provides arbitrary-precision Fibonacci computation
// primitives (iterative, tabulated, fast-doubling) and a trace builder
// that records a run as a replayable step sequence.
//
// The builder adapts to input size: small n gets a fully visualized
// table build, mid-range n gets a sampled ("condensed") trace, and n
// beyond the tabulation cap collapses to a computation-only trace using
// fast doubling regardless of the requested strategy. The resolved
// configuration is explicit (see Resolve) and recorded in the trace's
// init step.
package fibonacci
