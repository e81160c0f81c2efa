package fibonacci

// Condensed-mode sampling policies.
//
// The tabulated and iterative code paths carry independently specified
// sampling formulas with different denominators; both are preserved as
// written rather than unified. Higher detail yields finer sampling:
// detail=100 approaches full density (rate 1), detail=0 approaches
// minimal density. The formulas are isolated here so they can be
// unit-tested independently of trace generation.

// TabulatedSampleRate derives the condensed-mode stride for the
// tabulated path.
//
// Parameters:
//   - n: The Fibonacci index being traced.
//   - detail: The detail level in [0,100].
//
// Returns:
//   - int: The stride; interior index i is emitted when i%rate == 0.
func TabulatedSampleRate(n uint64, detail int) int {
	rate := int(n) * (MaxDetailLevel - detail) / 1000
	if rate < 1 {
		rate = 1
	}
	return rate
}

// IterativeSampleRate derives the condensed-mode stride for the
// iterative path. Its denominator is twice the tabulated one, yielding
// a finer default density.
func IterativeSampleRate(n uint64, detail int) int {
	rate := int(n) * (MaxDetailLevel - detail) / 2000
	if rate < 1 {
		rate = 1
	}
	return rate
}

// shouldEmit decides whether index i of an n-element run is retained
// under the given stride: the first LeadingIndices indices and the final
// index are always emitted; interior indices are emitted on the stride.
func shouldEmit(i, n uint64, rate int) bool {
	if i < LeadingIndices || i == n {
		return true
	}
	return i%uint64(rate) == 0
}
