// Package queens provides an N-Queens backtracking solver (traditional
// column scan and bitmask-accelerated variants) and a trace builder that
// records the search as a replayable step sequence with size-dependent
// sampling.
//
// The search order is fixed (ascending column at every row, row-major
// descent), so the same input always yields the same trace. Mode,
// solver variant and sampling interval are resolved from input size and
// recorded in the trace's init step.
package queens
