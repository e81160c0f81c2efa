// Package orchestration coordinates concurrent trace builds and the
// analysis of their agreement.
//
// It is the application's concurrency core: strategy comparison runs
// every requested Fibonacci strategy in parallel under an errgroup,
// collects per-strategy results, then cross-checks that all successful
// builds computed the same value. Presentation is delegated through
// small interfaces so CLI and JSON output stay out of this layer.
package orchestration
