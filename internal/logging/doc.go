// Package logging provides a unified logging interface for the trace
// engine. It abstracts the underlying logging implementation, allowing
// consistent structured logging across components while supporting
// multiple backends (zerolog, standard library, no-op).
package logging
