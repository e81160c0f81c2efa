// Package cli renders traces, build progress and comparison results for
// the terminal, and hosts the interactive playback prompt.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.
package cli
