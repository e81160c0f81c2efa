// Package ui holds the terminal color themes shared by the CLI and the
// TUI dashboard.
package ui
