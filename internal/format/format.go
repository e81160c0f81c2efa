// Package format provides display formatting helpers shared by the CLI
// and TUI surfaces: durations, byte counts, and truncated rendering of
// very large decimal numbers.
package format

import (
	"fmt"
	"time"
)

const (
	// TruncationLimit is the digit threshold from which a number is
	// truncated in output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits displayed at the
	// beginning and end of a truncated number.
	DisplayEdges = 25
)

// Duration formats a time.Duration for display. It shows microseconds
// for durations less than a millisecond, milliseconds for durations less
// than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func Duration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// TruncateDecimal renders a decimal number string for display,
// abbreviating the middle once it exceeds TruncationLimit digits.
// The returned form is "<head>...<tail> (<len> digits)".
func TruncateDecimal(s string) string {
	if len(s) <= TruncationLimit {
		return s
	}
	return fmt.Sprintf("%s...%s (%d digits)", s[:DisplayEdges], s[len(s)-DisplayEdges:], len(s))
}

// Bytes formats a byte count using binary units.
func Bytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
