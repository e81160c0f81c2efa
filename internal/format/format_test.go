package format

import (
	"strings"
	"testing"
	"time"
)

// TestDuration verifies the human-readable duration tiers.
func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"microseconds", 450 * time.Microsecond, "450µs"},
		{"milliseconds", 320 * time.Millisecond, "320ms"},
		{"seconds", 2 * time.Second, "2s"},
		{"sub-microsecond", 900 * time.Nanosecond, "0µs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Duration(tt.d); got != tt.want {
				t.Errorf("Duration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

// TestTruncateDecimal verifies short numbers pass through and long ones
// are abbreviated with both edges and the digit count preserved.
func TestTruncateDecimal(t *testing.T) {
	short := "12586269025"
	if got := TruncateDecimal(short); got != short {
		t.Errorf("short number should pass through, got %q", got)
	}

	long := strings.Repeat("9", 250)
	got := TruncateDecimal(long)
	if !strings.HasPrefix(got, strings.Repeat("9", DisplayEdges)+"...") {
		t.Errorf("truncated form missing head: %q", got)
	}
	if !strings.Contains(got, "(250 digits)") {
		t.Errorf("truncated form missing digit count: %q", got)
	}
}

// TestBytes verifies binary unit formatting.
func TestBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := Bytes(tt.n); got != tt.want {
			t.Errorf("Bytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
