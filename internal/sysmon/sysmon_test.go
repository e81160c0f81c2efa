package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for _, v := range []float64{10, 20, 30, 40} {
		h.Push(v)
	}
	got := h.Values()
	want := []float64{20, 30, 40}
	if len(got) != len(want) {
		t.Fatalf("retained %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	h := NewHistory(4)
	h.Push(0)
	h.Push(100)
	line := []rune(h.Sparkline())
	if len(line) != 2 {
		t.Fatalf("sparkline length = %d, want 2", len(line))
	}
	if line[0] != '▁' || line[1] != '█' {
		t.Errorf("sparkline = %q, want lowest then highest glyph", string(line))
	}
}

func TestSparklineEmptyHistory(t *testing.T) {
	if got := NewHistory(4).Sparkline(); got != "" {
		t.Errorf("Sparkline() = %q for empty history, want empty", got)
	}
}
