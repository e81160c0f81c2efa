package fibonacci

import "testing"

// TestSampleRates_DetailExtremes pins the behavior of both sampling
// policies at the ends of the detail scale: full density at 100,
// coarsest stride at 0.
func TestSampleRates_DetailExtremes(t *testing.T) {
	const n = 10000

	if got := TabulatedSampleRate(n, 100); got != 1 {
		t.Errorf("TabulatedSampleRate(%d, 100) = %d, want 1", n, got)
	}
	if got := IterativeSampleRate(n, 100); got != 1 {
		t.Errorf("IterativeSampleRate(%d, 100) = %d, want 1", n, got)
	}

	// detail=0 approaches minimal density; the two policies use
	// different denominators and must not be silently unified.
	tab0 := TabulatedSampleRate(n, 0)
	it0 := IterativeSampleRate(n, 0)
	if tab0 != n/10 {
		t.Errorf("TabulatedSampleRate(%d, 0) = %d, want %d", n, tab0, n/10)
	}
	if it0 != n/20 {
		t.Errorf("IterativeSampleRate(%d, 0) = %d, want %d", n, it0, n/20)
	}
	if tab0 == it0 {
		t.Error("policies should differ at detail=0")
	}
}

// TestSampleRates_Monotonic verifies higher detail never coarsens the
// stride.
func TestSampleRates_Monotonic(t *testing.T) {
	const n = 5000
	for detail := 1; detail <= 100; detail++ {
		if TabulatedSampleRate(n, detail) > TabulatedSampleRate(n, detail-1) {
			t.Fatalf("tabulated rate increased between detail %d and %d", detail-1, detail)
		}
		if IterativeSampleRate(n, detail) > IterativeSampleRate(n, detail-1) {
			t.Fatalf("iterative rate increased between detail %d and %d", detail-1, detail)
		}
	}
}

// TestSampleRates_NeverZero verifies the stride floor across small n.
func TestSampleRates_NeverZero(t *testing.T) {
	for n := uint64(0); n <= 100; n++ {
		for _, detail := range []int{0, 50, 100} {
			if TabulatedSampleRate(n, detail) < 1 {
				t.Fatalf("TabulatedSampleRate(%d, %d) < 1", n, detail)
			}
			if IterativeSampleRate(n, detail) < 1 {
				t.Fatalf("IterativeSampleRate(%d, %d) < 1", n, detail)
			}
		}
	}
}

// TestShouldEmit covers the leading/final/stride retention rule.
func TestShouldEmit(t *testing.T) {
	const n, rate = 1000, 100

	for i := uint64(0); i < LeadingIndices; i++ {
		if !shouldEmit(i, n, rate) {
			t.Errorf("leading index %d should be emitted", i)
		}
	}
	if !shouldEmit(n, n, rate) {
		t.Error("final index should be emitted")
	}
	if !shouldEmit(500, n, rate) {
		t.Error("index 500 on stride 100 should be emitted")
	}
	if shouldEmit(501, n, rate) {
		t.Error("index 501 off stride should not be emitted")
	}
}
