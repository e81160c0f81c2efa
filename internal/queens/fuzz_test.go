package queens

import (
	"fmt"
	"reflect"
	"testing"
)

// checkPlacement verifies that a board is a complete non-attacking
// placement, independently of either safety-check implementation.
func checkPlacement(board []int) error {
	n := len(board)
	for r := 0; r < n; r++ {
		if board[r] < 0 || board[r] >= n {
			return fmt.Errorf("row %d has column %d out of range", r, board[r])
		}
		for q := 0; q < r; q++ {
			c, pc := board[r], board[q]
			if c == pc {
				return fmt.Errorf("rows %d and %d share column %d", q, r, c)
			}
			if r+c == q+pc || r-c == q-pc {
				return fmt.Errorf("rows %d and %d share a diagonal", q, r)
			}
		}
	}
	return nil
}

// FuzzVariantAgreement cross-checks the bitmask fast path against the
// traditional safety check: both must find the same solutions in the
// same order for any board size and solution cap.
func FuzzVariantAgreement(f *testing.F) {
	f.Add(4, 2)
	f.Add(8, 92)
	f.Add(1, 1)
	f.Add(10, 5)

	f.Fuzz(func(t *testing.T, n, maxSolutions int) {
		if n < MinN || n > 10 {
			t.Skip("board size outside the exhaustively checkable range")
		}
		if maxSolutions < 1 || maxSolutions > MaxSolutionsLimit {
			t.Skip("solution cap out of range")
		}

		opts := Options{N: n, MaxSolutions: maxSolutions}

		opts.Variant = VariantTraditional
		ref := Solve(opts, Callbacks{})

		opts.Variant = VariantBitmask
		fast := Solve(opts, Callbacks{})

		if !reflect.DeepEqual(ref.Solutions, fast.Solutions) {
			t.Errorf("variant mismatch for n=%d max=%d:\ntraditional: %v\nbitmask:     %v",
				n, maxSolutions, ref.Solutions, fast.Solutions)
		}
		if ref.Steps != fast.Steps {
			t.Errorf("step count mismatch for n=%d max=%d: traditional=%d bitmask=%d",
				n, maxSolutions, ref.Steps, fast.Steps)
		}
		for i, board := range fast.Solutions {
			if err := checkPlacement(board); err != nil {
				t.Errorf("solution %d invalid: %v", i, err)
			}
		}
	})
}
