package queens

// ─────────────────────────────────────────────────────────────────────────────
// Board Size and Search Budget Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MinN is the smallest accepted board size.
	MinN = 1
	// MaxN is the hard safety cap on board size, independent of mode.
	// It also sizes the diagonal mask offset so "\"-diagonal indices
	// (row-col) stay non-negative.
	MaxN = 20
	// MaxSolutionsLimit is the upper bound on requested solutions.
	MaxSolutionsLimit = 100
)

// Step ceilings per mode. Exceeding the ceiling aborts the search early;
// solutions found so far are reported as final, not partial-and-continuing.
const (
	CeilingFull      = 100_000
	CeilingSampling  = 50_000
	CeilingFastSolve = 10_000
)

// Variant selects the conflict-check implementation.
type Variant string

// Available variants. The bitmask variant reduces the safety check to
// O(1) bit tests against three bit-sets (columns, "/"-diagonals,
// "\"-diagonals); the traditional variant compares against all placed
// rows, O(row) per check, but can report per-column safety checks.
const (
	VariantTraditional Variant = "traditional"
	VariantBitmask     Variant = "bitmask"
)

// Callbacks receives search events as they happen. Any field may be nil.
// Board snapshots passed to callbacks are copies; the solver never hands
// out its internal state (copy-on-emit keeps step payloads correct
// without deep-copying on every mutation).
type Callbacks struct {
	// TryRow fires when the search enters a row.
	TryRow func(row int)
	// TryCol fires for each column attempt within a row.
	TryCol func(row, col int)
	// CheckSafe fires after a safety check (traditional variant only).
	CheckSafe func(row, col int, safe bool)
	// Place fires when a queen is placed; board holds columns for rows 0..row.
	Place func(row, col int, board []int)
	// Backtrack fires when a placement is undone; board holds rows 0..row-1.
	Backtrack func(row, col int, board []int)
	// Solution fires when a full placement is reached; count is the
	// running solution counter starting at 1.
	Solution func(count int, board []int)
}

// Options configures a search.
type Options struct {
	// N is the board size.
	N int
	// MaxSolutions stops the search once this many placements are found.
	MaxSolutions int
	// Variant selects the conflict-check implementation.
	Variant Variant
	// StepCeiling bounds the number of column attempts. Zero means
	// CeilingFull.
	StepCeiling int
}

// Result is the outcome of one search.
type Result struct {
	// Solutions holds up to MaxSolutions boards, each a column-per-row slice.
	Solutions [][]int
	// Steps is the number of column attempts consumed.
	Steps int
	// LimitHit reports whether the step ceiling aborted the search.
	LimitHit bool
}

// search carries the mutable state of one solve. The board is a single
// column-per-row slice owned by the search; callbacks only ever see
// copies of it.
type search struct {
	n        int
	max      int
	ceiling  int
	variant  Variant
	cb       Callbacks
	board    []int
	cols     uint64 // occupied columns
	diagUp   uint64 // occupied "/"-diagonals, indexed by row+col
	diagDown uint64 // occupied "\"-diagonals, indexed by row-col+MaxN
	result   Result
}

// Solve runs a depth-first backtracking search for up to MaxSolutions
// placements of N non-attacking queens, row by row, columns in ascending
// order. N in {2,3} provably has no solutions and returns immediately
// without searching.
//
// Parameters:
//   - opts: Search configuration.
//   - cb: Event callbacks (any field may be nil).
//
// Returns:
//   - Result: Solutions found, steps consumed, and whether the ceiling hit.
func Solve(opts Options, cb Callbacks) Result {
	if opts.N == 2 || opts.N == 3 {
		return Result{}
	}

	ceiling := opts.StepCeiling
	if ceiling <= 0 {
		ceiling = CeilingFull
	}
	s := &search{
		n:       opts.N,
		max:     opts.MaxSolutions,
		ceiling: ceiling,
		variant: opts.Variant,
		cb:      cb,
		board:   make([]int, opts.N),
	}
	s.place(0)
	return s.result
}

// place tries every column of row in ascending order. It returns true
// when the search should stop (enough solutions, or ceiling hit).
func (s *search) place(row int) bool {
	if s.cb.TryRow != nil {
		s.cb.TryRow(row)
	}

	if row == s.n {
		s.result.Solutions = append(s.result.Solutions, s.snapshot(s.n))
		if s.cb.Solution != nil {
			s.cb.Solution(len(s.result.Solutions), s.snapshot(s.n))
		}
		return len(s.result.Solutions) >= s.max
	}

	for col := 0; col < s.n; col++ {
		s.result.Steps++
		if s.result.Steps > s.ceiling {
			s.result.LimitHit = true
			return true
		}
		if s.cb.TryCol != nil {
			s.cb.TryCol(row, col)
		}

		var safe bool
		if s.variant == VariantBitmask {
			safe = s.safeBitmask(row, col)
		} else {
			safe = s.safeTraditional(row, col)
			if s.cb.CheckSafe != nil {
				s.cb.CheckSafe(row, col, safe)
			}
		}
		if !safe {
			continue
		}

		s.set(row, col)
		if s.cb.Place != nil {
			s.cb.Place(row, col, s.snapshot(row+1))
		}
		if s.place(row + 1) {
			return true
		}
		s.unset(row, col)
		if s.cb.Backtrack != nil {
			s.cb.Backtrack(row, col, s.snapshot(row))
		}
	}

	return false
}

// safeTraditional checks col against every previously placed row by
// direct comparison of columns and both diagonals.
func (s *search) safeTraditional(row, col int) bool {
	for r := 0; r < row; r++ {
		c := s.board[r]
		if c == col || r+c == row+col || r-c == row-col {
			return false
		}
	}
	return true
}

// safeBitmask checks the three occupancy masks.
func (s *search) safeBitmask(row, col int) bool {
	return s.cols&(1<<uint(col)) == 0 &&
		s.diagUp&(1<<uint(row+col)) == 0 &&
		s.diagDown&(1<<uint(row-col+MaxN)) == 0
}

// set records a placement in the board and all three masks. The masks
// are maintained in both variants so switching variants cannot desync
// the state.
func (s *search) set(row, col int) {
	s.board[row] = col
	s.cols |= 1 << uint(col)
	s.diagUp |= 1 << uint(row+col)
	s.diagDown |= 1 << uint(row-col+MaxN)
}

// unset removes a placement.
func (s *search) unset(row, col int) {
	s.cols &^= 1 << uint(col)
	s.diagUp &^= 1 << uint(row+col)
	s.diagDown &^= 1 << uint(row-col+MaxN)
}

// snapshot copies the first rows entries of the board.
func (s *search) snapshot(rows int) []int {
	out := make([]int, rows)
	copy(out, s.board[:rows])
	return out
}
