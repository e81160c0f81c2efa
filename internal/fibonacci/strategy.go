package fibonacci

import (
	"math/big"
	"math/bits"
)

// Strategy selects the numeric computation primitive used by the builder.
type Strategy string

// Available strategies. Tabulated exists purely to support inspection of
// intermediate state; it matches Iterative asymptotically but keeps the
// whole table in memory.
const (
	StrategyIterative    Strategy = "iterative"
	StrategyTabulated    Strategy = "tabulated"
	StrategyFastDoubling Strategy = "fast-doubling"
)

// IsValid reports whether s names a known strategy.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyIterative, StrategyTabulated, StrategyFastDoubling:
		return true
	}
	return false
}

// Iterative computes F(n) with two running values in O(n) time and O(1)
// auxiliary state. Results are exact arbitrary-precision integers.
func Iterative(n uint64) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	a := big.NewInt(0)
	b := big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return b
}

// Tabulated computes the full table F(0..n). It is used only when full
// visualization of intermediate values is requested; callers must keep
// n within TabulationCap, which the trace builder's configuration
// resolution guarantees.
//
// Returns:
//   - []*big.Int: The table, with table[i] == F(i).
func Tabulated(n uint64) []*big.Int {
	table := make([]*big.Int, n+1)
	table[0] = big.NewInt(0)
	if n == 0 {
		return table
	}
	table[1] = big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		table[i] = new(big.Int).Add(table[i-1], table[i-2])
	}
	return table
}

// FastDoubling computes F(n) in O(log n) big-integer multiplications
// using the doubling identities:
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k+1)² + F(k)²
//
// It scans the bits of n from the most significant down, maintaining the
// pair (F(k), F(k+1)).
func FastDoubling(n uint64) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}

	fk := big.NewInt(0)  // F(k)
	fk1 := big.NewInt(1) // F(k+1)
	t1 := new(big.Int)
	t2 := new(big.Int)

	numBits := bits.Len64(n)
	for i := numBits - 1; i >= 0; i-- {
		// F(2k) = F(k) * (2*F(k+1) - F(k))
		t1.Lsh(fk1, 1)
		t1.Sub(t1, fk)
		t1.Mul(t1, fk)

		// F(2k+1) = F(k+1)² + F(k)²
		t2.Mul(fk1, fk1)
		fk.Mul(fk, fk)
		t2.Add(t2, fk)

		fk.Set(t1)
		fk1.Set(t2)

		// If the bit is set, shift the pair to (F(2k+1), F(2k+2)).
		if (n>>uint(i))&1 == 1 {
			t1.Add(fk, fk1)
			fk.Set(fk1)
			fk1.Set(t1)
		}
	}

	return fk
}

// Compute dispatches to the named strategy and returns F(n).
// The tabulated strategy computes the table and returns its last entry.
func Compute(strategy Strategy, n uint64) *big.Int {
	switch strategy {
	case StrategyTabulated:
		table := Tabulated(n)
		return table[n]
	case StrategyFastDoubling:
		return FastDoubling(n)
	default:
		return Iterative(n)
	}
}
