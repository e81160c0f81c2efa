package fibonacci

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCrossStrategyAgreement_PropertyBased verifies that all three
// strategies compute the same value for random n. Agreement across
// independently implemented algorithms is the strongest correctness
// check available without an external oracle.
func TestCrossStrategyAgreement_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("iterative, tabulated and fast-doubling agree", prop.ForAll(
		func(n uint64) bool {
			it := Iterative(n)
			fd := FastDoubling(n)
			tab := Tabulated(n)[n]
			return it.Cmp(fd) == 0 && it.Cmp(tab) == 0
		},
		gen.UInt64Range(0, 3000),
	))

	properties.TestingRun(t)
}

// TestRecurrence_PropertyBased verifies the defining recurrence
// F(n) = F(n-1) + F(n-2) holds for the fast-doubling implementation,
// whose bit-scan structure shares nothing with the recurrence itself.
func TestRecurrence_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("fast doubling satisfies F(n) = F(n-1) + F(n-2)", prop.ForAll(
		func(n uint64) bool {
			fn := FastDoubling(n)
			fn1 := FastDoubling(n - 1)
			fn2 := FastDoubling(n - 2)
			return fn.Cmp(fn1.Add(fn1, fn2)) == 0
		},
		gen.UInt64Range(2, 5000),
	))

	properties.TestingRun(t)
}

// TestTraceInvariants_PropertyBased verifies every trace built from a
// random valid input is well-formed: non-empty, opens with init or
// base-case, ends with a terminal step, and stays under the step cap.
func TestTraceInvariants_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("generated traces are well-formed", prop.ForAll(
		func(n int, detail int, pick int) bool {
			strategies := []Strategy{StrategyIterative, StrategyTabulated, StrategyFastDoubling}
			in := Input{N: n, DetailLevel: detail, Strategy: strategies[pick]}
			if res := Validate(in); !res.Valid {
				return false
			}
			tr, err := NewBuilder(in).GenerateTrace(context.Background())
			if err != nil {
				return false
			}
			return tr.Verify() == nil && len(tr) <= StepCap
		},
		gen.IntRange(0, 5000),
		gen.IntRange(0, 100),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}
