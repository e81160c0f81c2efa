package orchestration

import (
	"strings"

	apperrors "github.com/algoviz/tracekit/internal/errors"
	"github.com/algoviz/tracekit/internal/fibonacci"
)

// AllStrategies is the comparison order used when every strategy is
// requested: fixed, so runs stay reproducible.
var AllStrategies = []fibonacci.Strategy{
	fibonacci.StrategyIterative,
	fibonacci.StrategyTabulated,
	fibonacci.StrategyFastDoubling,
}

// StrategiesToRun resolves a strategy selection string into the
// strategies to build. "all" selects every known strategy; otherwise
// the value is a comma-separated list of strategy names.
//
// Parameters:
//   - selection: "all" or a comma-separated strategy list.
//
// Returns:
//   - []fibonacci.Strategy: The strategies to run, in request order.
//   - error: A ConfigError naming the first unknown strategy.
func StrategiesToRun(selection string) ([]fibonacci.Strategy, error) {
	if selection == "" || selection == "all" {
		return AllStrategies, nil
	}

	parts := strings.Split(selection, ",")
	strategies := make([]fibonacci.Strategy, 0, len(parts))
	seen := make(map[fibonacci.Strategy]bool, len(parts))
	for _, part := range parts {
		s := fibonacci.Strategy(strings.TrimSpace(part))
		if !s.IsValid() {
			return nil, apperrors.NewConfigError("unknown strategy %q", part)
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		strategies = append(strategies, s)
	}
	return strategies, nil
}
