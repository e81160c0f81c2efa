package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/algoviz/tracekit/internal/format"
	"github.com/algoviz/tracekit/internal/orchestration"
	"github.com/algoviz/tracekit/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter with
// colorized tabular output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays the per-strategy comparison summary.
// Manual padding keeps columns aligned despite ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.BuildResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Strategy Comparison ---\n")

	maxNameLen := len("Strategy")
	maxDurationLen := len("Duration")
	for _, res := range results {
		if len(res.Strategy) > maxNameLen {
			maxNameLen = len(res.Strategy)
		}
		if d := formatBuildDuration(res.Duration); len(d) > maxDurationLen {
			maxDurationLen = len(d)
		}
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sSteps%s   %sStatus%s\n",
		ui.ColorBold(), ui.ColorReset(), padRight("", maxNameLen-len("Strategy")),
		ui.ColorBold(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorBold(), ui.ColorReset(),
		ui.ColorBold(), ui.ColorReset())

	for _, res := range results {
		var status string
		steps := "-"
		if res.Err != nil {
			status = fmt.Sprintf("%sfailure (%v)%s", ui.ColorError(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%sok%s", ui.ColorSuccess(), ui.ColorReset())
			steps = fmt.Sprintf("%d", len(res.Trace))
		}
		duration := formatBuildDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %-5s   %s\n",
			ui.ColorPrimary(), res.Strategy, ui.ColorReset(), padRight("", maxNameLen-len(res.Strategy)),
			ui.ColorWarning(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			steps, status)
	}
}

// PresentWinner displays the fastest successful build and its final
// value, truncated when very long.
func (CLIResultPresenter) PresentWinner(result orchestration.BuildResult, out io.Writer) {
	value, ok := orchestration.FinalValue(result.Trace)
	if !ok {
		return
	}
	fmt.Fprintf(out, "\nFastest: %s%s%s in %s%s%s\n",
		ui.ColorPrimary(), result.Strategy, ui.ColorReset(),
		ui.ColorWarning(), formatBuildDuration(result.Duration), ui.ColorReset())
	fmt.Fprintf(out, "Value:   %s%s%s\n",
		ui.ColorSuccess(), format.TruncateDecimal(value), ui.ColorReset())
}

// formatBuildDuration keeps sub-microsecond builds readable.
func formatBuildDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.Duration(d)
}

// padRight returns length spaces appended to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
