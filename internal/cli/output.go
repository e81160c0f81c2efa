package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/algoviz/tracekit/internal/trace"
	"github.com/algoviz/tracekit/internal/ui"
)

// traceDocument is the JSON envelope written by EncodeTrace.
type traceDocument struct {
	Algorithm string      `json:"algorithm"`
	Generated time.Time   `json:"generated"`
	Steps     trace.Trace `json:"steps"`
}

// EncodeTrace writes the trace as indented JSON.
//
// Parameters:
//   - w: Destination writer.
//   - algorithm: The algorithm display name recorded in the envelope.
//   - tr: The trace to encode.
//
// Returns:
//   - error: An encoding or write error.
func EncodeTrace(w io.Writer, algorithm string, tr trace.Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(traceDocument{
		Algorithm: algorithm,
		Generated: time.Now().UTC(),
		Steps:     tr,
	})
}

// WriteTraceToFile saves the trace as JSON, creating parent directories
// as needed.
func WriteTraceToFile(path, algorithm string, tr trace.Trace) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()
	return EncodeTrace(file, algorithm, tr)
}

// DisplayTrace renders the trace as a step table. Verbose mode adds the
// payload of each step as compact JSON.
func DisplayTrace(out io.Writer, tr trace.Trace, verbose bool) {
	if len(tr) == 0 {
		return
	}
	fmt.Fprintf(out, "%s%-6s %-16s %-5s %s%s\n",
		ui.ColorBold(), "#", "Kind", "Line", "Description", ui.ColorReset())

	for i, step := range tr {
		fmt.Fprintf(out, "%-6d %s%-16s%s %-5d %s\n",
			i, kindColor(step.Kind), step.Kind, ui.ColorReset(),
			step.SourceLineRef, step.Description)
		if verbose && step.Payload != nil {
			if payload, err := json.Marshal(step.Payload); err == nil {
				fmt.Fprintf(out, "       %s%s%s\n", ui.ColorSecondary(), payload, ui.ColorReset())
			}
		}
	}
	last, _ := tr.Last()
	fmt.Fprintf(out, "\n%d steps, ending in %s%s%s\n",
		len(tr), ui.ColorPrimary(), last.Kind, ui.ColorReset())
}

// DisplayQuietTrace prints only the terminal step's description, a
// single line suitable for scripting.
func DisplayQuietTrace(out io.Writer, tr trace.Trace) {
	last, ok := tr.Last()
	if !ok {
		return
	}
	fmt.Fprintln(out, last.Description)
}

// DisplayStep renders a single step with its position in the trace,
// used by the playback prompt.
func DisplayStep(out io.Writer, step trace.Step, cursor, total int) {
	fmt.Fprintf(out, "[%s%d/%d%s] %s%-16s%s %s\n",
		ui.ColorPrimary(), cursor+1, total, ui.ColorReset(),
		kindColor(step.Kind), step.Kind, ui.ColorReset(),
		step.Description)
}

// kindColor picks the step kind's display color.
func kindColor(kind trace.StepKind) string {
	switch kind {
	case trace.KindComplete, trace.KindSolutionFound:
		return ui.ColorSuccess()
	case trace.KindNoSolution, trace.KindStepLimit:
		return ui.ColorWarning()
	case trace.KindError:
		return ui.ColorError()
	case trace.KindInit:
		return ui.ColorPrimary()
	default:
		return ui.ColorInfo()
	}
}
