package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/algoviz/tracekit/internal/trace"
	"github.com/algoviz/tracekit/internal/ui"
)

func silenceColors(t *testing.T) {
	t.Helper()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(ui.DarkTheme) })
}

func sampleTrace() trace.Trace {
	return trace.Trace{
		{Kind: trace.KindInit, SourceLineRef: 1, Description: "Starting"},
		{Kind: trace.KindCompute, SourceLineRef: 4, Description: "F(2) = F(1) + F(0)",
			Payload: map[string]int{"index": 2}},
		{Kind: trace.KindComplete, SourceLineRef: 6, Description: "Done"},
	}
}

func TestDisplayTrace(t *testing.T) {
	silenceColors(t)

	var out bytes.Buffer
	DisplayTrace(&out, sampleTrace(), false)
	got := out.String()

	for _, want := range []string{"init", "compute", "complete", "F(2) = F(1) + F(0)", "3 steps"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, `"index"`) {
		t.Error("payload rendered without verbose mode")
	}
}

func TestDisplayTraceVerbose(t *testing.T) {
	silenceColors(t)

	var out bytes.Buffer
	DisplayTrace(&out, sampleTrace(), true)
	if !strings.Contains(out.String(), `{"index":2}`) {
		t.Errorf("verbose output missing payload JSON:\n%s", out.String())
	}
}

func TestDisplayTraceEmpty(t *testing.T) {
	silenceColors(t)

	var out bytes.Buffer
	DisplayTrace(&out, nil, false)
	if out.Len() != 0 {
		t.Errorf("empty trace produced output: %q", out.String())
	}
}

func TestDisplayQuietTrace(t *testing.T) {
	silenceColors(t)

	var out bytes.Buffer
	DisplayQuietTrace(&out, sampleTrace())
	if got := strings.TrimSpace(out.String()); got != "Done" {
		t.Errorf("quiet output = %q, want terminal description only", got)
	}

	out.Reset()
	DisplayQuietTrace(&out, nil)
	if out.Len() != 0 {
		t.Errorf("empty trace produced quiet output: %q", out.String())
	}
}

func TestEncodeTrace(t *testing.T) {
	var out bytes.Buffer
	if err := EncodeTrace(&out, "fibonacci", sampleTrace()); err != nil {
		t.Fatalf("EncodeTrace: %v", err)
	}

	var doc struct {
		Algorithm string `json:"algorithm"`
		Steps     []struct {
			Kind          string `json:"kind"`
			SourceLineRef int    `json:"sourceLineRef"`
			Description   string `json:"description"`
		} `json:"steps"`
	}
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Algorithm != "fibonacci" {
		t.Errorf("algorithm = %q, want fibonacci", doc.Algorithm)
	}
	if len(doc.Steps) != 3 || doc.Steps[0].Kind != "init" {
		t.Errorf("steps not preserved: %+v", doc.Steps)
	}
}

func TestWriteTraceToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "trace.json")
	if err := WriteTraceToFile(path, "n-queens", sampleTrace()); err != nil {
		t.Fatalf("WriteTraceToFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !strings.Contains(string(data), `"n-queens"`) {
		t.Error("written file missing algorithm name")
	}
}
