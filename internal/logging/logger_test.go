package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestFieldHelpers tests the Field constructor functions.
func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name      string
		field     Field
		wantKey   string
		wantValue any
	}{
		{"String", String("key", "value"), "key", "value"},
		{"Int", Int("count", 42), "count", 42},
		{"Uint64", Uint64("n", 1000000), "n", uint64(1000000)},
		{"Float64", Float64("progress", 0.75), "progress", 0.75},
		{"Bool", Bool("bitmask", true), "bitmask", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.wantKey {
				t.Errorf("%s().Key = %q, want %q", tt.name, tt.field.Key, tt.wantKey)
			}
			if tt.field.Value != tt.wantValue {
				t.Errorf("%s().Value = %v, want %v", tt.name, tt.field.Value, tt.wantValue)
			}
		})
	}

	t.Run("Err uses the error key", func(t *testing.T) {
		testErr := errors.New("boom")
		f := Err(testErr)
		if f.Key != "error" {
			t.Errorf("Err().Key = %q, want %q", f.Key, "error")
		}
		if f.Value != testErr {
			t.Errorf("Err().Value = %v, want %v", f.Value, testErr)
		}
	})
}

// TestNewLogger verifies the component-tagged JSON logger.
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "playback")

	logger.Info("session loaded", Int("steps", 12))

	output := buf.String()
	for _, want := range []string{"playback", "session loaded", "12"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

// TestNewDefaultLogger tests the default logger constructor.
func TestNewDefaultLogger(t *testing.T) {
	if logger := NewDefaultLogger(); logger == nil {
		t.Fatal("NewDefaultLogger returned nil")
	}
}

// TestZerologAdapter_Levels exercises each level through the adapter.
func TestZerologAdapter_Levels(t *testing.T) {
	t.Run("Info with fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "test")
		logger.Info("trace built", String("algorithm", "n-queens"), Int("steps", 33))

		output := buf.String()
		for _, want := range []string{"trace built", "n-queens", "33", "info"} {
			if !strings.Contains(output, want) {
				t.Errorf("output should contain %q, got: %s", want, output)
			}
		}
	})

	t.Run("Error attaches the cause", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, "test")
		logger.Error("build failed", errors.New("step ceiling"), Int("n", 18))

		output := buf.String()
		for _, want := range []string{"build failed", "step ceiling", "18"} {
			if !strings.Contains(output, want) {
				t.Errorf("output should contain %q, got: %s", want, output)
			}
		}
	})

	t.Run("Debug respects level", func(t *testing.T) {
		var buf bytes.Buffer
		zl := zerolog.New(&buf).Level(zerolog.DebugLevel)
		logger := NewZerologAdapter(zl)
		logger.Debug("resolved config", String("mode", "condensed"))

		output := buf.String()
		if !strings.Contains(output, "resolved config") || !strings.Contains(output, "condensed") {
			t.Errorf("debug output incomplete: %s", output)
		}
	})
}

// TestZerologAdapter_PrintfPrintln tests the log.Printf/Println compatibility.
func TestZerologAdapter_PrintfPrintln(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Printf("cursor at %d of %d", 4, 9)
	if !strings.Contains(buf.String(), "cursor at 4 of 9") {
		t.Errorf("Printf should format message, got: %s", buf.String())
	}

	buf.Reset()
	logger.Println("hello", "world")
	out := buf.String()
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("Println should include all arguments, got: %s", out)
	}
}

// TestStdLoggerAdapter exercises the standard library backend.
func TestStdLoggerAdapter(t *testing.T) {
	newAdapter := func() (*StdLoggerAdapter, *bytes.Buffer) {
		var buf bytes.Buffer
		return NewStdLoggerAdapter(log.New(&buf, "", 0)), &buf
	}

	t.Run("Info", func(t *testing.T) {
		a, buf := newAdapter()
		a.Info("loaded", String("algo", "fibonacci"))
		out := buf.String()
		for _, want := range []string{"[INFO]", "loaded", "algo", "fibonacci"} {
			if !strings.Contains(out, want) {
				t.Errorf("output should contain %q, got: %s", want, out)
			}
		}
	})

	t.Run("Error", func(t *testing.T) {
		a, buf := newAdapter()
		a.Error("failed", errors.New("boom"), Int("n", 3))
		out := buf.String()
		for _, want := range []string{"[ERROR]", "failed", "boom", "3"} {
			if !strings.Contains(out, want) {
				t.Errorf("output should contain %q, got: %s", want, out)
			}
		}
	})

	t.Run("Debug", func(t *testing.T) {
		a, buf := newAdapter()
		a.Debug("sampling", Int("interval", 4))
		out := buf.String()
		if !strings.Contains(out, "[DEBUG]") || !strings.Contains(out, "interval") {
			t.Errorf("debug output incomplete: %s", out)
		}
	})
}

// TestNopLogger verifies the no-op logger satisfies the interface silently.
func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger{}
	logger.Debug("x")
	logger.Info("x")
	logger.Warn("x")
	logger.Error("x", errors.New("ignored"))
	logger.Printf("%d", 1)
	logger.Println("x")
}
