package cli

import (
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate defines the spinner animation interval.
const SpinnerRefreshRate = 200 * time.Millisecond

// ProgressBarWidth defines the width in characters of the playback
// progress bar.
const ProgressBarWidth = 40

// Spinner abstracts the terminal spinner shown while a trace builds, so
// tests can substitute a silent implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to satisfy the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

// nopSpinner is used in quiet mode and in tests.
type nopSpinner struct{}

func (nopSpinner) Start()              {}
func (nopSpinner) Stop()               {}
func (nopSpinner) UpdateSuffix(string) {}

// newSpinner is replaceable in tests.
var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// RunWithSpinner animates a spinner with msg while fn runs. Quiet mode
// skips the animation entirely; fn always runs.
func RunWithSpinner(msg string, out io.Writer, quiet bool, fn func() error) error {
	var sp Spinner = nopSpinner{}
	if !quiet {
		sp = newSpinner(out)
	}
	sp.UpdateSuffix(" " + msg)
	sp.Start()
	defer sp.Stop()
	return fn()
}

// FormatProgressBar renders a textual progress bar for a normalized
// progress value.
func FormatProgressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
