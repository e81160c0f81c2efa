package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI color codes for error rendering without
// coupling this package to a specific UI implementation.
type ColorProvider interface {
	// Red returns the escape code for error text.
	Red() string
	// Yellow returns the escape code for warning text.
	Yellow() string
	// Reset returns the escape code that clears formatting.
	Reset() string
}

// noColor is used when no provider is supplied.
type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// HandleBuildError renders a trace build failure to out and returns the
// process exit code matching the error class. Context cancellation and
// timeouts are distinguished so shells and CI can react accordingly.
//
// Parameters:
//   - err: The build error (may wrap context or timeout errors).
//   - duration: How long the build ran before failing.
//   - out: Destination for the user-facing message.
//   - colors: Optional color provider (nil disables colors).
//
// Returns:
//   - int: The process exit code.
func HandleBuildError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}

	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sTimeout:%s %v (after %s)\n", colors.Yellow(), colors.Reset(), err, duration)
		return ExitErrorTimeout
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sTimeout:%s %v (after %s)\n", colors.Yellow(), colors.Reset(), err, duration)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sCanceled:%s %v\n", colors.Yellow(), colors.Reset(), err)
		return ExitErrorCanceled
	}

	var configErr ConfigError
	var validationErr ValidationError
	switch {
	case errors.As(err, &configErr):
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	case errors.As(err, &validationErr):
		fmt.Fprintf(out, "%sInvalid input:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "%sError:%s %v\n", colors.Red(), colors.Reset(), err)
	return ExitErrorGeneric
}
