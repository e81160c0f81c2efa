package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/algoviz/tracekit/internal/fibonacci"
	"github.com/algoviz/tracekit/internal/playback"
	"github.com/algoviz/tracekit/internal/queens"
	"github.com/algoviz/tracekit/internal/trace"
	"github.com/algoviz/tracekit/internal/ui"
)

// REPLConfig holds configuration for the interactive session.
type REPLConfig struct {
	// Timeout bounds each trace build.
	Timeout time.Duration
	// DetailLevel is the sampling detail applied to Fibonacci builds.
	DetailLevel int
	// MaxSolutions bounds N-Queens searches.
	MaxSolutions int
	// Speed is the initial playback speed.
	Speed playback.Speed
}

// REPL is an interactive prompt for building traces and stepping
// through them.
type REPL struct {
	config     REPLConfig
	controller *playback.Controller
	algorithm  string
	current    trace.Trace
	in         io.Reader
	out        io.Writer
}

// NewREPL creates a new interactive session. The playback controller's
// observer echoes each automatic step to the output.
func NewREPL(config REPLConfig) *REPL {
	if config.MaxSolutions < 1 {
		config.MaxSolutions = 1
	}
	r := &REPL{
		config: config,
		in:     os.Stdin,
		out:    os.Stdout,
	}
	r.controller = playback.NewController(
		playback.WithObserver(r.onPlaybackChange),
	)
	if config.Speed.IsValid() {
		r.controller.SetSpeed(config.Speed)
	}
	return r
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// onPlaybackChange echoes automatic playback steps as they happen.
func (r *REPL) onPlaybackChange(snap playback.Snapshot) {
	if snap.State != playback.StatePlaying {
		return
	}
	if step, ok := r.controller.CurrentStep(); ok {
		DisplayStep(r.out, step, snap.Cursor, snap.Total)
	}
}

// Start runs the prompt loop until exit or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorSuccess()+"trace> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorError(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%sTrace playback - interactive mode%s\n\n", ui.ColorBold(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	w := func(cmd, desc string) {
		fmt.Fprintf(r.out, "  %s%-14s%s %s\n", ui.ColorWarning(), cmd, ui.ColorReset(), desc)
	}
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	w("fib <n>", "build a Fibonacci trace and load it")
	w("queens <n>", "build an N-Queens trace and load it")
	w("play", "start automatic playback")
	w("pause", "pause playback")
	w("step [k]", "advance k steps (default 1)")
	w("back [k]", "rewind k steps (default 1)")
	w("reset", "rewind to the first step")
	w("speed <name>", "set playback speed: slow, medium, fast")
	w("show", "display the current step")
	w("status", "display playback state and progress")
	w("save <path>", "write the loaded trace to a JSON file")
	w("help", "display this help")
	w("exit / quit", "leave interactive mode")
}

// processCommand executes one command line. Returns false when the
// session should end.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "fib", "f":
		r.cmdFib(args)
	case "queens", "nq":
		r.cmdQueens(args)
	case "play", "p":
		r.cmdPlay()
	case "pause":
		r.controller.Pause()
		r.cmdShow()
	case "step", "s":
		r.cmdStep(args, 1)
	case "back", "b":
		r.cmdStep(args, -1)
	case "reset":
		r.controller.Reset()
		r.cmdShow()
	case "speed":
		r.cmdSpeed(args)
	case "show":
		r.cmdShow()
	case "status", "st":
		r.cmdStatus()
	case "save":
		r.cmdSave(args)
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorSuccess(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorError(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorWarning(), ui.ColorReset())
	}
	return true
}

// load replaces the controller's trace and reports its size.
func (r *REPL) load(algorithm string, tr trace.Trace) {
	r.algorithm = algorithm
	r.current = tr
	r.controller.Load(tr)
	fmt.Fprintf(r.out, "Loaded %s%s%s trace: %s%d%s steps\n",
		ui.ColorPrimary(), algorithm, ui.ColorReset(),
		ui.ColorInfo(), len(tr), ui.ColorReset())
}

func (r *REPL) cmdFib(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: fib <n>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorError(), args[0], ui.ColorReset())
		return
	}

	in := fibonacci.Input{N: n, DetailLevel: r.config.DetailLevel}
	if result := fibonacci.Validate(in); !result.Valid {
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorError(), result.Error, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	tr, err := fibonacci.NewBuilder(in).GenerateTrace(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "%sBuild failed: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}
	r.load("fibonacci", tr)
}

func (r *REPL) cmdQueens(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: queens <n>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorError(), args[0], ui.ColorReset())
		return
	}

	in := queens.Input{N: n, MaxSolutions: r.config.MaxSolutions}
	if result := queens.Validate(in); !result.Valid {
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorError(), result.Error, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()
	tr, err := queens.NewBuilder(in).GenerateTrace(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "%sBuild failed: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}
	r.load("n-queens", tr)
}

func (r *REPL) cmdPlay() {
	if r.controller.Len() == 0 {
		fmt.Fprintf(r.out, "%sNo trace loaded. Use fib or queens first.%s\n", ui.ColorWarning(), ui.ColorReset())
		return
	}
	if r.controller.IsAtEnd() {
		fmt.Fprintf(r.out, "%sAt the end of the trace; reset to replay.%s\n", ui.ColorWarning(), ui.ColorReset())
		return
	}
	r.controller.Play()
}

func (r *REPL) cmdStep(args []string, direction int) {
	count := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 {
			fmt.Fprintf(r.out, "%sInvalid step count: %s%s\n", ui.ColorError(), args[0], ui.ColorReset())
			return
		}
		count = parsed
	}
	r.controller.Step(direction * count)
	r.cmdShow()
}

func (r *REPL) cmdSpeed(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: speed <slow|medium|fast>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	speed := playback.Speed(strings.ToLower(args[0]))
	if !speed.IsValid() {
		fmt.Fprintf(r.out, "%sUnknown speed: %s%s\n", ui.ColorError(), args[0], ui.ColorReset())
		return
	}
	r.controller.SetSpeed(speed)
	fmt.Fprintf(r.out, "Speed set to %s%s%s (%s per step)\n",
		ui.ColorPrimary(), speed, ui.ColorReset(), speed.Delay())
}

func (r *REPL) cmdShow() {
	step, ok := r.controller.CurrentStep()
	if !ok {
		fmt.Fprintf(r.out, "%sNo trace loaded.%s\n", ui.ColorWarning(), ui.ColorReset())
		return
	}
	DisplayStep(r.out, step, r.controller.Cursor(), r.controller.Len())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sPlayback status:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm: %s%s%s\n", ui.ColorPrimary(), r.algorithmName(), ui.ColorReset())
	fmt.Fprintf(r.out, "  State:     %s%s%s\n", ui.ColorInfo(), r.controller.State(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Speed:     %s%s%s\n", ui.ColorInfo(), r.controller.Speed(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Position:  %d/%d\n", r.controller.Cursor()+1, r.controller.Len())
	fmt.Fprintf(r.out, "  Progress:  %s %.0f%%\n",
		FormatProgressBar(r.controller.Progress(), ProgressBarWidth),
		r.controller.Progress()*100)
	fmt.Fprintln(r.out)
}

func (r *REPL) algorithmName() string {
	if r.algorithm == "" {
		return "none"
	}
	return r.algorithm
}

func (r *REPL) cmdSave(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: save <path>%s\n", ui.ColorError(), ui.ColorReset())
		return
	}
	if len(r.current) == 0 {
		fmt.Fprintf(r.out, "%sNo trace loaded.%s\n", ui.ColorWarning(), ui.ColorReset())
		return
	}

	if err := WriteTraceToFile(args[0], r.algorithmName(), r.current); err != nil {
		fmt.Fprintf(r.out, "%sSave failed: %v%s\n", ui.ColorError(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "%sTrace saved to %s%s\n", ui.ColorSuccess(), args[0], ui.ColorReset())
}
