// Package tui implements the interactive playback dashboard built on
// bubbletea. The dashboard plays a pre-built trace through the playback
// controller and renders the current step, overall progress and system
// load in a full-screen layout.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/algoviz/tracekit/internal/errors"
	"github.com/algoviz/tracekit/internal/metrics"
	"github.com/algoviz/tracekit/internal/playback"
	"github.com/algoviz/tracekit/internal/sysmon"
	"github.com/algoviz/tracekit/internal/trace"
)

const (
	// statsInterval is the refresh period for the system-load panel.
	statsInterval = time.Second

	// historySize bounds the CPU sparkline window.
	historySize = 30

	// minPanelWidth keeps the layout readable on narrow terminals.
	minPanelWidth = 40
)

// Model is the root bubbletea model for the playback dashboard.
type Model struct {
	keys       KeyMap
	ref        *programRef
	controller *playback.Controller
	tr         trace.Trace
	algorithm  string
	version    string

	snap    playback.Snapshot
	bar     progress.Model
	history *sysmon.History
	stats   sysmon.Stats

	width    int
	height   int
	exitCode int
}

// NewModel wires a controller around the given trace and returns the
// initial model. The observer records playback metrics and forwards
// changes through the program reference so timer-driven advances reach
// the update loop. met may be nil.
func NewModel(tr trace.Trace, algorithm string, speed playback.Speed, met *metrics.Metrics, version string) Model {
	ref := newProgramRef()
	recorder := newPlaybackRecorder(met)
	ctrl := playback.NewController(playback.WithObserver(func(s playback.Snapshot) {
		recorder.Observe(s)
		// Send on a separate goroutine: the observer also fires
		// synchronously inside Update-initiated controller calls,
		// where a blocking Send would deadlock the event loop.
		go ref.Send(PlaybackMsg(s))
	}))
	ctrl.Load(tr)
	ctrl.SetSpeed(speed)

	return Model{
		keys:       DefaultKeyMap(),
		ref:        ref,
		controller: ctrl,
		tr:         tr,
		algorithm:  algorithm,
		version:    version,
		snap:       snapshotOf(ctrl),
		bar:        progress.New(progress.WithDefaultGradient()),
		history:    sysmon.NewHistory(historySize),
		exitCode:   apperrors.ExitSuccess,
	}
}

func snapshotOf(c *playback.Controller) playback.Snapshot {
	return playback.Snapshot{
		State:  c.State(),
		Cursor: c.Cursor(),
		Total:  c.Len(),
		Speed:  c.Speed(),
	}
}

// Init starts the periodic system-stats sampling.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), sampleSysStatsCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(statsInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		return SysStatsMsg(sysmon.Sample())
	}
}

// Update handles key presses, window resizes and the periodic messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = m.panelWidth() - 10
		return m, nil

	case TickMsg:
		return m, tea.Batch(tickCmd(), sampleSysStatsCmd())

	case SysStatsMsg:
		m.stats = sysmon.Stats(msg)
		m.history.Push(m.stats.CPUPercent)
		return m, nil

	case PlaybackMsg:
		m.snap = playback.Snapshot(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.controller.Pause()
		return m, tea.Quit

	case key.Matches(msg, m.keys.PlayPause):
		if m.controller.IsPlaying() {
			m.controller.Pause()
		} else {
			m.controller.Play()
		}

	case key.Matches(msg, m.keys.StepForward):
		m.controller.Step(1)

	case key.Matches(msg, m.keys.StepBack):
		m.controller.Step(-1)

	case key.Matches(msg, m.keys.Reset):
		m.controller.Reset()

	case key.Matches(msg, m.keys.SpeedSlow):
		m.controller.SetSpeed(playback.SpeedSlow)

	case key.Matches(msg, m.keys.SpeedMedium):
		m.controller.SetSpeed(playback.SpeedMedium)

	case key.Matches(msg, m.keys.SpeedFast):
		m.controller.SetSpeed(playback.SpeedFast)

	default:
		return m, nil
	}

	// Refresh from the controller directly so key-driven changes render
	// immediately; the async observer message may arrive later.
	m.snap = snapshotOf(m.controller)
	return m, nil
}

func (m Model) panelWidth() int {
	w := m.width - 2
	if w < minPanelWidth {
		w = minPanelWidth
	}
	return w
}

// View renders header, step panel, progress, system stats and footer.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	sections := []string{
		m.viewHeader(),
		m.viewStep(),
		m.viewProgress(),
		m.viewStats(),
		m.viewFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("tracekit")
	version := versionStyle.Render(m.version)
	algo := headerStyle.Render(m.algorithm)

	var status string
	switch m.snap.State {
	case playback.StatePlaying:
		status = statusPlayStyle.Render("▶ playing")
	case playback.StatePaused:
		status = statusPauseStyle.Render("⏸ paused")
	default:
		status = statusIdleStyle.Render("idle")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		title, " ", version, "  ", algo, "  ", status,
		"  ", dimStyle.Render("speed: "+string(m.snap.Speed)),
	)
	return panelStyle.Width(m.panelWidth()).Render(line)
}

func (m Model) viewStep() string {
	if m.tr.Len() == 0 {
		return panelStyle.Width(m.panelWidth()).Render(dimStyle.Render("no trace loaded"))
	}

	step, ok := m.controller.CurrentStep()
	if !ok {
		step = m.tr[0]
	}

	cursor := m.snap.Cursor
	if cursor < 0 {
		cursor = 0
	}

	lines := []string{
		fmt.Sprintf("%s %s",
			stepKindStyle.Render(fmt.Sprintf("[%d/%d] %s", cursor+1, m.tr.Len(), step.Kind)),
			lineRefStyle.Render(fmt.Sprintf("(line %d)", step.SourceLineRef)),
		),
		stepDescStyle.Render(step.Description),
	}
	if payload := renderPayload(step.Payload); payload != "" {
		lines = append(lines, stepPayloadStyle.Render(payload))
	}
	return panelStyle.Width(m.panelWidth()).Render(strings.Join(lines, "\n"))
}

// renderPayload renders the step payload as single-line JSON, truncated
// to keep the panel height stable.
func renderPayload(payload any) string {
	if payload == nil {
		return ""
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	s := string(raw)
	const maxPayload = 120
	if len(s) > maxPayload {
		s = s[:maxPayload] + "…"
	}
	return s
}

func (m Model) viewProgress() string {
	pct := m.controller.Progress()
	line := lipgloss.JoinHorizontal(lipgloss.Center,
		m.bar.ViewAs(pct),
		dimStyle.Render(fmt.Sprintf(" %3.0f%%", pct*100)),
	)
	return panelStyle.Width(m.panelWidth()).Render(line)
}

func (m Model) viewStats() string {
	line := lipgloss.JoinHorizontal(lipgloss.Center,
		dimStyle.Render("cpu "),
		sparklineStyle.Render(m.history.Sparkline()),
		dimStyle.Render(fmt.Sprintf(" %5.1f%%", m.stats.CPUPercent)),
		dimStyle.Render(fmt.Sprintf("   mem %5.1f%%", m.stats.MemPercent)),
	)
	return panelStyle.Width(m.panelWidth()).Render(line)
}

func (m Model) viewFooter() string {
	bindings := []key.Binding{
		m.keys.PlayPause,
		m.keys.StepForward,
		m.keys.StepBack,
		m.keys.Reset,
		m.keys.SpeedSlow,
		m.keys.SpeedMedium,
		m.keys.SpeedFast,
		m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return dimStyle.Render(" ") + strings.Join(parts, footerDescStyle.Render(" • "))
}

// Run is the public entry point for the TUI mode. It creates the
// bubbletea program over the given trace, runs it to completion and
// returns the exit code. met may be nil when metrics are disabled.
func Run(ctx context.Context, tr trace.Trace, algorithm string, speed playback.Speed, met *metrics.Metrics, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(tr, algorithm, speed, met, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	// Inject the program reference before running so the playback
	// observer can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	model.controller.Pause()
	if err != nil {
		if ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}
