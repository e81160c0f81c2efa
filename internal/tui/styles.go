package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/algoviz/tracekit/internal/ui"
)

// Style variables for the playback dashboard, initialized from the ui
// theme system via initTUIStyles().
var (
	panelStyle       lipgloss.Style
	headerStyle      lipgloss.Style
	titleStyle       lipgloss.Style
	versionStyle     lipgloss.Style
	stepKindStyle    lipgloss.Style
	stepDescStyle    lipgloss.Style
	stepPayloadStyle lipgloss.Style
	lineRefStyle     lipgloss.Style
	footerKeyStyle   lipgloss.Style
	footerDescStyle  lipgloss.Style
	statusIdleStyle  lipgloss.Style
	statusPlayStyle  lipgloss.Style
	statusPauseStyle lipgloss.Style
	statusErrorStyle lipgloss.Style
	sparklineStyle   lipgloss.Style
	dimStyle         lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all dashboard styles from the current ui theme.
// Called at package init and again from Run() after InitTheme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	versionStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	stepKindStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Info)

	stepDescStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	stepPayloadStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	lineRefStyle = lipgloss.NewStyle().
		Foreground(t.Warning)

	footerKeyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	footerDescStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	statusIdleStyle = lipgloss.NewStyle().
		Foreground(t.Dim).
		Bold(true)

	statusPlayStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusPauseStyle = lipgloss.NewStyle().
		Foreground(t.Warning).
		Bold(true)

	statusErrorStyle = lipgloss.NewStyle().
		Foreground(t.Error).
		Bold(true)

	sparklineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)
}
