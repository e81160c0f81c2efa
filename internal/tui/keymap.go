package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the playback dashboard.
type KeyMap struct {
	PlayPause   key.Binding
	StepForward key.Binding
	StepBack    key.Binding
	Reset       key.Binding
	SpeedSlow   key.Binding
	SpeedMedium key.Binding
	SpeedFast   key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard dashboard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		StepForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "step forward"),
		),
		StepBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "step back"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		SpeedSlow: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "slow"),
		),
		SpeedMedium: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "medium"),
		),
		SpeedFast: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "fast"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
