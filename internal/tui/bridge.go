package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// programRef is a thread-safe handle on the running bubbletea program.
// Bubbletea copies models on every Update, so goroutines that outlive a
// single Update call (the trace builder, the playback observer) hold a
// reference to this shared handle instead of the model itself.
type programRef struct {
	mu      sync.Mutex
	program *tea.Program
}

func newProgramRef() *programRef {
	return &programRef{}
}

// SetProgram installs the program handle. Must be called before any
// goroutine attempts to Send.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = p
}

// Send delivers a message to the program's update loop. Messages sent
// before SetProgram are dropped.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
