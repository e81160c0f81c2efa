// Package sysmon provides system-wide CPU and memory usage sampling
// for the dashboard's resource panel.
package sysmon

import (
	"sync"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot. CPU
// uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// History keeps the most recent CPU samples for sparkline rendering.
type History struct {
	mu      sync.Mutex
	samples []float64
	size    int
}

// NewHistory creates a history that retains the last size samples.
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{size: size}
}

// Push appends a CPU sample, evicting the oldest once full.
func (h *History) Push(cpuPercent float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = append(h.samples, cpuPercent)
	if len(h.samples) > h.size {
		h.samples = h.samples[len(h.samples)-h.size:]
	}
}

// Values returns a copy of the retained samples, oldest first.
func (h *History) Values() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]float64, len(h.samples))
	copy(out, h.samples)
	return out
}

// sparkLevels maps a sample to a block glyph, low to high.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the history as a row of block glyphs scaled to
// 0..100.
func (h *History) Sparkline() string {
	values := h.Values()
	runes := make([]rune, len(values))
	for i, v := range values {
		idx := int(v / 100 * float64(len(sparkLevels)))
		if idx >= len(sparkLevels) {
			idx = len(sparkLevels) - 1
		}
		if idx < 0 {
			idx = 0
		}
		runes[i] = sparkLevels[idx]
	}
	return string(runes)
}
