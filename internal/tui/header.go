package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// sysHistory is the number of system samples kept for the header sparklines.
const sysHistory = 20

// HeaderModel renders the top bar: title, worker state and system load.
type HeaderModel struct {
	version string
	width   int
	cpu     *RingBuffer
	mem     *RingBuffer
}

// NewHeaderModel creates a header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		version: version,
		cpu:     NewRingBuffer(sysHistory),
		mem:     NewRingBuffer(sysHistory),
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// UpdateSysStats records a system sample.
func (h *HeaderModel) UpdateSysStats(s SysStatsMsg) {
	h.cpu.Push(s.CPUPercent)
	h.mem.Push(s.MemPercent)
}

// View renders the header. busy is the worker state.
func (h HeaderModel) View(busy bool) string {
	title := "fibbench"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	left := titleStyle.Render(title) + dimStyle.Render(" | ")
	if busy {
		left += busyStyle.Render("● busy")
	} else {
		left += idleStyle.Render("○ idle")
	}

	right := fmt.Sprintf("CPU %s %5.1f%%  MEM %s %5.1f%%",
		cpuSparkStyle.Render(RenderSparkline(h.cpu.Slice(), 100)), h.cpu.Last(),
		memSparkStyle.Render(RenderSparkline(h.mem.Slice(), 100)), h.mem.Last())

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
