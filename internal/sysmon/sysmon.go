// Package sysmon samples system-wide CPU and memory usage for the dashboard
// header and sizes the default memory budget of the engine.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
	MemTotal   uint64
	MemUsed    uint64
}

// Sample collects a system-wide CPU and memory snapshot. CPU uses
// interval=0 (delta since the previous call). Fields are zero on error.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm != nil {
		s.MemPercent = vm.UsedPercent
		s.MemTotal = vm.Total
		s.MemUsed = vm.Used
	}
	return s
}

// DefaultMemoryBudget returns the share of physical memory a single
// computation may use: half of the total, or 0 (no limit) when the total
// cannot be read.
func DefaultMemoryBudget() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return 0
	}
	return vm.Total / 2
}
