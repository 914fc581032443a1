// Package metrics reads Go runtime memory statistics for the --details
// report and the dashboard footer.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by the heap
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryDelta is the difference between two snapshots.
type MemoryDelta struct {
	Allocated  uint64 // bytes allocated in between
	GCCycles   uint32
	PauseNs    uint64
	PeakHeap   uint64 // heap in use at the later snapshot
	SysGrowthB int64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns what changed between before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		Allocated:  s.TotalAlloc - before.TotalAlloc,
		GCCycles:   s.NumGC - before.NumGC,
		PauseNs:    s.PauseTotalNs - before.PauseTotalNs,
		PeakHeap:   s.HeapAlloc,
		SysGrowthB: int64(s.Sys) - int64(before.Sys),
	}
}
