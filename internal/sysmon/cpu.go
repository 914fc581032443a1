package sysmon

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures lists the instruction set extensions relevant to big-integer
// arithmetic that the current CPU supports, or "none detected".
func CPUFeatures() string {
	var f []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, c := range []struct {
			name string
			ok   bool
		}{
			{"bmi2", cpu.X86.HasBMI2},
			{"adx", cpu.X86.HasADX},
			{"avx2", cpu.X86.HasAVX2},
			{"avx512f", cpu.X86.HasAVX512F},
		} {
			if c.ok {
				f = append(f, c.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			f = append(f, "asimd")
		}
		if cpu.ARM64.HasSVE {
			f = append(f, "sve")
		}
	}
	if len(f) == 0 {
		return "none detected"
	}
	return strings.Join(f, ", ")
}
