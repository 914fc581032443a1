package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibbench/internal/sysmon"
)

// Build-time variables set via -ldflags:
//
//	go build -ldflags="-X github.com/agbru/fibbench/internal/app.Version=v1.2.3 -X github.com/agbru/fibbench/internal/app.Commit=abc123 -X github.com/agbru/fibbench/internal/app.BuildDate=2026-01-01T00:00:00Z" ./cmd/fibbench
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether any argument asks for the version, so that
// --version works in any position and even next to otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version, build and runtime information.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fibbench %s\n", Version)
	fmt.Fprintf(out, "  Commit:       %s\n", Commit)
	fmt.Fprintf(out, "  Built:        %s\n", BuildDate)
	fmt.Fprintf(out, "  Go version:   %s\n", runtime.Version())
	fmt.Fprintf(out, "  OS/Arch:      %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "  CPU features: %s\n", sysmon.CPUFeatures())
}

// VersionData is the version information as a struct.
type VersionData struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"build_date"`
	GoVersion   string `json:"go_version"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	CPUFeatures string `json:"cpu_features"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:     Version,
		Commit:      Commit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		CPUFeatures: sysmon.CPUFeatures(),
	}
}
