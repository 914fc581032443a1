// Package config defines the application configuration, parses it from
// command-line flags and FIBBENCH_* environment variables and validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/history"
	"github.com/agbru/fibbench/internal/orchestration"
)

// EnvPrefix is the prefix of every environment variable read by fibbench.
const EnvPrefix = "FIBBENCH_"

// Default configuration values.
const (
	DefaultN              uint64 = 1000
	DefaultAlgo                  = "all"
	DefaultTimeout               = 30 * time.Second
	DefaultPort                  = "8080"
	DefaultMaxN           uint64 = 100_000_000
	DefaultMemoryLimit           = "auto"
	DefaultLogLevel              = "warn"
	DefaultRecursionLimit        = fibonacci.DefaultRecursionLimit
)

// ErrInvalidConfig is returned by ParseConfig when validation fails. The
// underlying ConfigError has already been printed with the usage.
var ErrInvalidConfig = errors.New("invalid configuration")

// AppConfig aggregates the settings of one fibbench run.
type AppConfig struct {
	// N is the Fibonacci index to compute.
	N uint64
	// Algo is "all" or a comma-separated list of algorithm names.
	Algo string
	// Timeout bounds how long the host waits for one result.
	Timeout time.Duration
	// RecursionLimit is the largest n the naive recursive algorithm accepts.
	RecursionLimit uint64
	// MemoryLimit caps the estimated memory of one computation: "auto"
	// (half of physical memory), "0" (no limit) or a size such as "4G".
	MemoryLimit string

	HistoryFile string
	HistorySize int

	// Worker runs the NDJSON message loop on stdin/stdout.
	Worker bool
	// TUI starts the interactive dashboard.
	TUI bool
	// Server starts the HTTP API on Port.
	Server bool
	Port   string
	// MaxN is the largest n accepted by the HTTP API.
	MaxN uint64

	ShowHistory  bool
	ShowStats    bool
	ClearHistory bool
	// ExportFile writes the computed value to a file or directory.
	ExportFile string

	Quiet      bool
	Verbose    bool
	Details    bool
	JSONOutput bool
	NoColor    bool
	LogLevel   string
	Version    bool
}

// Algorithms resolves Algo to the list of algorithms to run.
func (c AppConfig) Algorithms() ([]fibonacci.Algorithm, error) {
	return orchestration.SelectAlgorithms(c.Algo)
}

// MemoryBudget resolves MemoryLimit to bytes. auto is called for "auto";
// 0 means no limit.
func (c AppConfig) MemoryBudget(auto func() uint64) (uint64, error) {
	if strings.EqualFold(strings.TrimSpace(c.MemoryLimit), DefaultMemoryLimit) {
		if auto == nil {
			return 0, nil
		}
		return auto(), nil
	}
	return fibonacci.ParseMemoryLimit(c.MemoryLimit)
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if _, err := c.Algorithms(); err != nil {
		names := make([]string, 0, len(fibonacci.Algorithms()))
		for _, a := range fibonacci.Algorithms() {
			names = append(names, a.String())
		}
		return apperrors.NewConfigError("%v. Valid algorithms are: 'all' or [%s]", err, strings.Join(names, ", "))
	}
	if c.HistorySize < 1 || c.HistorySize > history.MaxEntries {
		return apperrors.NewConfigError("history size must be between 1 and %d: %d", history.MaxEntries, c.HistorySize)
	}
	if _, err := c.MemoryBudget(nil); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}

	modes := 0
	for _, on := range []bool{c.Worker, c.TUI, c.Server} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--worker, --tui and --server are mutually exclusive")
	}
	if c.Server {
		if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
			return apperrors.NewConfigError("invalid port %q", c.Port)
		}
		if c.MaxN == 0 {
			return apperrors.NewConfigError("--max-n must be positive")
		}
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose cannot be combined")
	}
	return nil
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags that were not set explicitly and validates the result. Usage and
// errors are written to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.N, "n", DefaultN, "Index n of the Fibonacci number to compute.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, "Algorithm: 'all' or a comma-separated list of iterative, recursive, fastDoubling, matrix, memo.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum time to wait for one result.")
	fs.Uint64Var(&config.RecursionLimit, "recursion-limit", DefaultRecursionLimit, "Largest n accepted by the recursive algorithm.")
	fs.StringVar(&config.MemoryLimit, "memory-limit", DefaultMemoryLimit, "Memory budget per computation: auto, 0 (none) or a size such as 512M.")
	fs.StringVar(&config.HistoryFile, "history-file", "", "History file (default ~/"+history.DefaultFileName+").")
	fs.IntVar(&config.HistorySize, "history-size", history.MaxEntries, "Number of history entries to keep (1-50).")

	fs.BoolVar(&config.Worker, "worker", false, "Run as a worker: JSON requests on stdin, responses on stdout.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive dashboard.")
	fs.BoolVar(&config.Server, "server", false, "Start the HTTP API.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.Uint64Var(&config.MaxN, "max-n", DefaultMaxN, "Largest n accepted by the HTTP API.")

	fs.BoolVar(&config.ShowHistory, "history", false, "Show the computation history and exit.")
	fs.BoolVar(&config.ShowStats, "stats", false, "Show per-algorithm statistics and exit.")
	fs.BoolVar(&config.ClearHistory, "clear-history", false, "Delete the computation history and exit.")
	fs.StringVar(&config.ExportFile, "export", "", "Write the computed value to this file or directory.")

	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the value.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print the full value even when it is long.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Show bits, digits, memory estimate and allocation details.")
	fs.BoolVar(&config.Details, "d", false, "Details (shorthand).")
	fs.BoolVar(&config.JSONOutput, "json", false, "Print response messages as JSON.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.BoolVar(&config.Version, "version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	if config.HistoryFile == "" {
		config.HistoryFile = history.DefaultPath()
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return config, nil
}
