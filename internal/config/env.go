package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether a flag was set explicitly on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any of the aliases of a flag was set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps one environment variable (without EnvPrefix) to the
// flag(s) it stands for.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// Invalid values are ignored and the flag default is kept.
var envOverrides = []envOverride{
	{"N", []string{"n"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.N = parsed
		}
	}},
	{"RECURSION_LIMIT", []string{"recursion-limit"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.RecursionLimit = parsed
		}
	}},
	{"MAX_N", []string{"max-n"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.MaxN = parsed
		}
	}},
	{"HISTORY_SIZE", []string{"history-size"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.HistorySize = parsed
		}
	}},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) { c.Algo = v }},
	{"MEMORY_LIMIT", []string{"memory-limit"}, func(c *AppConfig, v string) { c.MemoryLimit = v }},
	{"HISTORY_FILE", []string{"history-file"}, func(c *AppConfig, v string) { c.HistoryFile = v }},
	{"PORT", []string{"port"}, func(c *AppConfig, v string) { c.Port = v }},
	{"EXPORT", []string{"export"}, func(c *AppConfig, v string) { c.ExportFile = v }},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) { c.LogLevel = v }},

	{"WORKER", []string{"worker"}, func(c *AppConfig, v string) { c.Worker = parseBoolEnv(v, c.Worker) }},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) { c.TUI = parseBoolEnv(v, c.TUI) }},
	{"SERVER", []string{"server"}, func(c *AppConfig, v string) { c.Server = parseBoolEnv(v, c.Server) }},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"DETAILS", []string{"details", "d"}, func(c *AppConfig, v string) { c.Details = parseBoolEnv(v, c.Details) }},
	{"JSON", []string{"json"}, func(c *AppConfig, v string) { c.JSONOutput = parseBoolEnv(v, c.JSONOutput) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies FIBBENCH_* values for every flag that was not set
// on the command line: CLI flags > environment > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
