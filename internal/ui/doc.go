// Package ui provides the color themes shared by the CLI presenter, the
// error handler and the TUI dashboard. Colors are disabled by --no-color or
// by the NO_COLOR environment variable.
package ui
