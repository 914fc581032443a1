package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbench/internal/ui"
)

// Dashboard styles, built from the ui theme by initTUIStyles.
var (
	panelStyle      lipgloss.Style
	focusPanelStyle lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	selectedStyle   lipgloss.Style
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	busyStyle       lipgloss.Style
	idleStyle       lipgloss.Style
	cpuSparkStyle   lipgloss.Style
	memSparkStyle   lipgloss.Style
	chartSparkStyle lipgloss.Style
	footerKeyStyle  lipgloss.Style
	footerDescStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the current ui theme. Run calls it
// again once the theme has been initialized from the configuration.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Dim).
		Foreground(t.Text).
		Padding(0, 1)
	focusPanelStyle = panelStyle.BorderForeground(t.Border)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	busyStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	idleStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	cpuSparkStyle = lipgloss.NewStyle().Foreground(t.Accent)
	memSparkStyle = lipgloss.NewStyle().Foreground(t.Warning)
	chartSparkStyle = lipgloss.NewStyle().Foreground(t.Info)
	footerKeyStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	footerDescStyle = lipgloss.NewStyle().Foreground(t.Dim)
}
