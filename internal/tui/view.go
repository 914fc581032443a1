package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibbench/internal/format"
)

const (
	// historyRows is the number of history entries shown.
	historyRows = 8
	// resultEdges is the number of digits kept at each end of a long value.
	resultEdges = 20
)

// View renders the dashboard.
func (m Model) View() string {
	width := max(m.width, 60)
	leftW := 30
	rightW := max(width-leftW-4, 26)

	left := lipgloss.JoinVertical(lipgloss.Left,
		focusPanelStyle.Width(leftW).Render(m.input.View()),
		panelStyle.Width(leftW).Render(m.viewAlgorithms()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(rightW).Render(m.viewResult(rightW-2)),
		panelStyle.Width(rightW).Render(m.viewHistory()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(m.Busy()),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		panelStyle.Width(width-2).Render(m.chart.View(m.store, m.algos)),
		m.viewStatus(),
		m.viewFooter(),
	)
}

func (m Model) viewAlgorithms() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Algorithm"))
	for i, a := range m.algos {
		b.WriteByte('\n')
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + a.String()))
		} else {
			b.WriteString("  " + a.String())
		}
	}
	return b.String()
}

func (m Model) viewResult(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Last result"))
	if m.last == nil {
		b.WriteString("\n" + dimStyle.Render("Nothing computed yet."))
		return b.String()
	}
	res := *m.last
	fmt.Fprintf(&b, "\n%s %s  %s F(%d)  %s %s",
		labelStyle.Render("algo"), valueStyle.Render(res.Algorithm.String()),
		labelStyle.Render("n"), res.N,
		labelStyle.Render("time"), valueStyle.Render(format.FormatMillis(res.ElapsedMillis())))
	if !res.Success() {
		b.WriteString("\n" + errorStyle.Render(res.ErrorMessage()))
		return b.String()
	}

	value, _ := format.Truncate(res.Value, max(width, 2*resultEdges+5), resultEdges)
	fmt.Fprintf(&b, "\n%s %s\n%s",
		labelStyle.Render("digits"), valueStyle.Render(format.FormatUint(uint64(res.Digits()))),
		successStyle.Render(value))
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("History (%d/%d)", m.store.Len(), m.store.Capacity())))
	entries := m.store.Entries()
	if len(entries) == 0 {
		b.WriteString("\n" + dimStyle.Render("Empty."))
		return b.String()
	}
	for i, e := range entries {
		if i == historyRows {
			fmt.Fprintf(&b, "\n%s", dimStyle.Render(fmt.Sprintf("... %d more", len(entries)-historyRows)))
			break
		}
		fmt.Fprintf(&b, "\n%-12s F(%-8d) %12s  %s",
			e.Algorithm, e.N, format.FormatMillis(e.ElapsedMillis),
			dimStyle.Render(e.Timestamp.Format("15:04:05")))
	}
	return b.String()
}

func (m Model) viewStatus() string {
	if m.statusErr {
		return " " + errorStyle.Render(m.status)
	}
	return " " + dimStyle.Render(m.status)
}

func (m Model) viewFooter() string {
	parts := make([]string, 0, len(m.keymap.ShortHelp()))
	for _, k := range m.keymap.ShortHelp() {
		h := k.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return " " + strings.Join(parts, dimStyle.Render("  ·  "))
}
