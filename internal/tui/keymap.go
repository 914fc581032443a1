package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings. Letter keys never reach the
// n input field, which only accepts digits.
type KeyMap struct {
	Quit         key.Binding
	Run          key.Binding
	Compare      key.Binding
	NextAlgo     key.Binding
	PrevAlgo     key.Binding
	ClearHistory key.Binding
	Export       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Compare: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "run all"),
		),
		NextAlgo: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next algorithm"),
		),
		PrevAlgo: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous algorithm"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear history"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Compare, k.NextAlgo, k.ClearHistory, k.Export, k.Quit}
}
