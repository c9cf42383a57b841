package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextCard   key.Binding
	PrevCard   key.Binding
	Expand     key.Binding
	Hide       key.Binding
	ShowAll    key.Binding
	Delete     key.Binding
	Regenerate key.Binding
	Samples    key.Binding
	Pool       key.Binding
	Sort       key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextCard: key.NewBinding(
		key.WithKeys("tab", "n"),
		key.WithHelp("n/tab", "next card"),
	),
	PrevCard: key.NewBinding(
		key.WithKeys("shift+tab", "N"),
		key.WithHelp("N/S-tab", "prev card"),
	),
	Expand: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "expand/collapse"),
	),
	Hide: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hide card"),
	),
	ShowAll: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "show hidden"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete card"),
	),
	Regenerate: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "regenerate answer"),
	),
	Samples: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "samples"),
	),
	Pool: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "reference pool"),
	),
	Sort: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "cycle sort"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
