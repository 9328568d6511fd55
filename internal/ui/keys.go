package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	SetLTR   key.Binding
	SetRTL   key.Binding
	Clear    key.Binding
	Default  key.Binding
	Remember key.Binding
	Prune    key.Binding
	Refresh  key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "switch direction"),
		),
		SetLTR: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "set ltr"),
		),
		SetRTL: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "set rtl"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear entry"),
		),
		Default: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "cycle default"),
		),
		Remember: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle remember"),
		),
		Prune: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "prune stale"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rescan vault"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
