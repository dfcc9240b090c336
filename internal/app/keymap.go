package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the pager bindings.
type KeyMap struct {
	Quit        key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	ToggleSplit key.Binding
	Copy        key.Binding
	Help        key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "move up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "move down")),
		PageUp:      key.NewBinding(key.WithKeys("ctrl+b", "pgup"), key.WithHelp("ctrl-b", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("ctrl+f", "pgdown", " "), key.WithHelp("ctrl-f", "page down")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		ToggleSplit: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "unified/split")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy patch")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}
