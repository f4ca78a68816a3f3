// Package keymap defines the key bindings shared by the input modes and the help views.
package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the app reacts to
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Confirm   key.Binding
	Yes       key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	AddNS     key.Binding
	AddCmd    key.Binding
	Delete    key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Right, k.Confirm, k.AddNS, k.AddCmd, k.Delete, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextTab, k.PrevTab, k.Confirm, k.Cancel},
		{k.AddNS, k.AddCmd, k.Delete, k.Copy},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

// Default returns the default keybindings.
func Default() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "back"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "into"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "select/confirm"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/back"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "erase"),
		),
		AddNS: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new namespace"),
		),
		AddCmd: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add command"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}
