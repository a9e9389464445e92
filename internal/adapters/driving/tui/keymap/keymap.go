// Package keymap defines the keybindings of the outline editor.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings of the outline editor.
type KeyMap struct {
	Quit key.Binding
	Up   key.Binding
	Down key.Binding

	// Append adds a section at the end at the level of the cursor.
	Append key.Binding

	// Insert adds a section right after the cursor at the same level.
	Insert key.Binding

	Remove key.Binding

	// Indent and Outdent change the level of the section under the cursor.
	Indent  key.Binding
	Outdent key.Binding

	// MoveUp and MoveDown swap the section with its neighbour.
	MoveUp   key.Binding
	MoveDown key.Binding

	// EditTitle opens the title editor.
	EditTitle key.Binding

	// MoreOptions and FewerOptions resize the options of the section.
	MoreOptions  key.Binding
	FewerOptions key.Binding

	Renumber key.Binding
	Save     key.Binding

	// Confirm and Cancel close the title editor.
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Append: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append"),
		),
		Insert: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "insert"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Indent: key.NewBinding(
			key.WithKeys("tab", ">"),
			key.WithHelp("tab", "indent"),
		),
		Outdent: key.NewBinding(
			key.WithKeys("shift+tab", "<"),
			key.WithHelp("shift+tab", "outdent"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		EditTitle: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "edit title"),
		),
		MoreOptions: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+/-", "options"),
		),
		FewerOptions: key.NewBinding(
			key.WithKeys("-"),
		),
		Renumber: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "renumber"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Append, k.Insert, k.Indent, k.MoveUp, k.Save, k.Quit}
}

// EditHelp returns the bindings shown while editing a title.
func (k *KeyMap) EditHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns every binding grouped by purpose.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Append, k.Insert, k.Remove},
		{k.Indent, k.Outdent, k.MoveUp, k.MoveDown},
		{k.EditTitle, k.MoreOptions, k.Renumber},
		{k.Save, k.Quit},
	}
}
