// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the ticket console.
type KeyMap struct {
	// Row selection within the current page.
	Up   key.Binding
	Down key.Binding

	// Page navigation.
	PreviousPage key.Binding
	NextPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding

	// Search by sequence number.
	Search      key.Binding
	ClearSearch key.Binding

	// Menus.
	StatusMenu  key.Binding
	OptionsMenu key.Binding

	// Actions.
	MarkUsed key.Binding
	Generate key.Binding
	Refresh  key.Binding

	// Dialogs.
	Confirm    key.Binding
	Cancel     key.Binding
	Yes        key.Binding
	No         key.Binding
	NextPreset key.Binding
	Increment  key.Binding
	Decrement  key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set: vim-style movement
// alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PreviousPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	FirstPage: key.NewBinding(
		key.WithKeys("H", "home"),
		key.WithHelp("H", "first page"),
	),
	LastPage: key.NewBinding(
		key.WithKeys("L", "end"),
		key.WithHelp("L", "last page"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search #"),
	),
	ClearSearch: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear search"),
	),
	StatusMenu: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "status"),
	),
	OptionsMenu: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "sort/page size"),
	),
	MarkUsed: key.NewBinding(
		key.WithKeys("u", "enter"),
		key.WithHelp("u", "mark used"),
	),
	Generate: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "generate"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "generate"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
	NextPreset: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "preset"),
	),
	Increment: key.NewBinding(
		key.WithKeys("+", "=", "up"),
		key.WithHelp("+", "more"),
	),
	Decrement: key.NewBinding(
		key.WithKeys("-", "down"),
		key.WithHelp("-", "fewer"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
