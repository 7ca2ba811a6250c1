// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TextField is a single-line text editor with cursor tracking, used
// for the search box and the count input. An optional Accept filter
// restricts which runes can be typed.
type TextField struct {
	runes  []rune
	cursor int

	// Accept reports whether a typed rune is allowed. Nil accepts
	// everything.
	Accept func(rune) bool

	// Limit caps the number of runes. Zero means no limit.
	Limit int
}

// DigitsOnly accepts the ASCII digits.
func DigitsOnly(character rune) bool {
	return character >= '0' && character <= '9'
}

// Value returns the field contents.
func (field *TextField) Value() string {
	return string(field.runes)
}

// SetValue replaces the contents and moves the cursor to the end.
func (field *TextField) SetValue(value string) {
	field.runes = []rune(value)
	field.cursor = len(field.runes)
}

// Update applies a key press. Returns true when the contents changed.
func (field *TextField) Update(message tea.KeyMsg) bool {
	switch message.Type {
	case tea.KeyRunes:
		changed := false
		for _, character := range message.Runes {
			if field.insertRune(character) {
				changed = true
			}
		}
		return changed
	case tea.KeyBackspace:
		if field.cursor == 0 {
			return false
		}
		field.runes = append(field.runes[:field.cursor-1], field.runes[field.cursor:]...)
		field.cursor--
		return true
	case tea.KeyDelete:
		if field.cursor >= len(field.runes) {
			return false
		}
		field.runes = append(field.runes[:field.cursor], field.runes[field.cursor+1:]...)
		return true
	case tea.KeyCtrlU:
		if len(field.runes) == 0 {
			return false
		}
		field.runes = nil
		field.cursor = 0
		return true
	case tea.KeyLeft:
		field.cursor = max(0, field.cursor-1)
	case tea.KeyRight:
		field.cursor = min(len(field.runes), field.cursor+1)
	case tea.KeyHome, tea.KeyCtrlA:
		field.cursor = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		field.cursor = len(field.runes)
	}
	return false
}

// insertRune inserts a single rune at the cursor position.
func (field *TextField) insertRune(character rune) bool {
	if field.Accept != nil && !field.Accept(character) {
		return false
	}
	if field.Limit > 0 && len(field.runes) >= field.Limit {
		return false
	}
	newRunes := make([]rune, len(field.runes)+1)
	copy(newRunes, field.runes[:field.cursor])
	newRunes[field.cursor] = character
	copy(newRunes[field.cursor+1:], field.runes[field.cursor:])
	field.runes = newRunes
	field.cursor++
	return true
}

// Render draws the contents with a reverse-video cursor when focused.
func (field *TextField) Render(style lipgloss.Style, focused bool) string {
	if !focused {
		return style.Render(string(field.runes))
	}
	cursorStyle := lipgloss.NewStyle().Reverse(true)
	if field.cursor >= len(field.runes) {
		return style.Render(string(field.runes)) + cursorStyle.Render(" ")
	}
	return style.Render(string(field.runes[:field.cursor])) +
		cursorStyle.Render(string(field.runes[field.cursor])) +
		style.Render(string(field.runes[field.cursor+1:]))
}
