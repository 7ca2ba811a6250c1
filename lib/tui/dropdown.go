// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DropdownOption is a single selectable item in a dropdown overlay.
type DropdownOption struct {
	Label string // Display text shown in the dropdown.
	Value string // Value handed back to the owner on selection.

	// Checked marks the option that reflects current state (the
	// active filter, the current page size).
	Checked bool

	// Heading options are section labels: rendered faint and skipped
	// by cursor movement.
	Heading bool
}

// DropdownOverlay renders a floating menu anchored at a screen
// position. The model owns the dropdown and routes keys to it while
// it is open (up/down to navigate, enter to select, escape to
// dismiss).
type DropdownOverlay struct {
	Options []DropdownOption
	Cursor  int
	AnchorX int    // Screen X coordinate of the dropdown's top-left corner.
	AnchorY int    // Screen Y coordinate of the dropdown's top-left corner.
	Menu    string // Which menu this is (e.g. "status", "options").
}

// NewDropdown creates a dropdown with the cursor on the first checked
// selectable option, or the first selectable option when none is
// checked.
func NewDropdown(menu string, options []DropdownOption, anchorX, anchorY int) *DropdownOverlay {
	dropdown := &DropdownOverlay{Options: options, AnchorX: anchorX, AnchorY: anchorY, Menu: menu, Cursor: -1}
	for index, option := range options {
		if option.Heading {
			continue
		}
		if dropdown.Cursor < 0 {
			dropdown.Cursor = index
		}
		if option.Checked {
			dropdown.Cursor = index
			break
		}
	}
	if dropdown.Cursor < 0 {
		dropdown.Cursor = 0
	}
	return dropdown
}

// MoveUp moves the cursor to the previous selectable option, wrapping
// to the bottom.
func (dropdown *DropdownOverlay) MoveUp() {
	dropdown.move(-1)
}

// MoveDown moves the cursor to the next selectable option, wrapping
// to the top.
func (dropdown *DropdownOverlay) MoveDown() {
	dropdown.move(+1)
}

func (dropdown *DropdownOverlay) move(delta int) {
	count := len(dropdown.Options)
	if count == 0 {
		return
	}
	cursor := dropdown.Cursor
	for range count {
		cursor = (cursor + delta + count) % count
		if !dropdown.Options[cursor].Heading {
			dropdown.Cursor = cursor
			return
		}
	}
}

// Selected returns the currently highlighted option.
func (dropdown *DropdownOverlay) Selected() DropdownOption {
	return dropdown.Options[dropdown.Cursor]
}

// Width returns the total visible width of the rendered dropdown in
// columns.
func (dropdown *DropdownOverlay) Width() int {
	maxLabelWidth := 0
	for _, option := range dropdown.Options {
		maxLabelWidth = max(maxLabelWidth, ansi.StringWidth(option.Label))
	}
	// Layout: " > ✓ LABEL " is 5 columns of prefix (space, marker,
	// space, check, space), then the label, then 1 column of padding.
	return 5 + maxLabelWidth + 1
}

// Render produces the dropdown lines for overlay splicing. Every line
// has the same visible width and a solid background; the highlighted
// option uses the selection colors.
func (dropdown *DropdownOverlay) Render(theme Theme) []string {
	totalWidth := dropdown.Width()
	innerWidth := totalWidth - 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	headingStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.FaintText)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)

	lines := make([]string, 0, len(dropdown.Options))
	for index, option := range dropdown.Options {
		style := backgroundStyle
		var content string
		switch {
		case option.Heading:
			style = headingStyle
			content = option.Label
		default:
			marker := " "
			if index == dropdown.Cursor {
				marker = ">"
				style = selectedStyle
			}
			check := " "
			if option.Checked {
				check = "✓"
			}
			content = marker + " " + check + " " + option.Label
		}
		lines = append(lines, PadOverlayLine(style.Render(content), innerWidth, totalWidth, style))
	}
	return lines
}
