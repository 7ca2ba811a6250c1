// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestDropdown_CursorSkipsHeadings(t *testing.T) {
	dropdown := NewDropdown("options", []DropdownOption{
		{Label: "Sort", Heading: true},
		{Label: "First Generated", Value: "asc", Checked: true},
		{Label: "Items per page", Heading: true},
		{Label: "6", Value: "6"},
		{Label: "12", Value: "12", Checked: true},
	}, 0, 0)

	if got := dropdown.Selected().Value; got != "asc" {
		t.Fatalf("initial selection = %q, want asc", got)
	}
	dropdown.MoveDown()
	if got := dropdown.Selected().Value; got != "6" {
		t.Errorf("after down = %q, want 6", got)
	}
	dropdown.MoveDown()
	dropdown.MoveDown()
	if got := dropdown.Selected().Value; got != "asc" {
		t.Errorf("wrapped selection = %q, want asc", got)
	}
	dropdown.MoveUp()
	if got := dropdown.Selected().Value; got != "12" {
		t.Errorf("wrap upward = %q, want 12", got)
	}
}

func TestDropdown_RenderWidth(t *testing.T) {
	dropdown := NewDropdown("status", []DropdownOption{
		{Label: "All Status", Value: "all", Checked: true},
		{Label: "Active", Value: "active"},
	}, 0, 0)
	lines := dropdown.Render(DefaultTheme)
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines", len(lines))
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width != dropdown.Width() {
			t.Errorf("line %d width = %d, want %d", index, width, dropdown.Width())
		}
	}
	if plain := ansi.Strip(lines[0]); !strings.Contains(plain, "> ✓ All Status") {
		t.Errorf("selected line = %q", plain)
	}
}

func TestSpliceOverlay(t *testing.T) {
	view := "0123456789\nabcdefghij\nshort"
	result := SpliceOverlay(view, []string{"XX", "YY", "ZZ"}, 7, 0)
	lines := strings.Split(ansi.Strip(result), "\n")
	want := []string{"0123456XX9", "abcdefgYYj", "short  ZZ"}
	for index := range want {
		if lines[index] != want[index] {
			t.Errorf("line %d = %q, want %q", index, lines[index], want[index])
		}
	}
}

func TestCenterAnchor(t *testing.T) {
	if x, y := CenterAnchor(80, 24, 20, 4); x != 30 || y != 10 {
		t.Errorf("CenterAnchor = %d,%d", x, y)
	}
	if x, y := CenterAnchor(10, 3, 20, 8); x != 0 || y != 0 {
		t.Errorf("oversized box anchor = %d,%d", x, y)
	}
}

func TestModal_Render(t *testing.T) {
	lines, anchorX, anchorY := Modal{
		Title:  "Generate Tickets",
		Body:   []string{"Number of tickets: 10"},
		Footer: "enter confirm  esc close",
	}.Render(DefaultTheme, 80, 24)

	plain := ansi.Strip(strings.Join(lines, "\n"))
	for _, want := range []string{"Generate Tickets", "Number of tickets: 10", "enter confirm"} {
		if !strings.Contains(plain, want) {
			t.Errorf("modal missing %q:\n%s", want, plain)
		}
	}
	width := ansi.StringWidth(lines[0])
	for index, line := range lines {
		if ansi.StringWidth(line) != width {
			t.Errorf("line %d width %d, want %d", index, ansi.StringWidth(line), width)
		}
	}
	if anchorX != (80-width)/2 || anchorY != (24-len(lines))/2 {
		t.Errorf("anchor = %d,%d", anchorX, anchorY)
	}
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestTextField_Editing(t *testing.T) {
	field := TextField{Accept: DigitsOnly, Limit: 4}
	if !field.Update(runes("12a3")) {
		t.Fatal("typing digits reported no change")
	}
	if field.Value() != "123" {
		t.Fatalf("Value = %q, want 123", field.Value())
	}
	field.Update(runes("45"))
	if field.Value() != "1234" {
		t.Errorf("limit not applied: %q", field.Value())
	}

	field.Update(tea.KeyMsg{Type: tea.KeyLeft})
	field.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if field.Value() != "124" {
		t.Errorf("backspace mid-field = %q, want 124", field.Value())
	}
	field.Update(tea.KeyMsg{Type: tea.KeyHome})
	field.Update(tea.KeyMsg{Type: tea.KeyDelete})
	if field.Value() != "24" {
		t.Errorf("delete at start = %q, want 24", field.Value())
	}
	if field.Update(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Error("backspace at start reported a change")
	}
	field.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	if field.Value() != "" {
		t.Errorf("ctrl+u left %q", field.Value())
	}
}

func TestTextField_RenderCursor(t *testing.T) {
	var field TextField
	field.SetValue("42")
	plain := ansi.Strip(field.Render(lipgloss.NewStyle(), true))
	if plain != "42 " {
		t.Errorf("focused render = %q, want trailing cursor cell", plain)
	}
	if plain := ansi.Strip(field.Render(lipgloss.NewStyle(), false)); plain != "42" {
		t.Errorf("unfocused render = %q", plain)
	}
}
