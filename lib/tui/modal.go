// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Modal is a bordered box rendered centered over the main view: a
// bold title, body lines, and a faint footer with key hints.
type Modal struct {
	Title  string
	Body   []string
	Footer string

	// Width is the inner content width. Zero sizes the box to its
	// widest line.
	Width int
}

// modalMargin keeps the box off the screen edges when possible.
const modalMargin = 2

// Render produces the modal lines and the anchor that centers them on
// a screen of the given size. Body lines may already carry styling;
// lines wider than the box are truncated with an ellipsis.
func (modal Modal) Render(theme Theme, screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth := modal.Width
	if innerWidth <= 0 {
		innerWidth = max(ansi.StringWidth(modal.Title), ansi.StringWidth(modal.Footer))
		for _, line := range modal.Body {
			innerWidth = max(innerWidth, ansi.StringWidth(line))
		}
	}
	// Border (2) and horizontal padding (2) surround the content.
	if limit := screenWidth - 4 - modalMargin*2; limit > 0 && innerWidth > limit {
		innerWidth = limit
	}

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	titleStyle := backgroundStyle.
		Bold(true).
		Foreground(theme.HeaderForeground)
	footerStyle := backgroundStyle.
		Foreground(theme.FaintText)

	fit := func(line string, style lipgloss.Style) string {
		if ansi.StringWidth(line) > innerWidth {
			line = ansi.Truncate(line, innerWidth, "…")
		}
		rendered := style.Render(line)
		if gap := innerWidth - ansi.StringWidth(rendered); gap > 0 {
			rendered += backgroundStyle.Render(strings.Repeat(" ", gap))
		}
		return rendered
	}

	inner := make([]string, 0, len(modal.Body)+4)
	inner = append(inner, fit(modal.Title, titleStyle), fit("", backgroundStyle))
	for _, line := range modal.Body {
		inner = append(inner, fit(line, backgroundStyle))
	}
	if modal.Footer != "" {
		inner = append(inner, fit("", backgroundStyle), fit(modal.Footer, footerStyle))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		BorderBackground(theme.OverlayBackground).
		Background(theme.OverlayBackground).
		Padding(0, 1)

	lines := strings.Split(borderStyle.Render(strings.Join(inner, "\n")), "\n")
	renderedWidth := 0
	if len(lines) > 0 {
		renderedWidth = ansi.StringWidth(lines[0])
	}
	anchorX, anchorY := CenterAnchor(screenWidth, screenHeight, renderedWidth, len(lines))
	return lines, anchorX, anchorY
}
