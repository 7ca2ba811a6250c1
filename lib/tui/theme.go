// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

// Theme defines the color palette of the console. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Ticket status colors.
	StatusActive lipgloss.Color
	StatusUsed   lipgloss.Color

	// PendingText marks rows with a deactivation in flight.
	PendingText lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Banners.
	ErrorForeground   lipgloss.Color
	SuccessForeground lipgloss.Color

	// Floating boxes: dropdowns and modals.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// StatusColor returns the color for a ticket status, FaintText for
// unknown values.
func (theme Theme) StatusColor(status ticket.Status) lipgloss.Color {
	switch status {
	case ticket.StatusActive:
		return theme.StatusActive
	case ticket.StatusUsed:
		return theme.StatusUsed
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusActive: lipgloss.Color("114"), // green
	StatusUsed:   lipgloss.Color("245"), // gray

	PendingText: lipgloss.Color("220"), // amber

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorForeground:   lipgloss.Color("196"),
	SuccessForeground: lipgloss.Color("114"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}
