// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
	"github.com/bureau-foundation/ticketdesk/lib/tui"
)

// generatorModalWidth is the inner width of the generator modal.
const generatorModalWidth = 56

// openGenerator shows the generator modal in its editing step.
func (model *Model) openGenerator() {
	model.generator.Reset()
	model.countField.SetValue(model.generator.Input())
	model.focus = FocusGenerator
}

func (model *Model) closeGenerator() {
	model.focus = FocusList
}

func (model Model) handleGeneratorKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.generator.Phase() {
	case ticketview.PhaseEditing:
		return model.handleCountKeys(message)

	case ticketview.PhaseConfirming:
		switch {
		case key.Matches(message, model.keys.Yes):
			count, ok := model.generator.Confirm()
			if !ok {
				return model, nil
			}
			return model, tea.Batch(generateTickets(model.ctx, model.backend, model.logger, count), model.spinner.Tick)
		case key.Matches(message, model.keys.No):
			model.generator.Cancel()
		}

	case ticketview.PhaseSucceeded:
		if key.Matches(message, model.keys.Confirm) || key.Matches(message, model.keys.Cancel) {
			model.generator.Dismiss(model.lastSubmission)
			model.closeGenerator()
		}
	}
	// PhaseSubmitting accepts no input.
	return model, nil
}

// handleCountKeys edits the count while the generator is in its
// editing step.
func (model Model) handleCountKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		model.closeGenerator()

	case key.Matches(message, model.keys.Confirm):
		model.generator.SetInput(model.countField.Value())
		// Invalid input leaves the inline error on the generator and
		// dispatches nothing; the error is rendered from there.
		_, _ = model.generator.Request()

	case key.Matches(message, model.keys.NextPreset):
		model.generator.ApplyPreset(model.presetIndex)
		model.presetIndex = (model.presetIndex + 1) % len(ticketview.Presets)
		model.countField.SetValue(model.generator.Input())

	case key.Matches(message, model.keys.Increment):
		model.generator.SetInput(model.countField.Value())
		model.generator.Step(+1)
		model.countField.SetValue(model.generator.Input())

	case key.Matches(message, model.keys.Decrement):
		model.generator.SetInput(model.countField.Value())
		model.generator.Step(-1)
		model.countField.SetValue(model.generator.Input())

	default:
		if model.countField.Update(message) {
			model.generator.SetInput(model.countField.Value())
		}
	}
	return model, nil
}

// handleGenerated folds a batch outcome into the generator. Success
// reloads the list and schedules the modal's automatic dismissal.
func (model Model) handleGenerated(message ticketsGeneratedMsg) (tea.Model, tea.Cmd) {
	submission := model.generator.Complete(message.err)
	model.countField.SetValue(model.generator.Input())
	if message.err != nil {
		return model, nil
	}

	model.lastSubmission = submission
	return model, tea.Batch(
		reload,
		model.tick(ticketview.SuccessDismissDelay, func(time.Time) tea.Msg {
			return generatorDismissMsg{submission: submission}
		}),
	)
}

// renderGenerator produces the modal lines and their anchor.
func (model Model) renderGenerator() ([]string, int, int) {
	theme := model.theme
	background := lipgloss.NewStyle().Background(theme.OverlayBackground).Foreground(theme.OverlayForeground)
	faint := background.Foreground(theme.FaintText)

	modal := tui.Modal{Title: "Generate Tickets", Width: generatorModalWidth}

	switch model.generator.Phase() {
	case ticketview.PhaseEditing:
		presets := make([]string, len(ticketview.Presets))
		for index, preset := range ticketview.Presets {
			presets[index] = strconv.Itoa(preset)
		}
		modal.Body = []string{
			"Enter the number of tickets you want to generate",
			"",
			"Number of Tickets: " + model.countField.Render(background.Bold(true), true),
			faint.Render(fmt.Sprintf("Presets: %s  (range %d-%d)",
				strings.Join(presets, "  "), ticketview.MinCount, ticketview.MaxCount)),
		}
		if line := model.generatorMessageLine(); line != "" {
			modal.Body = append(modal.Body, "", line)
		}
		modal.Footer = "Enter generate  Tab preset  +/- adjust  Esc close"

	case ticketview.PhaseConfirming:
		modal.Title = "Are you sure?"
		modal.Body = wrapText(model.generator.ConfirmationText(), generatorModalWidth)
		modal.Footer = "y generate  n cancel"

	case ticketview.PhaseSubmitting:
		modal.Body = []string{model.spinner.View() + " Generating..."}

	case ticketview.PhaseSucceeded:
		modal.Body = []string{model.generatorMessageLine()}
		modal.Footer = "Enter/Esc close"
	}

	return modal.Render(theme, model.width, model.height)
}

// generatorMessageLine renders the generator's status line in the
// color of its kind.
func (model Model) generatorMessageLine() string {
	text, kind := model.generator.Message()
	if text == "" {
		return ""
	}
	style := lipgloss.NewStyle().Background(model.theme.OverlayBackground)
	switch kind {
	case ticketview.MessageError:
		style = style.Foreground(model.theme.ErrorForeground)
	case ticketview.MessageSuccess:
		style = style.Foreground(model.theme.SuccessForeground)
	}
	return style.Render(text)
}

// wrapText breaks text into lines of at most width columns on word
// boundaries.
func wrapText(text string, width int) []string {
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && lipgloss.Width(current.String())+1+lipgloss.Width(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
