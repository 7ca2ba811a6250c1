// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
	"github.com/bureau-foundation/ticketdesk/lib/tui"
)

// Table column widths, in columns, including trailing gutter.
const (
	columnCursor      = 2
	columnNumber      = 7
	columnID          = 10
	columnStatus      = 8
	columnCreated     = 21
	columnDeactivated = 21
)

// chromeHeight counts the fixed lines around the table rows: header,
// toolbar, banner, column titles, rule, footer, rule, status bar.
const chromeHeight = 8

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	view := model.list.View()
	sections := []string{
		model.renderHeader(view),
		model.renderToolbar(view),
		model.renderBanner(view),
		model.renderColumnTitles(),
		model.renderRule(),
	}
	rows := model.renderRows(view)
	sections = append(sections, rows...)
	// Fill the screen so the status bar sits on the last line and
	// centered overlays land inside the view.
	if filler := model.height - chromeHeight - len(rows); filler > 0 {
		sections = append(sections, make([]string, filler)...)
	}
	sections = append(sections,
		model.renderFooter(view),
		model.renderRule(),
		model.renderStatusBar(),
	)
	output := strings.Join(sections, "\n")

	if model.activeDropdown != nil {
		output = tui.SpliceOverlay(output, model.activeDropdown.Render(model.theme),
			model.activeDropdown.AnchorX, model.activeDropdown.AnchorY)
	}
	if model.focus == FocusGenerator {
		lines, anchorX, anchorY := model.renderGenerator()
		lineCount := strings.Count(output, "\n") + 1
		anchorY = max(0, min(anchorY, lineCount-len(lines)))
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	return output
}

// renderHeader renders the title, the spinner while anything is in
// flight, and the whole-collection stats on the right.
func (model Model) renderHeader(view ticketview.View) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	statsStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	left := " " + titleStyle.Render("Ticket Console")
	if model.busy() {
		left += " " + model.spinner.View()
	}
	right := statsStyle.Render(view.Stats.String()) + " "
	return joinEnds(left, right, model.width)
}

// toolbarSegments returns the plain toolbar fields in display order:
// search, status filter, sort order, page size.
func (model Model) toolbarSegments(view ticketview.View) []string {
	return []string{
		"Search #: ",
		"Status: " + view.Query.Status.Label() + " ▾",
		"Sort: " + view.Query.Sort.Label(),
		"Per page: " + strconv.Itoa(view.Query.PageSize),
	}
}

const toolbarSeparator = "   "

// segmentX returns the screen column where toolbar segment index
// starts, given the rendered search field width.
func (model Model) segmentX(view ticketview.View, index int) int {
	segments := model.toolbarSegments(view)
	x := 1 + ansi.StringWidth(segments[0]) + model.searchFieldWidth() + len(toolbarSeparator)
	for position := 1; position < index; position++ {
		x += ansi.StringWidth(segments[position]) + len(toolbarSeparator)
	}
	return x
}

func (model Model) statusAnchorX() int {
	return model.segmentX(model.list.View(), 1)
}

func (model Model) optionsAnchorX() int {
	return model.segmentX(model.list.View(), 2)
}

// searchFieldWidth is the width the search field occupies: its text
// plus the cursor cell, at least four columns.
func (model Model) searchFieldWidth() int {
	return max(4, len(model.search.Value())+1)
}

func (model Model) renderToolbar(view ticketview.View) string {
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)

	segments := model.toolbarSegments(view)
	field := model.search.Render(valueStyle, model.focus == FocusSearch)
	if gap := model.searchFieldWidth() - ansi.StringWidth(field); gap > 0 {
		field += strings.Repeat(" ", gap)
	}

	parts := []string{labelStyle.Render(segments[0]) + field}
	for _, segment := range segments[1:] {
		label, value, _ := strings.Cut(segment, ": ")
		parts = append(parts, labelStyle.Render(label+": ")+valueStyle.Render(value))
	}
	return " " + strings.Join(parts, toolbarSeparator)
}

// renderBanner shows the list error, or a blank line so the layout
// does not shift when one appears.
func (model Model) renderBanner(view ticketview.View) string {
	if view.Error == "" {
		return ""
	}
	style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.ErrorForeground)
	return " " + style.Render("! "+view.Error)
}

func (model Model) renderColumnTitles() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.FaintText)
	line := strings.Repeat(" ", columnCursor) +
		fit("Number", columnNumber) +
		fit("ID", columnID) +
		fit("Status", columnStatus) +
		fit("Created At", columnCreated) +
		fit("Deactivated At", columnDeactivated) +
		"Action"
	return style.Render(line)
}

func (model Model) renderRule() string {
	return lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", max(0, model.width)))
}

// visibleRows is how many table rows fit on screen.
func (model Model) visibleRows() int {
	return max(1, model.height-chromeHeight)
}

// renderRows renders the page rows, scrolled to keep the cursor on
// screen when the page is taller than the terminal, or the empty
// state.
func (model Model) renderRows(view ticketview.View) []string {
	if len(view.Page.Rows) == 0 {
		message := view.Empty
		if view.Loading && !model.list.Loaded() {
			message = "Loading tickets..."
		}
		style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		return []string{"", lipgloss.PlaceHorizontal(max(model.width, 1), lipgloss.Center, style.Render(message))}
	}

	visible := model.visibleRows()
	offset := 0
	if model.cursor >= visible {
		offset = model.cursor - visible + 1
	}
	end := min(len(view.Page.Rows), offset+visible)

	lines := make([]string, 0, end-offset)
	for index := offset; index < end; index++ {
		lines = append(lines, model.renderRow(view.Page.Rows[index], index == model.cursor))
	}
	return lines
}

func (model Model) renderRow(row ticketview.Row, selected bool) string {
	theme := model.theme
	statusStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(row.Status))
	textStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	marker := "  "
	if selected {
		marker = "▸ "
	}

	action := ""
	actionStyle := textStyle
	switch {
	case model.list.IsPending(row.ID):
		action = "Marking..."
		actionStyle = lipgloss.NewStyle().Foreground(theme.PendingText)
	case row.IsActive():
		action = "Mark as Used"
	}

	cells := marker +
		textStyle.Render(fit("#"+strconv.Itoa(row.Sequence), columnNumber)) +
		faintStyle.Render(fit(row.ShortID(), columnID)) +
		statusStyle.Render(fit(string(row.Status), columnStatus)) +
		textStyle.Render(fit(ticket.FormatTimestamp(row.CreatedAt, model.location), columnCreated)) +
		textStyle.Render(fit(row.FormatDeactivatedAt(model.location), columnDeactivated)) +
		actionStyle.Render(action)

	if !selected {
		return cells
	}
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.SelectedForeground)
	if gap := model.width - ansi.StringWidth(cells); gap > 0 {
		cells += strings.Repeat(" ", gap)
	}
	return selectedStyle.Render(ansi.Strip(cells))
}

// renderFooter shows "Showing a-b of n tickets" and the page links
// when there is more than one page.
func (model Model) renderFooter(view ticketview.View) string {
	page := view.Page
	if page.TotalRows == 0 {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	left := " " + style.Render(fmt.Sprintf("Showing %d-%d of %d tickets", page.First, page.Last, page.TotalRows))

	links := page.Links()
	if len(links) == 0 {
		return left
	}
	currentStyle := lipgloss.NewStyle().Bold(true).Reverse(true)
	linkStyle := lipgloss.NewStyle().Foreground(model.theme.NormalText)
	disabledStyle := lipgloss.NewStyle().Foreground(model.theme.BorderColor)

	parts := make([]string, 0, len(links)+2)
	if page.HasPrevious() {
		parts = append(parts, linkStyle.Render("‹ Previous"))
	} else {
		parts = append(parts, disabledStyle.Render("‹ Previous"))
	}
	for _, link := range links {
		switch {
		case link.Ellipsis:
			parts = append(parts, style.Render("…"))
		case link.Current:
			parts = append(parts, currentStyle.Render(" "+strconv.Itoa(link.Page)+" "))
		default:
			parts = append(parts, linkStyle.Render(strconv.Itoa(link.Page)))
		}
	}
	if page.HasNext() {
		parts = append(parts, linkStyle.Render("Next ›"))
	} else {
		parts = append(parts, disabledStyle.Render("Next ›"))
	}
	return joinEnds(left, strings.Join(parts, " ")+" ", model.width)
}

// renderStatusBar shows the latest log record while it is fresh and
// the key help otherwise.
func (model Model) renderStatusBar() string {
	if model.statusMessage != "" {
		color := model.theme.PendingText
		if model.statusLevel >= slog.LevelError {
			color = model.theme.ErrorForeground
		}
		text := " " + model.statusMessage
		return lipgloss.NewStyle().Foreground(color).Render(truncate(text, model.width))
	}

	help := " q quit  ↑↓ select  ←→ page  / search  f status  o sort/size  u mark used  g generate  r refresh"
	switch model.focus {
	case FocusSearch:
		help = " [SEARCH] type a ticket number  Enter done  Esc clear"
	case FocusDropdown:
		help = " [SELECT] ↑↓ choose  Enter apply  Esc close"
	case FocusGenerator:
		help = " [GENERATE]"
	}
	return lipgloss.NewStyle().Foreground(model.theme.HelpText).Render(truncate(help, model.width))
}

// fit pads or truncates plain text to exactly width columns.
func fit(text string, width int) string {
	if ansi.StringWidth(text) >= width {
		return ansi.Truncate(text, width-1, "…") + " "
	}
	return text + strings.Repeat(" ", width-ansi.StringWidth(text))
}

// truncate shortens text to width columns with an ellipsis.
func truncate(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}

// joinEnds places left and right at the edges of a line of width
// columns, dropping the right part when both do not fit.
func joinEnds(left, right string, width int) string {
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
