// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/ticketdesk/lib/clock"
	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
	"github.com/bureau-foundation/ticketdesk/lib/tui"
)

// FocusRegion identifies which part of the console receives key
// presses.
type FocusRegion int

const (
	// FocusList routes keys to the ticket table.
	FocusList FocusRegion = iota

	// FocusSearch routes keys to the sequence-number search field.
	FocusSearch

	// FocusDropdown routes keys to the open status or options menu.
	FocusDropdown

	// FocusGenerator routes keys to the generator modal.
	FocusGenerator
)

// Dropdown menu identifiers.
const (
	menuStatus  = "status"
	menuOptions = "options"
)

// Options configures a Model. Zero values select defaults.
type Options struct {
	// Context bounds every backend call the console makes. Defaults
	// to context.Background().
	Context context.Context

	// Clock stamps optimistic deactivation times. Defaults to
	// clock.Real().
	Clock clock.Clock

	// Query is the initial search/filter/sort/page size selection.
	Query ticketview.Query

	// DefaultCount is the generator's starting count.
	DefaultCount int

	// Location is the time zone timestamps are shown in. Defaults to
	// time.Local.
	Location *time.Location

	// Logger receives diagnostics for failed backend calls. Defaults
	// to slog.Default().
	Logger *slog.Logger
}

// Model is the top-level bubbletea model for the ticket console.
type Model struct {
	ctx      context.Context
	backend  Backend
	theme    Theme
	keys     KeyMap
	location *time.Location
	logger   *slog.Logger

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	list   *ticketview.List
	cursor int // Row index within the current page.
	focus  FocusRegion

	search         tui.TextField
	activeDropdown *tui.DropdownOverlay

	generator      *ticketview.Generator
	countField     tui.TextField
	lastSubmission uint64
	presetIndex    int

	spinner spinner.Model

	// tick schedules delayed messages; tea.Tick outside tests.
	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

	// Status bar log message, cleared by logRecordFadeMsg.
	statusMessage  string
	statusLevel    slog.Level
	statusSequence uint64
}

// NewModel creates a console over backend. The first fetch starts in
// Init.
func NewModel(backend Backend, options Options) Model {
	ctx := options.Context
	if ctx == nil {
		ctx = context.Background()
	}
	location := options.Location
	if location == nil {
		location = time.Local
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	generator := ticketview.NewGenerator(options.DefaultCount)
	model := Model{
		ctx:       ctx,
		backend:   backend,
		theme:     DefaultTheme,
		keys:      DefaultKeyMap,
		location:  location,
		logger:    logger,
		list:      ticketview.NewList(options.Clock, options.Query),
		search:    tui.TextField{Accept: tui.DigitsOnly, Limit: 7},
		generator: generator,
		countField: tui.TextField{
			Accept: tui.DigitsOnly,
			Limit:  len(strconv.Itoa(ticketview.MaxCount)),
		},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		tick:    tea.Tick,
	}
	model.search.SetValue(model.list.Query().Search)
	model.countField.SetValue(generator.Input())
	return model
}

// Init implements tea.Model: the initial fetch.
func (model Model) Init() tea.Cmd {
	return reload
}

// Update implements tea.Model. Key presses are routed by focus region;
// backend results are folded into the list and generator state.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		switch model.focus {
		case FocusSearch:
			return model.handleSearchKeys(message)
		case FocusDropdown:
			return model.handleDropdownKeys(message)
		case FocusGenerator:
			return model.handleGeneratorKeys(message)
		default:
			return model.handleListKeys(message)
		}

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true

	case reloadMsg:
		return model, model.startFetch()

	case ticketsLoadedMsg:
		if !model.list.ApplyFetch(message.generation, message.tickets, message.err) {
			return model, nil
		}
		model.clampCursor()

	case ticketsGeneratedMsg:
		return model.handleGenerated(message)

	case generatorDismissMsg:
		if model.generator.Dismiss(message.submission) && model.focus == FocusGenerator {
			model.focus = FocusList
		}

	case deactivateResultMsg:
		model.list.CompleteDeactivate(message.id, message.err)
		model.clampCursor()

	case logRecordMsg:
		model.statusSequence++
		model.statusMessage = message.Summary
		model.statusLevel = message.Level
		sequence := model.statusSequence
		return model, model.tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{sequence: sequence}
		})

	case logRecordFadeMsg:
		if message.sequence == model.statusSequence {
			model.statusMessage = ""
		}

	case spinner.TickMsg:
		if !model.busy() {
			return model, nil
		}
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd
	}
	return model, nil
}

// busy reports whether any backend call is in flight, which keeps the
// spinner running.
func (model Model) busy() bool {
	return model.list.Loading() || model.list.PendingCount() > 0 || model.generator.Busy()
}

// startFetch begins a fetch and returns the command that performs it.
func (model *Model) startFetch() tea.Cmd {
	generation := model.list.BeginFetch()
	return tea.Batch(fetchTickets(model.ctx, model.backend, model.logger, generation), model.spinner.Tick)
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.list.View().Page.Rows)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.PreviousPage):
		model.list.PreviousPage()
		model.cursor = 0

	case key.Matches(message, model.keys.NextPage):
		model.list.NextPage()
		model.cursor = 0

	case key.Matches(message, model.keys.FirstPage):
		model.list.SetPage(1)
		model.cursor = 0

	case key.Matches(message, model.keys.LastPage):
		model.list.SetPage(model.list.View().Page.TotalPages)
		model.cursor = 0

	case key.Matches(message, model.keys.Search):
		model.search.SetValue(model.list.Query().Search)
		model.focus = FocusSearch

	case key.Matches(message, model.keys.ClearSearch):
		if model.list.Query().Search != "" {
			model.setSearch("")
		} else {
			model.list.ClearError()
		}

	case key.Matches(message, model.keys.StatusMenu):
		model.openStatusMenu()

	case key.Matches(message, model.keys.OptionsMenu):
		model.openOptionsMenu()

	case key.Matches(message, model.keys.MarkUsed):
		return model, model.markSelectedUsed()

	case key.Matches(message, model.keys.Generate):
		model.openGenerator()

	case key.Matches(message, model.keys.Refresh):
		return model, model.startFetch()
	}
	return model, nil
}

// selectedRow returns the highlighted row of the current page.
func (model Model) selectedRow() (ticketview.Row, bool) {
	rows := model.list.View().Page.Rows
	if model.cursor < 0 || model.cursor >= len(rows) {
		return ticketview.Row{}, false
	}
	return rows[model.cursor], true
}

// markSelectedUsed starts the deactivation of the highlighted ticket.
// Used tickets and tickets already being marked are ignored.
func (model *Model) markSelectedUsed() tea.Cmd {
	row, ok := model.selectedRow()
	if !ok || !model.list.BeginDeactivate(row.ID) {
		return nil
	}
	return tea.Batch(deactivateTicket(model.ctx, model.backend, model.logger, row.ID), model.spinner.Tick)
}

// clampCursor keeps the cursor on an existing row after the page
// contents change.
func (model *Model) clampCursor() {
	rows := len(model.list.View().Page.Rows)
	model.cursor = max(0, min(model.cursor, rows-1))
}

func (model *Model) setSearch(value string) {
	model.search.SetValue(value)
	model.list.SetSearch(value)
	model.cursor = 0
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.setSearch("")
		model.focus = FocusList
	case tea.KeyEnter:
		model.focus = FocusList
	default:
		if model.search.Update(message) {
			model.list.SetSearch(model.search.Value())
			model.cursor = 0
		}
	}
	return model, nil
}

// Dropdown anchors: both menus open below the toolbar line.
const dropdownAnchorY = 2

func (model *Model) openStatusMenu() {
	current := model.list.Query().Status
	options := make([]tui.DropdownOption, 0, len(ticketview.StatusFilters))
	for _, filter := range ticketview.StatusFilters {
		options = append(options, tui.DropdownOption{
			Label:   filter.Label(),
			Value:   string(filter),
			Checked: filter == current,
		})
	}
	model.activeDropdown = tui.NewDropdown(menuStatus, options, model.statusAnchorX(), dropdownAnchorY)
	model.focus = FocusDropdown
}

func (model *Model) openOptionsMenu() {
	query := model.list.Query()
	options := []tui.DropdownOption{{Label: "Sort", Heading: true}}
	for _, order := range []ticketview.SortOrder{ticketview.SortAscending, ticketview.SortDescending} {
		options = append(options, tui.DropdownOption{
			Label:   order.Label(),
			Value:   "sort:" + string(order),
			Checked: order == query.Sort,
		})
	}
	options = append(options, tui.DropdownOption{Label: "Items per page", Heading: true})
	for _, size := range ticketview.PageSizes {
		options = append(options, tui.DropdownOption{
			Label:   strconv.Itoa(size),
			Value:   "size:" + strconv.Itoa(size),
			Checked: size == query.PageSize,
		})
	}
	model.activeDropdown = tui.NewDropdown(menuOptions, options, model.optionsAnchorX(), dropdownAnchorY)
	// Open on the sort entry rather than the checked page size.
	for index, option := range options {
		if option.Checked && option.Value == "sort:"+string(query.Sort) {
			model.activeDropdown.Cursor = index
		}
	}
	model.focus = FocusDropdown
}

func (model Model) handleDropdownKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.activeDropdown == nil {
		model.focus = FocusList
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Cancel), key.Matches(message, model.keys.Quit):
		model.dismissDropdown()

	case key.Matches(message, model.keys.Up):
		model.activeDropdown.MoveUp()

	case key.Matches(message, model.keys.Down):
		model.activeDropdown.MoveDown()

	case key.Matches(message, model.keys.Confirm):
		menu := model.activeDropdown.Menu
		selected := model.activeDropdown.Selected()
		model.dismissDropdown()
		model.applyMenuSelection(menu, selected.Value)
	}
	return model, nil
}

// applyMenuSelection performs the list change a menu entry stands for.
func (model *Model) applyMenuSelection(menu, value string) {
	switch menu {
	case menuStatus:
		filter, err := ticketview.ParseStatusFilter(value)
		if err != nil {
			return
		}
		model.list.SetStatusFilter(filter)
		model.cursor = 0
	case menuOptions:
		if value, ok := strings.CutPrefix(value, "sort:"); ok {
			order, err := ticketview.ParseSortOrder(value)
			if err != nil {
				return
			}
			model.list.SetSortOrder(order)
		}
		if value, ok := strings.CutPrefix(value, "size:"); ok {
			size, err := strconv.Atoi(value)
			if err != nil {
				return
			}
			if err := model.list.SetPageSize(size); err != nil {
				return
			}
			model.cursor = 0
		}
	}
	model.clampCursor()
}

func (model *Model) dismissDropdown() {
	model.activeDropdown = nil
	model.focus = FocusList
}
