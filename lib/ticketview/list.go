// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketview

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/ticketdesk/lib/clock"
	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

// Stats counts tickets across the whole cache, ignoring filters.
type Stats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Used   int `json:"used"`
}

// String renders the header summary.
func (stats Stats) String() string {
	return fmt.Sprintf("Total: %d | Active: %d | Used: %d", stats.Total, stats.Active, stats.Used)
}

// CountStats tallies tickets by status.
func CountStats(tickets []ticket.Ticket) Stats {
	stats := Stats{Total: len(tickets)}
	for _, item := range tickets {
		switch item.Status {
		case ticket.StatusActive:
			stats.Active++
		case ticket.StatusUsed:
			stats.Used++
		}
	}
	return stats
}

// View is everything the list renders at one instant.
type View struct {
	Page  Page
	Query Query
	Stats Stats

	// Empty is the empty-state text when Page has no rows: one
	// message for an empty cache, another when filters exclude
	// everything.
	Empty string

	// Error is the banner text, empty when there is none.
	Error string

	Loading bool
}

// List is the ticket list state: the fetched cache, the operator's
// query, the set of tickets with a deactivation in flight, the error
// banner and the fetch bookkeeping.
//
// Fetches are numbered. A fetch result older than the newest applied
// result is discarded, so overlapping refreshes cannot roll the cache
// back to an older snapshot.
type List struct {
	clock   clock.Clock
	tickets []ticket.Ticket
	query   Query
	pending map[string]struct{}
	err     string
	loaded  bool

	// issued is the generation handed out by the latest BeginFetch;
	// applied is the generation of the newest result accepted.
	issued  uint64
	applied uint64
}

// NewList returns an empty list using initial as the starting query.
// Unset or unsupported query fields take their defaults. The clock
// stamps optimistic deactivation times.
func NewList(clk clock.Clock, initial Query) *List {
	if clk == nil {
		clk = clock.Real()
	}
	return &List{
		clock:   clk,
		tickets: []ticket.Ticket{},
		query:   initial.normalized(),
		pending: make(map[string]struct{}),
	}
}

// Tickets returns a copy of the cache in fetch order.
func (list *List) Tickets() []ticket.Ticket {
	return slices.Clone(list.tickets)
}

// Query returns the current selection.
func (list *List) Query() Query {
	return list.query
}

// SetSearch sets the sequence-number search and returns to page 1.
func (list *List) SetSearch(search string) {
	list.query.Search = search
	list.query.Page = 1
}

// SetStatusFilter sets the status filter and returns to page 1.
func (list *List) SetStatusFilter(filter StatusFilter) {
	if !slices.Contains(StatusFilters, filter) {
		filter = FilterAll
	}
	list.query.Status = filter
	list.query.Page = 1
}

// SetPageSize changes the page size and returns to page 1. Sizes not
// in PageSizes are rejected.
func (list *List) SetPageSize(size int) error {
	if !ValidPageSize(size) {
		return fmt.Errorf("unsupported page size %d (expected one of %v)", size, PageSizes)
	}
	list.query.PageSize = size
	list.query.Page = 1
	return nil
}

// SetSortOrder changes the sort order. The current page is kept.
func (list *List) SetSortOrder(order SortOrder) {
	if order != SortDescending {
		order = SortAscending
	}
	list.query.Sort = order
}

// ToggleSort flips between oldest-first and newest-first. The current
// page is kept.
func (list *List) ToggleSort() {
	list.query.Sort = list.query.Sort.Toggled()
}

// SetPage moves to page, clamped to the pages that exist.
func (list *List) SetPage(page int) {
	list.query.Page = clampPage(page, list.derive().TotalPages)
}

// NextPage advances one page unless already on the last.
func (list *List) NextPage() {
	list.SetPage(list.query.Page + 1)
}

// PreviousPage goes back one page unless already on the first.
func (list *List) PreviousPage() {
	list.SetPage(list.query.Page - 1)
}

// BeginFetch records the start of a fetch: the error banner clears,
// the list reports loading, and the returned generation must be
// passed to ApplyFetch with the result.
func (list *List) BeginFetch() uint64 {
	list.issued++
	list.err = ""
	return list.issued
}

// ApplyFetch records the outcome of the fetch numbered generation. On
// success the cache is replaced; on failure the error banner is set
// and the previous cache kept. Returns false, changing nothing, when
// a newer fetch has already been applied.
func (list *List) ApplyFetch(generation uint64, tickets []ticket.Ticket, err error) bool {
	if generation <= list.applied {
		return false
	}
	list.applied = generation
	list.loaded = true

	if err != nil {
		list.err = LoadErrorMessage
		return true
	}
	if tickets == nil {
		tickets = []ticket.Ticket{}
	}
	list.tickets = slices.Clone(tickets)
	list.query.Page = clampPage(list.query.Page, list.derive().TotalPages)
	return true
}

// Loading reports whether the newest fetch has not completed yet.
func (list *List) Loading() bool {
	return list.issued > list.applied
}

// Loaded reports whether any fetch has completed.
func (list *List) Loaded() bool {
	return list.loaded
}

// Err returns the error banner text, empty when there is none.
func (list *List) Err() string {
	return list.err
}

// ClearError dismisses the error banner.
func (list *List) ClearError() {
	list.err = ""
}

// CanDeactivate reports whether a mark-as-used action may start for
// id: the ticket is cached, still active, and has no deactivation in
// flight.
func (list *List) CanDeactivate(id string) bool {
	if _, inFlight := list.pending[id]; inFlight {
		return false
	}
	index := list.indexOf(id)
	return index >= 0 && list.tickets[index].IsActive()
}

// BeginDeactivate adds id to the pending set. Returns false, changing
// nothing, when CanDeactivate(id) is false.
func (list *List) BeginDeactivate(id string) bool {
	if !list.CanDeactivate(id) {
		return false
	}
	list.pending[id] = struct{}{}
	return true
}

// CompleteDeactivate records the outcome of the deactivation of id
// and removes it from the pending set. On success the cached ticket
// becomes used, stamped with the local clock; the backend's own
// timestamp is not consulted. On failure the error banner is set and
// the ticket left as it was.
func (list *List) CompleteDeactivate(id string, err error) {
	delete(list.pending, id)
	if err != nil {
		list.err = DeactivateErrorMessage
		return
	}
	if index := list.indexOf(id); index >= 0 {
		list.tickets[index] = list.tickets[index].MarkUsed(list.clock.Now())
	}
}

// IsPending reports whether a deactivation of id is in flight.
func (list *List) IsPending(id string) bool {
	_, inFlight := list.pending[id]
	return inFlight
}

// PendingCount is the number of deactivations in flight.
func (list *List) PendingCount() int {
	return len(list.pending)
}

// Stats counts the whole cache.
func (list *List) Stats() Stats {
	return CountStats(list.tickets)
}

// View derives the current page and everything around it.
func (list *List) View() View {
	page := list.derive()
	view := View{
		Page:    page,
		Query:   list.query,
		Stats:   list.Stats(),
		Error:   list.err,
		Loading: list.Loading(),
	}
	view.Query.Page = page.Number
	if page.TotalRows == 0 {
		if len(list.tickets) == 0 {
			view.Empty = NoTicketsMessage
		} else {
			view.Empty = NoMatchesMessage
		}
	}
	return view
}

func (list *List) derive() Page {
	return Derive(list.tickets, list.query)
}

func (list *List) indexOf(id string) int {
	return slices.IndexFunc(list.tickets, func(item ticket.Ticket) bool {
		return item.ID == id
	})
}
