// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketview

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

// Row is a ticket annotated with its sequence number: the 1-based
// position of the ticket in fetch order. Sequence numbers are
// recomputed on every fetch and never sent to the backend.
type Row struct {
	ticket.Ticket
	Sequence int
}

// StatusFilter narrows the list by lifecycle state.
type StatusFilter string

const (
	FilterAll    StatusFilter = "all"
	FilterActive StatusFilter = "active"
	FilterUsed   StatusFilter = "used"
)

// StatusFilters lists the filters in menu order.
var StatusFilters = []StatusFilter{FilterAll, FilterActive, FilterUsed}

// ParseStatusFilter converts "all", "active" or "used" to a filter.
func ParseStatusFilter(value string) (StatusFilter, error) {
	filter := StatusFilter(strings.ToLower(strings.TrimSpace(value)))
	if !slices.Contains(StatusFilters, filter) {
		return "", fmt.Errorf("unknown status filter %q (expected all, active or used)", value)
	}
	return filter, nil
}

// Matches reports whether the ticket passes the filter.
func (filter StatusFilter) Matches(item ticket.Ticket) bool {
	switch filter {
	case FilterActive:
		return item.Status == ticket.StatusActive
	case FilterUsed:
		return item.Status == ticket.StatusUsed
	default:
		return true
	}
}

// Label is the menu text for the filter.
func (filter StatusFilter) Label() string {
	switch filter {
	case FilterActive:
		return "Active"
	case FilterUsed:
		return "Used"
	default:
		return "All Status"
	}
}

// SortOrder orders rows by sequence number.
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// ParseSortOrder converts "asc" or "desc" to a sort order.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case SortAscending:
		return SortAscending, nil
	case SortDescending:
		return SortDescending, nil
	}
	return "", fmt.Errorf("unknown sort order %q (expected asc or desc)", value)
}

// Toggled returns the opposite order.
func (order SortOrder) Toggled() SortOrder {
	if order == SortDescending {
		return SortAscending
	}
	return SortDescending
}

// Label names the order by which tickets come first.
func (order SortOrder) Label() string {
	if order == SortDescending {
		return "Last Generated"
	}
	return "First Generated"
}

// PageSizes are the supported page sizes, smallest first.
var PageSizes = []int{6, 12, 24, 48}

// DefaultPageSize is the page size of a fresh list.
const DefaultPageSize = 6

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	return slices.Contains(PageSizes, size)
}

// Query is the operator's view selection over the ticket cache.
type Query struct {
	// Search is matched exactly against the decimal sequence number
	// after trimming whitespace. Empty matches every row.
	Search   string
	Status   StatusFilter
	Sort     SortOrder
	PageSize int
	// Page is 1-based. Out-of-range values are clamped when the view
	// is derived.
	Page int
}

// DefaultQuery returns the selection of a fresh list: everything,
// oldest first, six per page, first page.
func DefaultQuery() Query {
	return Query{
		Status:   FilterAll,
		Sort:     SortAscending,
		PageSize: DefaultPageSize,
		Page:     1,
	}
}

// normalized replaces unset or unsupported fields with defaults.
func (query Query) normalized() Query {
	defaults := DefaultQuery()
	if !slices.Contains(StatusFilters, query.Status) {
		query.Status = defaults.Status
	}
	if query.Sort != SortAscending && query.Sort != SortDescending {
		query.Sort = defaults.Sort
	}
	if !ValidPageSize(query.PageSize) {
		query.PageSize = defaults.PageSize
	}
	if query.Page < 1 {
		query.Page = 1
	}
	return query
}

// Annotate numbers tickets by fetch order.
func Annotate(tickets []ticket.Ticket) []Row {
	rows := make([]Row, len(tickets))
	for index, item := range tickets {
		rows[index] = Row{Ticket: item, Sequence: index + 1}
	}
	return rows
}

// Filter keeps the rows matching both the sequence-number search and
// the status filter. The input slice is not modified.
func Filter(rows []Row, search string, status StatusFilter) []Row {
	search = strings.TrimSpace(search)
	matched := make([]Row, 0, len(rows))
	for _, row := range rows {
		if search != "" && strconv.Itoa(row.Sequence) != search {
			continue
		}
		if !status.Matches(row.Ticket) {
			continue
		}
		matched = append(matched, row)
	}
	return matched
}

// Sort orders rows by sequence number in place.
func Sort(rows []Row, order SortOrder) {
	slices.SortFunc(rows, func(a, b Row) int {
		if order == SortDescending {
			return b.Sequence - a.Sequence
		}
		return a.Sequence - b.Sequence
	})
}

// Derive runs the full pipeline (annotate, filter, sort, paginate)
// over tickets in fetch order.
func Derive(tickets []ticket.Ticket, query Query) Page {
	query = query.normalized()
	rows := Filter(Annotate(tickets), query.Search, query.Status)
	Sort(rows, query.Sort)
	return Paginate(rows, query.Page, query.PageSize)
}
