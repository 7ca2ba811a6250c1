// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketview

import (
	"fmt"
	"testing"

	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

// makeTickets returns count tickets with IDs "t-1".."t-N". Tickets
// whose 1-based position is listed in used are in StatusUsed.
func makeTickets(count int, used ...int) []ticket.Ticket {
	usedSet := make(map[int]bool, len(used))
	for _, position := range used {
		usedSet[position] = true
	}
	tickets := make([]ticket.Ticket, count)
	for index := range tickets {
		status := ticket.StatusActive
		if usedSet[index+1] {
			status = ticket.StatusUsed
		}
		tickets[index] = ticket.Ticket{
			ID:        fmt.Sprintf("t-%d", index+1),
			Status:    status,
			CreatedAt: "2026-03-01T10:00:00.000Z",
		}
	}
	return tickets
}

func sequences(rows []Row) []int {
	result := make([]int, len(rows))
	for index, row := range rows {
		result[index] = row.Sequence
	}
	return result
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for index := range a {
		if a[index] != b[index] {
			return false
		}
	}
	return true
}

func TestAnnotate(t *testing.T) {
	rows := Annotate(makeTickets(3))
	for index, row := range rows {
		if row.Sequence != index+1 {
			t.Errorf("rows[%d].Sequence = %d", index, row.Sequence)
		}
		if row.ID != fmt.Sprintf("t-%d", index+1) {
			t.Errorf("rows[%d].ID = %q", index, row.ID)
		}
	}
	if len(Annotate(nil)) != 0 {
		t.Error("Annotate(nil) not empty")
	}
}

func TestFilter(t *testing.T) {
	rows := Annotate(makeTickets(15, 2, 3, 13))
	tests := []struct {
		name   string
		search string
		status StatusFilter
		want   []int
	}{
		{"everything", "", FilterAll, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
		{"exact sequence", "3", FilterAll, []int{3}},
		{"no substring match", "1", FilterAll, []int{1}},
		{"two digits", "13", FilterAll, []int{13}},
		{"whitespace trimmed", " 5 ", FilterAll, []int{5}},
		{"out of range", "99", FilterAll, []int{}},
		{"non-numeric", "abc", FilterAll, []int{}},
		{"leading zero", "03", FilterAll, []int{}},
		{"active only", "", FilterActive, []int{1, 4, 5, 6, 7, 8, 9, 10, 11, 12, 14, 15}},
		{"used only", "", FilterUsed, []int{2, 3, 13}},
		{"search and status agree", "3", FilterUsed, []int{3}},
		{"search and status disagree", "3", FilterActive, []int{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := sequences(Filter(rows, test.search, test.status))
			if !equalInts(got, test.want) {
				t.Errorf("Filter(%q, %s) = %v, want %v", test.search, test.status, got, test.want)
			}
		})
	}
}

func TestFilter_ActiveReturnsOnlyActive(t *testing.T) {
	for _, row := range Filter(Annotate(makeTickets(20, 1, 7, 8, 20)), "", FilterActive) {
		if row.Status != ticket.StatusActive {
			t.Errorf("row %d has status %q", row.Sequence, row.Status)
		}
	}
}

func TestSort(t *testing.T) {
	rows := Annotate(makeTickets(4))
	Sort(rows, SortDescending)
	if got := sequences(rows); !equalInts(got, []int{4, 3, 2, 1}) {
		t.Errorf("descending = %v", got)
	}
	Sort(rows, SortAscending)
	if got := sequences(rows); !equalInts(got, []int{1, 2, 3, 4}) {
		t.Errorf("ascending = %v", got)
	}
}

func TestParseStatusFilter(t *testing.T) {
	for _, value := range []string{"all", "Active", " used "} {
		if _, err := ParseStatusFilter(value); err != nil {
			t.Errorf("ParseStatusFilter(%q): %v", value, err)
		}
	}
	if _, err := ParseStatusFilter("pending"); err == nil {
		t.Error("ParseStatusFilter(pending) succeeded")
	}
}

func TestParseSortOrder(t *testing.T) {
	if order, err := ParseSortOrder("DESC"); err != nil || order != SortDescending {
		t.Errorf("ParseSortOrder(DESC) = %q, %v", order, err)
	}
	if _, err := ParseSortOrder("newest"); err == nil {
		t.Error("ParseSortOrder(newest) succeeded")
	}
}

func TestLabels(t *testing.T) {
	if SortAscending.Label() != "First Generated" || SortDescending.Label() != "Last Generated" {
		t.Error("sort labels")
	}
	if SortAscending.Toggled() != SortDescending || SortDescending.Toggled() != SortAscending {
		t.Error("Toggled")
	}
	if FilterAll.Label() != "All Status" || FilterActive.Label() != "Active" || FilterUsed.Label() != "Used" {
		t.Error("filter labels")
	}
}

func TestDerive_NormalizesQuery(t *testing.T) {
	page := Derive(makeTickets(10), Query{PageSize: 7, Page: -2})
	if page.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", page.PageSize, DefaultPageSize)
	}
	if page.Number != 1 {
		t.Errorf("Number = %d, want 1", page.Number)
	}
	if got := sequences(page.Rows); !equalInts(got, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("rows = %v", got)
	}
}

func TestDerive_DescendingSecondPage(t *testing.T) {
	query := DefaultQuery()
	query.Sort = SortDescending
	query.Page = 2
	page := Derive(makeTickets(10), query)
	if got := sequences(page.Rows); !equalInts(got, []int{4, 3, 2, 1}) {
		t.Errorf("rows = %v, want [4 3 2 1]", got)
	}
}
