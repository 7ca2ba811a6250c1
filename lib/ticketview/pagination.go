// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketview

// Page is one page of derived rows plus what the footer needs.
type Page struct {
	Rows []Row

	// Number is the 1-based page actually shown, after clamping the
	// requested page to [1, TotalPages].
	Number int

	// TotalPages is ceil(TotalRows/PageSize); zero when nothing
	// matched.
	TotalPages int

	// TotalRows counts every row that passed the filters, across all
	// pages.
	TotalRows int

	// First and Last are the 1-based positions of the shown rows
	// within TotalRows ("Showing First-Last of TotalRows"). Both are
	// zero when the page is empty.
	First, Last int

	PageSize int
}

// PageLink is one entry of the page selector: a page number or an
// ellipsis standing for skipped pages.
type PageLink struct {
	Page     int
	Ellipsis bool
	Current  bool
}

// fullWindowPages is the page count up to which every page gets its
// own link.
const fullWindowPages = 7

// Paginate cuts rows into pages of pageSize and returns the requested
// page, clamped into range.
func Paginate(rows []Row, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(rows)
	totalPages := (total + pageSize - 1) / pageSize

	page = clampPage(page, totalPages)
	result := Page{
		Number:     page,
		TotalPages: totalPages,
		TotalRows:  total,
		PageSize:   pageSize,
	}
	if total == 0 {
		result.Rows = []Row{}
		return result
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	result.Rows = rows[start:end]
	result.First = start + 1
	result.Last = end
	return result
}

// clampPage bounds page to [1, totalPages]; an empty result has one
// (empty) page.
func clampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return max(1, min(page, totalPages))
}

// Links returns the page selector for the page: every page when there
// are at most seven, otherwise the first page, the current page with
// its neighbours, the last page, and an ellipsis wherever pages are
// skipped. A single page has no selector.
func (page Page) Links() []PageLink {
	if page.TotalPages <= 1 {
		return nil
	}

	link := func(number int) PageLink {
		return PageLink{Page: number, Current: number == page.Number}
	}

	links := make([]PageLink, 0, fullWindowPages+2)
	if page.TotalPages <= fullWindowPages {
		for number := 1; number <= page.TotalPages; number++ {
			links = append(links, link(number))
		}
		return links
	}

	links = append(links, link(1))
	if page.Number > 3 {
		links = append(links, PageLink{Ellipsis: true})
	}
	for number := page.Number - 1; number <= page.Number+1; number++ {
		if number <= 1 || number >= page.TotalPages {
			continue
		}
		links = append(links, link(number))
	}
	if page.Number < page.TotalPages-2 {
		links = append(links, PageLink{Ellipsis: true})
	}
	links = append(links, link(page.TotalPages))
	return links
}

// HasPrevious reports whether a page precedes this one.
func (page Page) HasPrevious() bool {
	return page.Number > 1
}

// HasNext reports whether a page follows this one.
func (page Page) HasNext() bool {
	return page.Number < page.TotalPages
}
