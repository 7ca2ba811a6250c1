// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
)

type listParams struct {
	GlobalFlags
	cli.JSONOutput
	Search   string `flag:"search"    desc:"show only the ticket with this sequence number"`
	Status   string `flag:"status,s"  desc:"filter by status: all, active, used (default console.status_filter)"`
	Sort     string `flag:"sort"      desc:"order by sequence number: asc, desc (default console.sort_order)"`
	PageSize int    `flag:"page-size" desc:"tickets per page: 6, 12, 24, 48 (default console.page_size)"`
	Page     int    `flag:"page,p"    desc:"page to show (clamped to the last page)" default:"1"`
}

// listEntry is one row of list output.
type listEntry struct {
	SequenceNumber int `json:"sequenceNumber"`
	ticket.Ticket
}

// listOutput is the --json shape of list.
type listOutput struct {
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	PageSize   int              `json:"pageSize"`
	TotalRows  int              `json:"totalRows"`
	Stats      ticketview.Stats `json:"stats"`
	Tickets    []listEntry      `json:"tickets"`
}

func listCommand(application *app) *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List tickets one page at a time",
		Description: `Fetch every ticket and show one page of them. Tickets are numbered by
their position in the backend's list (1 is the first generated); the
search matches that number exactly. Stats always cover every ticket.`,
		Usage: "ticketdesk list [flags]",
		Examples: []cli.Example{
			{
				Description: "Newest active tickets first, 24 per page",
				Command:     "ticketdesk list --status active --sort desc --page-size 24",
			},
			{
				Description: "Look up ticket number 42",
				Command:     "ticketdesk list --search 42",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}

			cfg, client, err := params.connect(application, logger)
			if err != nil {
				return err
			}

			query, err := params.query(cfg.Console.Query())
			if err != nil {
				return err
			}

			tickets, err := client.ListTickets(ctx)
			if err != nil {
				return apiError(ticketview.LoadErrorMessage, client, err)
			}

			page := ticketview.Derive(tickets, query)
			stats := ticketview.CountStats(tickets)

			entries := make([]listEntry, len(page.Rows))
			for index, row := range page.Rows {
				entries[index] = listEntry{SequenceNumber: row.Sequence, Ticket: row.Ticket}
			}
			if done, err := params.EmitJSON(application.streams.Out, listOutput{
				Page:       page.Number,
				TotalPages: page.TotalPages,
				PageSize:   page.PageSize,
				TotalRows:  page.TotalRows,
				Stats:      stats,
				Tickets:    entries,
			}); done {
				return err
			}

			return writeTicketPage(application.streams.Out, page, stats, len(tickets), time.Local)
		},
	}
}

// query overlays the flags on the configured initial query.
func (params *listParams) query(base ticketview.Query) (ticketview.Query, error) {
	query := base
	query.Search = params.Search
	query.Page = params.Page
	if params.Status != "" {
		filter, err := ticketview.ParseStatusFilter(params.Status)
		if err != nil {
			return query, cli.Validation("--status: %w", err)
		}
		query.Status = filter
	}
	if params.Sort != "" {
		order, err := ticketview.ParseSortOrder(params.Sort)
		if err != nil {
			return query, cli.Validation("--sort: %w", err)
		}
		query.Sort = order
	}
	if params.PageSize != 0 {
		if !ticketview.ValidPageSize(params.PageSize) {
			return query, cli.Validation("--page-size must be one of %v", ticketview.PageSizes)
		}
		query.PageSize = params.PageSize
	}
	if params.Page < 1 {
		return query, cli.Validation("--page must be at least 1")
	}
	return query, nil
}

// writeTicketPage renders a page as a table with the stats above and
// the position below.
func writeTicketPage(out io.Writer, page ticketview.Page, stats ticketview.Stats, cached int, location *time.Location) error {
	fmt.Fprintln(out, stats.String())

	if page.TotalRows == 0 {
		if cached == 0 {
			fmt.Fprintln(out, ticketview.NoTicketsMessage)
		} else {
			fmt.Fprintln(out, ticketview.NoMatchesMessage)
		}
		return nil
	}

	fmt.Fprintln(out)
	writer := tabwriter.NewWriter(out, 2, 0, 3, ' ', 0)
	fmt.Fprintf(writer, "#\tID\tSTATUS\tCREATED AT\tDEACTIVATED AT\n")
	for _, row := range page.Rows {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			row.Sequence,
			row.ID,
			row.Status,
			ticket.FormatTimestamp(row.CreatedAt, location),
			row.FormatDeactivatedAt(location),
		)
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nShowing %d-%d of %d tickets (page %d of %d)\n",
		page.First, page.Last, page.TotalRows, page.Number, page.TotalPages)
	return nil
}
