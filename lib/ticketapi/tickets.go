// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketapi

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

// CreateTicket asks the backend to create one ticket. The backend
// assigns the ID, status and creation time.
func (client *Client) CreateTicket(ctx context.Context) (ticket.Ticket, error) {
	body, err := client.do(ctx, http.MethodPost, "/tickets")
	if err != nil {
		return ticket.Ticket{}, err
	}
	return decodeTicket(body)
}

// CreateTickets issues count creation calls at once and waits for all
// of them. Every call is started regardless of the others' outcome;
// if any fails, the first error is returned and no tickets are. On
// success the result holds one ticket per call, in call order. A count
// of zero or less returns an empty list without contacting the
// backend.
func (client *Client) CreateTickets(ctx context.Context, count int) ([]ticket.Ticket, error) {
	if count <= 0 {
		return []ticket.Ticket{}, nil
	}

	created := make([]ticket.Ticket, count)
	var group errgroup.Group
	for index := range count {
		group.Go(func() error {
			result, err := client.CreateTicket(ctx)
			if err != nil {
				return err
			}
			created[index] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		client.logger.Warn("batch ticket creation failed", "count", count, "error", err)
		return nil, err
	}
	return created, nil
}

// ListTickets fetches every ticket in the backend's order. The result
// is never nil; unrecognized response shapes yield an empty list.
func (client *Client) ListTickets(ctx context.Context) ([]ticket.Ticket, error) {
	body, err := client.do(ctx, http.MethodGet, "/tickets")
	if err != nil {
		return nil, err
	}
	return decodeTicketList(body)
}

// DeactivateTicket marks the ticket as used and returns the backend's
// view of it.
func (client *Client) DeactivateTicket(ctx context.Context, id string) (ticket.Ticket, error) {
	body, err := client.do(ctx, http.MethodPatch, "/tickets/"+url.PathEscape(id)+"/deactivate")
	if err != nil {
		return ticket.Ticket{}, err
	}
	return decodeTicket(body)
}
