// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
)

// Backend is the ticket service as seen by the console.
// *ticketapi.Client implements it; tests substitute an in-memory
// fake.
type Backend interface {
	ListTickets(ctx context.Context) ([]ticket.Ticket, error)
	CreateTickets(ctx context.Context, count int) ([]ticket.Ticket, error)
	DeactivateTicket(ctx context.Context, id string) (ticket.Ticket, error)
}

// ticketsLoadedMsg carries the outcome of a list fetch tagged with
// the generation ticketview.List.BeginFetch handed out.
type ticketsLoadedMsg struct {
	generation uint64
	tickets    []ticket.Ticket
	err        error
}

// ticketsGeneratedMsg carries the outcome of a generation batch.
type ticketsGeneratedMsg struct {
	count int
	err   error
}

// deactivateResultMsg carries the outcome of one mark-as-used call.
type deactivateResultMsg struct {
	id  string
	err error
}

// reloadMsg asks the model to fetch the collection again.
type reloadMsg struct{}

// generatorDismissMsg closes the generator after a successful batch,
// unless another batch has completed since.
type generatorDismissMsg struct {
	submission uint64
}

// reload is a tea.Cmd that emits reloadMsg.
func reload() tea.Msg {
	return reloadMsg{}
}

// The commands below run off the event loop, so their failures are
// logged here. A TUILogHandler sends into the program synchronously
// and must never be reached from Update.

func fetchTickets(ctx context.Context, backend Backend, logger *slog.Logger, generation uint64) tea.Cmd {
	return func() tea.Msg {
		tickets, err := backend.ListTickets(ctx)
		if err != nil {
			logger.Error("loading tickets failed", "generation", generation, "error", err)
		}
		return ticketsLoadedMsg{generation: generation, tickets: tickets, err: err}
	}
}

func generateTickets(ctx context.Context, backend Backend, logger *slog.Logger, count int) tea.Cmd {
	return func() tea.Msg {
		_, err := backend.CreateTickets(ctx, count)
		if err != nil {
			logger.Error("generating tickets failed", "count", count, "error", err)
		} else {
			logger.Info("generated tickets", "count", count)
		}
		return ticketsGeneratedMsg{count: count, err: err}
	}
}

func deactivateTicket(ctx context.Context, backend Backend, logger *slog.Logger, id string) tea.Cmd {
	return func() tea.Msg {
		_, err := backend.DeactivateTicket(ctx, id)
		if err != nil {
			logger.Error("marking ticket as used failed", "ticket", id, "error", err)
		}
		return deactivateResultMsg{id: id, err: err}
	}
}
