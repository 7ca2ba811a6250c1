// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
)

type deactivateParams struct {
	GlobalFlags
	cli.JSONOutput
}

func deactivateCommand(application *app) *cli.Command {
	var params deactivateParams

	return &cli.Command{
		Name:    "deactivate",
		Summary: "Mark a ticket as used",
		Description: `Mark one ticket as used. The ticket ID is the full ID shown by
'ticketdesk list' (the console shows only its last 8 characters).`,
		Usage: "ticketdesk deactivate <ticket-id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Mark a ticket as used",
				Command:     "ticketdesk deactivate 6f1c2e9a-0d4b-4f7e-9a51-3c8e5b2d7f10",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one ticket ID, got %d arguments", len(args))
			}
			id := args[0]

			_, client, err := params.connect(application, logger)
			if err != nil {
				return err
			}

			updated, err := client.DeactivateTicket(ctx, id)
			if err != nil {
				return apiError(ticketview.DeactivateErrorMessage, client, err)
			}

			if done, err := params.EmitJSON(application.streams.Out, updated); done {
				return err
			}

			fmt.Fprintf(application.streams.Out, "Ticket %s marked as used (deactivated at %s)\n",
				updated.ID, updated.FormatDeactivatedAt(time.Local))
			return nil
		},
	}
}
