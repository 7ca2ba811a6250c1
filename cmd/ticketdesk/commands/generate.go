// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
)

type generateParams struct {
	GlobalFlags
	cli.JSONOutput
	Count int  `flag:"count,n" desc:"number of tickets to generate, 1-1000 (default console.default_count)"`
	Yes   bool `flag:"yes,y" desc:"skip the confirmation prompt"`
}

func generateCommand(application *app) *cli.Command {
	var params generateParams

	return &cli.Command{
		Name:    "generate",
		Summary: "Generate a batch of tickets",
		Description: `Create a batch of tickets. Every ticket is created by its own request;
all requests are issued at once and the command fails if any of them
fails. Some tickets of a failed batch may still have been created.

Generation cannot be undone, so the command asks for confirmation on a
terminal. Non-interactive use requires --yes.`,
		Usage: "ticketdesk generate [--count N] [--yes] [flags]",
		Examples: []cli.Example{
			{
				Description: "Generate 25 tickets after confirming",
				Command:     "ticketdesk generate --count 25",
			},
			{
				Description: "Generate 100 tickets from a script",
				Command:     "ticketdesk generate -n 100 --yes --json",
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

			count := params.Count
			if count == 0 {
				count = cfg.Console.DefaultCount
			}
			if count < ticketview.MinCount || count > ticketview.MaxCount {
				return cli.Validation("%s (got %d)", ticketview.InvalidCountMessage, count)
			}

			if !params.Yes {
				if !application.streams.Interactive() {
					return cli.Validation("refusing to generate tickets without confirmation").
						WithHint("Pass --yes to generate non-interactively.")
				}
				confirmed, err := cli.Confirm(application.streams.In, application.streams.ErrOut,
					ticketview.ConfirmationText(count)+" Continue?")
				if err != nil {
					return cli.Internal("%w", err)
				}
				if !confirmed {
					fmt.Fprintln(application.streams.ErrOut, "Cancelled.")
					return &cli.ExitError{Code: cli.ExitFailure}
				}
			}

			created, err := client.CreateTickets(ctx, count)
			if err != nil {
				logger.Error("generating tickets failed", "count", count, "error", err)
				return apiError(ticketview.GenerateErrorMessage, client, err)
			}

			if done, err := params.EmitJSON(application.streams.Out, created); done {
				return err
			}

			out := application.streams.Out
			fmt.Fprintln(out, ticketview.SuccessMessage(len(created)))
			for _, item := range created {
				fmt.Fprintf(out, "  %s\n", item.ID)
			}
			return nil
		},
	}
}
