// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the ticketdesk command tree.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/lib/version"
)

// Streams are the standard streams commands read and write.
type Streams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// Interactive reports whether In is a terminal a person can
	// answer confirmation prompts on.
	Interactive func() bool
}

// StandardStreams returns the process's stdin, stdout and stderr.
func StandardStreams() Streams {
	return Streams{
		In:          os.Stdin,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Interactive: func() bool { return cli.IsInteractive(os.Stdin) },
	}
}

// app carries what every command shares.
type app struct {
	streams Streams

	// levels is raised or lowered once configuration names a log
	// level.
	levels *slog.LevelVar
}

// Root builds and returns the complete ticketdesk command tree.
func Root(streams Streams) *cli.Command {
	application := &app{streams: streams, levels: new(slog.LevelVar)}

	return &cli.Command{
		Name: "ticketdesk",
		Description: `ticketdesk: operator console for the ticket service.

Generate batches of tickets, browse them with search, status filters,
sorting and pagination, and mark tickets as used.`,
		Logger:     cli.NewCommandLogger(application.levels),
		HelpOutput: streams.ErrOut,
		Subcommands: []*cli.Command{
			consoleCommand(application),
			generateCommand(application),
			listCommand(application),
			deactivateCommand(application),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Fprintf(streams.Out, "ticketdesk %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
