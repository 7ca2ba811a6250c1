// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/commands"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := commands.Root(commands.StandardStreams()).Execute(ctx, os.Args[1:])
	code, show := cli.ExitCodeFor(err)
	// Commands that print their own output (a declined confirmation)
	// return an ExitError; don't add a redundant "error:" line.
	if show {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hint := cli.HintOf(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
	}
	return code
}
