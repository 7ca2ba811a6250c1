// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/lib/config"
	"github.com/bureau-foundation/ticketdesk/lib/ticketui"
)

type consoleParams struct {
	GlobalFlags
	LogOutput string `flag:"log-output" desc:"also write JSON log records to this file (default log.output)"`
}

func consoleCommand(application *app) *cli.Command {
	var params consoleParams

	return &cli.Command{
		Name:    "console",
		Summary: "Open the interactive ticket console",
		Description: `Open the full-screen ticket console: generate batches of tickets,
browse them with search, status filter, sort order and page size, and
mark tickets as used.

Warnings and errors from background requests appear in the status bar.
With --log-output every record at the configured log level is also
written to a file as JSON.`,
		Usage: "ticketdesk console [flags]",
		Examples: []cli.Example{
			{
				Description: "Open the console against a local mock backend",
				Command:     "ticketdesk console --api-url http://localhost:3000/api",
			},
			{
				Description: "Keep a debug log while using the console",
				Command:     "ticketdesk console --log-output /tmp/ticketdesk.log",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument %q", args[0])
			}
			if !cli.IsInteractive(os.Stdout) {
				return cli.Validation("the console needs a terminal").
					WithHint("Use 'ticketdesk list' for non-interactive output.")
			}

			cfg, err := params.loadConfig(application)
			if err != nil {
				return err
			}
			return runConsole(ctx, cfg, params.LogOutput)
		},
	}
}

// runConsole runs the TUI until the operator quits or ctx is
// cancelled. Background log records go to the status bar (never to
// stderr, which would corrupt the alternate screen) and optionally to
// a JSON file.
func runConsole(ctx context.Context, cfg *config.Config, logOutput string) error {
	if logOutput == "" {
		logOutput = cfg.Log.Output
	}
	level, _ := config.ParseLevel(cfg.Log.Level)

	tuiHandler := ticketui.NewTUILogHandler(slog.LevelWarn)
	var backgroundLogger *slog.Logger
	if logOutput != "" {
		fileHandler, closeFile, err := openFileLogHandler(logOutput, level)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", logOutput, err)
		}
		defer closeFile()
		backgroundLogger = slog.New(fanoutHandler{tuiHandler, fileHandler})
	} else {
		backgroundLogger = slog.New(tuiHandler)
	}

	client, err := newClient(cfg, backgroundLogger)
	if err != nil {
		return err
	}

	// Honor NO_COLOR and CLICOLOR_FORCE.
	lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())

	model := ticketui.NewModel(client, ticketui.Options{
		Context:      ctx,
		Query:        cfg.Console.Query(),
		DefaultCount: cfg.Console.DefaultCount,
		Logger:       backgroundLogger,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Records logged before this point are dropped; nothing is on
	// screen yet.
	tuiHandler.SetProgram(program)

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// openFileLogHandler creates a slog.JSONHandler writing to path. The
// file is created or truncated.
func openFileLogHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}
