// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// ticketdesk-mock-backend serves the four ticket endpoints from
// memory. It stands in for the real ticket service during local
// development of the console and in end-to-end checks:
//
//	ticketdesk-mock-backend --listen :3000 --seed 30 --latency 200ms
//	TICKETDESK_API_URL=http://localhost:3000/api ticketdesk console
//
// State is lost on exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/lib/ticketmock"
	"github.com/bureau-foundation/ticketdesk/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		listenAddress string
		envelopeName  string
		latency       time.Duration
		failEvery     int
		seed          int
		origins       []string
		debug         bool
		showVersion   bool
	)

	flagSet := pflag.NewFlagSet("ticketdesk-mock-backend", pflag.ContinueOnError)
	flagSet.StringVar(&listenAddress, "listen", ":3000", "address to listen on")
	flagSet.StringVar(&envelopeName, "envelope", string(ticketmock.EnvelopeData), "response shape: data ({\"data\": ...}) or bare")
	flagSet.DurationVar(&latency, "latency", 0, "artificial delay added to every response")
	flagSet.IntVar(&failEvery, "fail-every", 0, "answer every Nth creation call with 500 (0 disables)")
	flagSet.IntVar(&seed, "seed", 0, "number of tickets to create at startup")
	flagSet.StringSliceVar(&origins, "origin", nil, "browser origin allowed by CORS (repeatable, default any)")
	flagSet.BoolVar(&debug, "debug", false, "log at debug level")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if showVersion {
		fmt.Printf("ticketdesk-mock-backend %s\n", version.Full())
		return nil
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}

	envelope, err := ticketmock.ParseEnvelope(envelopeName)
	if err != nil {
		return err
	}
	if failEvery < 0 || seed < 0 || latency < 0 {
		return fmt.Errorf("--fail-every, --seed and --latency must not be negative")
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(level)
	slog.SetDefault(logger)

	backend := ticketmock.New(ticketmock.Options{
		Envelope:       envelope,
		Latency:        latency,
		FailEvery:      failEvery,
		AllowedOrigins: origins,
		Logger:         logger,
	})
	backend.Seed(seed)

	server := &http.Server{
		Addr:              listenAddress,
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErrors := make(chan error, 1)
	go func() {
		logger.Info("mock ticket backend listening",
			"address", listenAddress,
			"envelope", envelope,
			"seeded", seed,
		)
		serveErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownContext, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownContext); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped", "tickets", len(backend.Tickets()))
	return nil
}
