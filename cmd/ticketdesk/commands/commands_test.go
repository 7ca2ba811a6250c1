// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/ticketdesk/cmd/ticketdesk/cli"
	"github.com/bureau-foundation/ticketdesk/lib/config"
	"github.com/bureau-foundation/ticketdesk/lib/schema/ticket"
	"github.com/bureau-foundation/ticketdesk/lib/ticketmock"
	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
)

type harness struct {
	backend *ticketmock.Server
	apiURL  string
	stdin   string
	tty     bool
	stdout  bytes.Buffer
	stderr  bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	t.Setenv("TICKETDESK_API_URL", "")

	backend := ticketmock.New(ticketmock.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	server := httptest.NewServer(backend.Handler())
	t.Cleanup(server.Close)
	return &harness{backend: backend, apiURL: server.URL + "/api"}
}

// run executes the command line against the harness backend.
func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	root := Root(Streams{
		In:          strings.NewReader(h.stdin),
		Out:         &h.stdout,
		ErrOut:      &h.stderr,
		Interactive: func() bool { return h.tty },
	})
	root.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	if len(args) > 0 && args[0] != "version" {
		args = append(args, "--api-url", h.apiURL)
	}
	return root.Execute(context.Background(), args)
}

func TestGenerate_JSON(t *testing.T) {
	h := newHarness(t)

	if err := h.run("generate", "-n", "3", "--yes", "--json"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	var created []ticket.Ticket
	if err := json.Unmarshal(h.stdout.Bytes(), &created); err != nil {
		t.Fatalf("decoding output %q: %v", h.stdout.String(), err)
	}
	if len(created) != 3 {
		t.Errorf("output has %d tickets, want 3", len(created))
	}
	if got := len(h.backend.Tickets()); got != 3 {
		t.Errorf("backend has %d tickets, want 3", got)
	}
}

func TestGenerate_InvalidCount(t *testing.T) {
	h := newHarness(t)

	for _, count := range []string{"1001", "-5"} {
		err := h.run("generate", "--count", count, "--yes")
		if cli.CategoryOf(err) != cli.CategoryValidation {
			t.Errorf("count %s: error = %v, want validation", count, err)
		}
		if err != nil && !strings.Contains(err.Error(), ticketview.InvalidCountMessage) {
			t.Errorf("count %s: error = %q", count, err)
		}
	}
	if got := len(h.backend.Tickets()); got != 0 {
		t.Errorf("backend has %d tickets after invalid counts", got)
	}
}

func TestGenerate_NonInteractiveRequiresYes(t *testing.T) {
	h := newHarness(t)

	err := h.run("generate", "-n", "2")
	if cli.CategoryOf(err) != cli.CategoryValidation {
		t.Fatalf("error = %v, want validation", err)
	}
	if !strings.Contains(cli.HintOf(err), "--yes") {
		t.Errorf("hint = %q", cli.HintOf(err))
	}
	if got := len(h.backend.Tickets()); got != 0 {
		t.Errorf("backend has %d tickets", got)
	}
}

func TestGenerate_Confirmation(t *testing.T) {
	h := newHarness(t)
	h.tty = true

	h.stdin = "y\n"
	if err := h.run("generate", "-n", "2"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(h.stderr.String(), "You are about to generate 2 tickets. This action cannot be undone. Continue? [y/N]") {
		t.Errorf("prompt = %q", h.stderr.String())
	}
	if !strings.Contains(h.stdout.String(), "Successfully generated 2 tickets!") {
		t.Errorf("stdout = %q", h.stdout.String())
	}

	h.stdin = "n\n"
	err := h.run("generate", "-n", "5")
	var exitError *cli.ExitError
	if !errors.As(err, &exitError) {
		t.Fatalf("declined generation error = %v, want ExitError", err)
	}
	if got := len(h.backend.Tickets()); got != 2 {
		t.Errorf("backend has %d tickets after declining, want 2", got)
	}
}

func TestGenerate_DefaultCountFromConfig(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "ticketdesk.yaml")
	if err := os.WriteFile(path, []byte("console:\n  default_count: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := h.run("generate", "--yes", "--config", path); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := len(h.backend.Tickets()); got != 4 {
		t.Errorf("backend has %d tickets, want 4", got)
	}
}

func TestList_Text(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed(8)

	if err := h.run("list", "--page", "2"); err != nil {
		t.Fatalf("list: %v", err)
	}
	output := h.stdout.String()
	for _, want := range []string{
		"Total: 8 | Active: 8 | Used: 0",
		"CREATED AT",
		"Showing 7-8 of 8 tickets (page 2 of 2)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
	tickets := h.backend.Tickets()
	if !strings.Contains(output, tickets[7].ID) || strings.Contains(output, tickets[5].ID) {
		t.Errorf("page 2 shows the wrong tickets:\n%s", output)
	}
}

func TestList_EmptyMessages(t *testing.T) {
	h := newHarness(t)

	if err := h.run("list"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(h.stdout.String(), ticketview.NoTicketsMessage) {
		t.Errorf("output = %q", h.stdout.String())
	}

	h.backend.Seed(2)
	if err := h.run("list", "--search", "9"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(h.stdout.String(), ticketview.NoMatchesMessage) {
		t.Errorf("output = %q", h.stdout.String())
	}
}

func TestDeactivateThenListUsed(t *testing.T) {
	h := newHarness(t)
	h.backend.Seed(5)
	second := h.backend.Tickets()[1]

	if err := h.run("deactivate", second.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "Ticket "+second.ID+" marked as used") {
		t.Errorf("stdout = %q", h.stdout.String())
	}

	if err := h.run("list", "--status", "used", "--sort", "desc", "--json"); err != nil {
		t.Fatalf("list: %v", err)
	}
	var output struct {
		Page       int              `json:"page"`
		TotalPages int              `json:"totalPages"`
		TotalRows  int              `json:"totalRows"`
		Stats      ticketview.Stats `json:"stats"`
		Tickets    []struct {
			SequenceNumber int     `json:"sequenceNumber"`
			ID             string  `json:"id"`
			Status         string  `json:"status"`
			DeactivatedAt  *string `json:"deactivatedAt"`
		} `json:"tickets"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &output); err != nil {
		t.Fatalf("decoding %q: %v", h.stdout.String(), err)
	}
	if output.Stats != (ticketview.Stats{Total: 5, Active: 4, Used: 1}) {
		t.Errorf("stats = %+v", output.Stats)
	}
	if output.TotalRows != 1 || len(output.Tickets) != 1 {
		t.Fatalf("rows = %+v", output.Tickets)
	}
	row := output.Tickets[0]
	if row.SequenceNumber != 2 || row.ID != second.ID || row.Status != "used" || row.DeactivatedAt == nil {
		t.Errorf("row = %+v", row)
	}
}

func TestList_InvalidFlags(t *testing.T) {
	h := newHarness(t)

	tests := [][]string{
		{"list", "--page-size", "10"},
		{"list", "--status", "expired"},
		{"list", "--sort", "newest"},
		{"list", "--page", "0"},
		{"list", "--pagesize", "12"},
	}
	for _, args := range tests {
		if err := h.run(args...); cli.CategoryOf(err) != cli.CategoryValidation {
			t.Errorf("%v: error = %v, want validation", args, err)
		}
	}
}

func TestDeactivate_Errors(t *testing.T) {
	h := newHarness(t)

	err := h.run("deactivate", "no-such-ticket")
	if cli.CategoryOf(err) != cli.CategoryNotFound {
		t.Errorf("unknown ticket: error = %v, want not found", err)
	}
	if err != nil && !strings.Contains(err.Error(), ticketview.DeactivateErrorMessage) {
		t.Errorf("error = %q", err)
	}

	if err := h.run("deactivate"); cli.CategoryOf(err) != cli.CategoryValidation {
		t.Errorf("missing ID: error = %v, want validation", err)
	}
}

func TestBackendUnreachable(t *testing.T) {
	h := newHarness(t)
	closed := httptest.NewServer(nil)
	h.apiURL = closed.URL + "/api"
	closed.Close()

	err := h.run("list")
	if cli.CategoryOf(err) != cli.CategoryTransient {
		t.Fatalf("error = %v, want transient", err)
	}
	if !strings.Contains(cli.HintOf(err), h.apiURL) {
		t.Errorf("hint = %q", cli.HintOf(err))
	}
}

func TestInvalidConfig(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "ticketdesk.yaml")
	if err := os.WriteFile(path, []byte("console:\n  page_size: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := h.run("list", "--config", path)
	if cli.CategoryOf(err) != cli.CategoryValidation || !strings.Contains(err.Error(), "console.page_size") {
		t.Errorf("error = %v", err)
	}
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	if err := h.run("version"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(h.stdout.String(), "ticketdesk ") {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestFanoutHandler(t *testing.T) {
	var warnOnly, everything bytes.Buffer
	logger := slog.New(fanoutHandler{
		slog.NewTextHandler(&warnOnly, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&everything, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}).With("component", "test")

	logger.Debug("fetching")
	logger.Warn("slow response")

	if strings.Contains(warnOnly.String(), "fetching") || !strings.Contains(warnOnly.String(), "slow response") {
		t.Errorf("warn handler output = %q", warnOnly.String())
	}
	if strings.Count(everything.String(), "\n") != 2 || !strings.Contains(everything.String(), `"component":"test"`) {
		t.Errorf("debug handler output = %q", everything.String())
	}
}
