// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/ticketdesk/lib/ticketview"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []tea.Msg
}

func (sender *recordingSender) Send(message tea.Msg) {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.messages = append(sender.messages, message)
}

func TestTUILogHandler_DropsBeforeProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	logger := slog.New(handler)
	// No program attached: must not panic or block.
	logger.Warn("early")
}

func TestTUILogHandler_LevelAndFormatting(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	sender := &recordingSender{}
	handler.setSender(sender)

	logger := slog.New(handler).With("component", "ticketapi").WithGroup("request")
	logger.Info("dropped")
	logger.Warn("ticket api error response", "status", 502, slog.Group("retry", "attempt", 1))

	if len(sender.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(sender.messages))
	}
	record, ok := sender.messages[0].(logRecordMsg)
	if !ok {
		t.Fatalf("message type %T", sender.messages[0])
	}
	want := "ticket api error response (component=ticketapi, request.status=502, request.retry.attempt=1)"
	if record.Summary != want {
		t.Errorf("Summary = %q\nwant      %q", record.Summary, want)
	}
	if record.Level != slog.LevelWarn {
		t.Errorf("Level = %v", record.Level)
	}
}

func TestTUILogHandler_DerivedHandlersShareProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelError)
	derived := slog.New(handler).With("a", 1)

	sender := &recordingSender{}
	handler.setSender(sender)
	derived.Error("after attach")

	if len(sender.messages) != 1 {
		t.Fatalf("derived handler did not see the attached program")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) || handler.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("Enabled does not follow the configured level")
	}
}

// quitAfter wraps Model and quits once a message matching done has
// been applied. The fetch and deactivation commands log before they
// return their result, so by then any status bar record has been
// handled too.
type quitAfter struct {
	Model
	done   func(tea.Msg) bool
	onLoad tea.Cmd
}

func (wrapper quitAfter) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := wrapper.Model.Update(message)
	wrapper.Model = updated.(Model)
	if wrapper.done(message) {
		return wrapper, tea.Quit
	}
	if loaded, ok := message.(ticketsLoadedMsg); ok && loaded.err == nil && wrapper.onLoad != nil {
		return wrapper, tea.Batch(cmd, wrapper.onLoad)
	}
	return wrapper, cmd
}

// runProgram runs model in a headless program with a TUILogHandler
// attached the way the console command wires it, and returns the
// final model. The test fails if the program does not exit.
func runProgram(t *testing.T, backend Backend, done func(tea.Msg) bool, onLoad tea.Cmd) Model {
	t.Helper()
	handler := NewTUILogHandler(slog.LevelWarn)
	model := NewModel(backend, Options{Location: time.UTC, Logger: slog.New(handler)})

	program := tea.NewProgram(quitAfter{Model: model, done: done, onLoad: onLoad},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	handler.SetProgram(program)

	type result struct {
		model tea.Model
		err   error
	}
	results := make(chan result, 1)
	go func() {
		final, err := program.Run()
		results <- result{final, err}
	}()

	select {
	case outcome := <-results:
		if outcome.err != nil {
			t.Fatalf("program.Run: %v", outcome.err)
		}
		final := outcome.model.(quitAfter).Model
		updated, _ := final.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		return updated.(Model)
	case <-time.After(5 * time.Second):
		program.Kill()
		t.Fatal("program did not exit; the event loop is blocked")
		return Model{}
	}
}

func TestProgram_FetchFailureReachesStatusBar(t *testing.T) {
	backend := newFakeBackend(0)
	backend.listErr = errors.New("connection refused")

	model := runProgram(t, backend, func(message tea.Msg) bool {
		_, ok := message.(ticketsLoadedMsg)
		return ok
	}, nil)

	if model.list.Err() != ticketview.LoadErrorMessage {
		t.Errorf("banner = %q, want %q", model.list.Err(), ticketview.LoadErrorMessage)
	}
	if !strings.Contains(model.statusMessage, "loading tickets failed") ||
		!strings.Contains(model.statusMessage, "connection refused") {
		t.Errorf("status bar = %q", model.statusMessage)
	}
	if view := plainView(model); !strings.Contains(view, ticketview.LoadErrorMessage) {
		t.Errorf("banner not rendered:\n%s", view)
	}
}

func TestProgram_DeactivateFailureReachesStatusBar(t *testing.T) {
	backend := newFakeBackend(2)
	backend.deactivateErr = errors.New("backend unavailable")

	model := runProgram(t, backend, func(message tea.Msg) bool {
		_, ok := message.(deactivateResultMsg)
		return ok
	}, func() tea.Msg { return runes("u") })

	if len(backend.deactivated) != 1 {
		t.Fatalf("deactivated = %v", backend.deactivated)
	}
	if model.list.Err() != ticketview.DeactivateErrorMessage {
		t.Errorf("banner = %q", model.list.Err())
	}
	if !strings.Contains(model.statusMessage, "marking ticket as used failed") {
		t.Errorf("status bar = %q", model.statusMessage)
	}
	if model.list.PendingCount() != 0 {
		t.Errorf("pending = %d after failure", model.list.PendingCount())
	}
}
