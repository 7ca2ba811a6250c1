// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ticketui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is the one-line "message (key=value, ...)" rendering.
	Summary string

	// Level selects warn or error styling.
	Level slog.Level
}

// logRecordFadeMsg clears the status bar message it was scheduled
// for. A newer record resets the sequence so older fades are ignored.
type logRecordFadeMsg struct {
	sequence uint64
}

// logRecordFadeDelay is how long log messages stay visible in the
// status bar before the key help returns.
const logRecordFadeDelay = 5 * time.Second

// programSender is the part of *tea.Program the handler needs.
type programSender interface {
	Send(tea.Msg)
}

// TUILogHandler is a slog.Handler that routes records into a running
// bubbletea program as status bar messages. Records below the
// configured level are dropped.
//
// The handler must exist before the program does (the API client is
// built with it), so the program is attached afterwards with
// SetProgram. Records arriving before that are dropped. Handlers
// derived through WithAttrs and WithGroup share the attachment.
type TUILogHandler struct {
	level   slog.Leveler
	program *atomic.Pointer[programSender]
	attrs   []string
	prefix  string
}

// NewTUILogHandler creates a handler delivering records at or above
// level.
func NewTUILogHandler(level slog.Leveler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[programSender]{},
	}
}

// SetProgram attaches the program that receives log messages. Safe to
// call from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	var sender programSender = program
	handler.program.Store(&sender)
}

// setSender attaches an arbitrary receiver; tests use it in place of
// a running program.
func (handler *TUILogHandler) setSender(sender programSender) {
	handler.program.Store(&sender)
}

// Enabled reports whether records at level are delivered.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level.Level()
}

// Handle formats the record and sends it to the program.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	sender := handler.program.Load()
	if sender == nil {
		return nil
	}

	parts := slices.Clone(handler.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		parts = appendAttr(parts, handler.prefix, attr)
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}

	(*sender).Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	for _, attr := range attrs {
		derived.attrs = appendAttr(derived.attrs, handler.prefix, attr)
	}
	return &derived
}

// WithGroup returns a handler that qualifies later attribute keys
// with name.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := *handler
	derived.attrs = slices.Clone(handler.attrs)
	derived.prefix = handler.prefix + name + "."
	return &derived
}

// appendAttr renders attr as key=value, flattening groups into dotted
// keys.
func appendAttr(parts []string, prefix string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix += attr.Key + "."
		}
		for _, member := range attr.Value.Group() {
			parts = appendAttr(parts, groupPrefix, member)
		}
		return parts
	}
	return append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
}
