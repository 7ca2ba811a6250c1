// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketui implements the interactive ticket console as a
// bubbletea program.
//
// The screen is a single paginated table over the ticket collection,
// with a header carrying the Total/Active/Used counts, a toolbar
// showing the current search, status filter, sort order and page
// size, and a footer with the visible range and page links. The "g"
// key opens the batch generator as a modal.
//
// All list semantics (sequence numbering, filtering, sorting,
// pagination, optimistic deactivation) live in lib/ticketview; this
// package translates key presses into ticketview calls, runs backend
// calls as tea.Cmds, and renders the result. Backend access goes
// through the [Backend] interface, which *ticketapi.Client satisfies.
//
// Reloads are explicit: a successful batch or the "r" key produce a
// reloadMsg, and every fetch is tagged with a generation so a slow
// response cannot overwrite a newer one.
//
// Log records from background work are routed into the status bar by
// [TUILogHandler]; writing them to stderr would corrupt the alternate
// screen.
package ticketui
