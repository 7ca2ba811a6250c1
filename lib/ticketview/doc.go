// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketview holds the presentation state of the ticket
// console, independent of any terminal or network code.
//
// [List] owns the fetched ticket cache and derives what the operator
// sees from it: every ticket is numbered by its position in fetch
// order, narrowed by an exact sequence-number search and a status
// filter, sorted by sequence number, and cut into pages. The cache is
// never reordered or filtered in place; the derivation runs again on
// every [List.View].
//
// [Generator] is the state machine behind the "generate tickets"
// dialog: free-form count input, bounds validation, a confirmation
// step, and the success/failure outcome of the batch.
//
// Both types are plain values mutated by their owner (the bubbletea
// model or a CLI command). Network calls happen elsewhere; callers
// report their outcomes through [List.ApplyFetch],
// [List.CompleteDeactivate] and [Generator.Complete].
package ticketview
