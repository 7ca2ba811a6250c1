// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the ticketdesk
// binary: a tree of [Command] values dispatched by name, pflag
// parsing driven by struct tags ([BindFlags]), "did you mean"
// suggestions for mistyped commands and flags, categorized errors
// ([ToolError]) mapped to exit codes, and --json output support.
//
// Commands receive a context cancelled on SIGINT/SIGTERM and a
// structured logger that writes text to a terminal and JSON
// otherwise ([NewCommandLogger]).
package cli
