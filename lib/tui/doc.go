// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal components shared by the ticket
// console: the colour theme, dropdown menus, a single-line text field,
// centered modal boxes, and ANSI-aware overlay splicing.
//
// Components are plain values owned by a bubbletea model. They render
// to strings or line slices; the model decides where they go.
package tui
