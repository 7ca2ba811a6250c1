// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides bounded HTTP body reads for the ticket API
// client and the mock backend.
//
// A list response for a large ticket batch is a few hundred kilobytes;
// MaxResponseSize only exists so a misbehaving server cannot make the
// console allocate without bound.
package netutil

import (
	"io"
	"strings"
)

// MaxResponseSize bounds every JSON response body read: 32 MB.
const MaxResponseSize int64 = 32 << 20

// MaxRequestSize bounds request bodies accepted by the mock backend.
// The ticket endpoints take no meaningful body.
const MaxRequestSize int64 = 64 << 10

// errorSnippetLength caps how much of an error body ends up in an
// error message or a log line.
const errorSnippetLength = 512

// ReadResponse reads a response body up to MaxResponseSize bytes. Use
// instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ErrorSnippet condenses an error response body into a single line
// for diagnostics: whitespace runs are collapsed and the result is
// truncated with an ellipsis.
func ErrorSnippet(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	runes := []rune(text)
	if len(runes) > errorSnippetLength {
		return string(runes[:errorSnippetLength]) + "…"
	}
	return text
}
