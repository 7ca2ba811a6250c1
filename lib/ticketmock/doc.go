// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketmock is an in-memory ticket backend serving the four
// REST endpoints the console talks to:
//
//	POST  /api/tickets
//	GET   /api/tickets
//	PATCH /api/tickets/{id}/deactivate
//
// It exists for local development (cmd/ticketdesk-mock-backend) and
// for end-to-end tests of [ticketapi.Client]. Responses can be wrapped
// in a {"data": ...} envelope or sent bare, creation calls can be
// made to fail periodically, and every response can be delayed by a
// fixed latency measured on an injected [clock.Clock].
//
// Every client gets a session cookie on its first request. Requests
// that present the cookie are counted per session, which makes
// credential replay observable in tests.
package ticketmock
