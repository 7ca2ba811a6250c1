// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticketapi is a typed client for the ticketing backend's REST
// API. Four calls make up the whole surface:
//
//	POST  {base}/tickets                  create one ticket
//	GET   {base}/tickets                  list every ticket
//	PATCH {base}/tickets/{id}/deactivate  mark a ticket as used
//
// plus [Client.CreateTickets], which fans out N concurrent creation
// calls and succeeds only when all of them do.
//
// The backend is inconsistent about response envelopes: some
// deployments wrap payloads as {"data": ...}, others return the bare
// value. Single-ticket responses are unwrapped when a non-null "data"
// member is present; list responses accept {"data": [...]} or a bare
// array and treat any other shape as an empty list.
//
// There is no retry. Transport failures and non-2xx responses
// ([APIError]) are returned to the caller as they happened.
package ticketapi
