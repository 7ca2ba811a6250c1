// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ticket defines the wire types of the ticketing backend: the
// ticket record returned by every endpoint and its lifecycle status.
// Tickets are created and transitioned by the backend; the console only
// reads them and requests the active → used transition.
package ticket
