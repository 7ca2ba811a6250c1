// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// The console stamps optimistic deactivation times and the mock backend
// stamps creation times and waits out artificial latency; both take a
// Clock instead of calling the time package so tests can pin "now" and
// release waits deterministically:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	list := ticketview.NewList(fake)
//	// ... start a goroutine that waits on fake.After ...
//	fake.WaitForTimers(1)
//	fake.Advance(time.Second)
package clock
