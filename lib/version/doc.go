// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the
// ticketdesk binaries.
//
// Four package-level variables are injected at build time via
// -ldflags -X: [GitCommit], [GitDirty], [BuildTime] and [Version].
// They default to "unknown" / "0.1.0-dev" in development builds and
// test runs.
//
//   - [Info] -- "0.1.0-dev (abc1234, 2026-02-10T...)" for version output
//   - [Full] -- Info plus Go version and GOOS/GOARCH
//   - [Short] -- just the version number
//   - [UserAgent] -- "ticketdesk/0.1.0-dev" for HTTP requests
package version
