// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads ticketdesk configuration.
//
// Configuration comes from a single file named by the --config flag
// (via [LoadFile]) or the TICKETDESK_CONFIG environment variable (via
// [Load]). Without either, [Default] applies. There is no file
// discovery. YAML is the primary format; files ending in .json or
// .jsonc are read as JSON with comments.
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. Production defaults to warn-level
// logging.
//
// ${VAR} and ${VAR:-default} patterns are expanded in the base URL,
// the user agent and the log output path. The default base URL is
// itself such a pattern, so TICKETDESK_API_URL overrides it in every
// configuration that does not name a URL explicitly.
//
// Key exports:
//
//   - [Config] -- master struct with API, Console, Log
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- reports every invalid field at once
package config
