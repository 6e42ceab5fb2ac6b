// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads rocketdesk client configuration.
//
// Configuration comes from a single file named by the ROCKETDESK_CONFIG
// environment variable (via [Load]) or a --config flag (via
// [LoadFile]). There is no directory search. When neither is given,
// [Load] returns [Default]; every field has a usable default except
// the server URL, which the CLI may also take from a flag.
//
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas; anything else is YAML. Unknown keys are rejected so
// that a misspelled option fails loudly instead of being ignored.
//
// ${VAR} and ${VAR:-default} are expanded in token_file after loading.
// No other environment variables override file values.
package config
