// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] wraps the select-with-timeout pattern so tests never
// block forever on a goroutine that failed to report. [ConfigHome]
// points XDG_CONFIG_HOME at a per-test directory so token-file tests
// never touch the developer's real configuration. [UniqueID] yields
// distinct values for fixtures that must not collide.
//
// Helpers call t.Fatalf on failure; setup failures are not recoverable.
package testutil
