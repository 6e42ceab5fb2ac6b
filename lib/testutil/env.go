// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
)

// ConfigHome sets XDG_CONFIG_HOME to a fresh temporary directory and
// clears ROCKETDESK_TOKEN_FILE and ROCKETDESK_CONFIG for the duration
// of the test. Returns the directory.
func ConfigHome(t *testing.T) string {
	t.Helper()
	directory := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", directory)
	t.Setenv("ROCKETDESK_TOKEN_FILE", "")
	t.Setenv("ROCKETDESK_CONFIG", "")
	return directory
}

var uniqueCounter atomic.Uint64

// UniqueID returns prefix followed by a process-wide increasing number.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, uniqueCounter.Add(1))
}
