// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds passwords outside the Go heap and derives
// log-safe fingerprints for session tokens.
//
// [Buffer] allocates an anonymous mmap region, locks it against swap,
// and marks it excluded from core dumps. Close zeros and unmaps the
// region; any access after Close panics. Login passwords travel through
// the client as a *Buffer and are converted to a string only at the JSON
// serialization boundary.
//
// [Fingerprint] returns a short BLAKE3 keyed digest of a token. Logs
// carry the fingerprint instead of the token so that two log lines can
// be correlated to the same session without leaking the credential.
//
// Depends on golang.org/x/sys/unix and github.com/zeebo/blake3.
package secret
