// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version holds build version information for rocketdesk.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/rocketdesk/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/rocketdesk
package version
