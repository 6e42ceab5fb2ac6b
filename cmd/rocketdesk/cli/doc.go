// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the rocketdesk command tree: a small pflag
// based command dispatcher plus the login, logout, whoami, channels,
// rooms, watch, and version commands built on package rocketchat.
//
// Commands write through a [Streams] value rather than the process
// globals so the whole tree can be driven from tests. Errors returned
// by commands are [*ToolError] values carrying a category (validation,
// forbidden, transient, internal) derived from the rocketchat error
// taxonomy by [Classify].
package cli
