// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rocketchat manages a client session against the Rocket.Chat
// REST API.
//
// A [Session] composes the pieces. [Store] owns the server base URL,
// the authentication state (user id and auth token), and the cached
// room listings; every access is a short critical section under one
// lock and no I/O happens while it is held. [Auth] runs the login
// decision tree: a resume login with the saved token is always tried
// first, and a credential login only happens if the resume did not
// yield a logged-in state. [Catalog] fetches the joined-channel and
// all-room listings and replaces the cached snapshots wholesale. A
// failed fetch leaves the previous snapshot in place.
//
// The saved token lives in a single plain-text file, by default
// <config-dir>/rocketdesk/.auth_token (see [DefaultTokenPath]). A
// missing file is not an error.
//
// Errors are classified with sentinels: [ErrTransport],
// [ErrMalformedResponse], [ErrRejected], [ErrPersistence], and
// [ErrNotLoggedIn]. Use errors.Is to test for them and errors.As to
// extract [*ServerError], [*HTTPError], or [*TimestampError].
//
// Login state changes are announced through [Signal], a synchronous
// list of no-argument callbacks invoked in registration order before
// the login call returns.
package rocketchat
