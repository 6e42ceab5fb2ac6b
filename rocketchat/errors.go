// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport means the HTTP call could not be completed.
	ErrTransport = errors.New("rocketchat: transport failure")

	// ErrMalformedResponse means an expected field was missing or had
	// the wrong type in an otherwise completed call.
	ErrMalformedResponse = errors.New("rocketchat: malformed response")

	// ErrRejected means the server explicitly reported a failure
	// status, e.g. bad credentials.
	ErrRejected = errors.New("rocketchat: rejected by server")

	// ErrPersistence means the token file could not be read or written.
	ErrPersistence = errors.New("rocketchat: token persistence failed")

	// ErrNotLoggedIn is returned by operations that require a logged-in
	// session when none exists. It indicates caller misuse.
	ErrNotLoggedIn = errors.New("rocketchat: not logged in")

	// ErrMalformedTimestamp means a timestamp did not match the server
	// format YYYY-MM-DDTHH:MM:SS.fffZ.
	ErrMalformedTimestamp = errors.New("rocketchat: malformed timestamp")

	// ErrMissingCredentials means a credential login was needed but the
	// user or password was empty.
	ErrMissingCredentials = errors.New("rocketchat: user and password are required")
)

// ServerError is a failure status reported by the server in a
// response body. It unwraps to [ErrRejected]:
//
//	var serverErr *ServerError
//	if errors.As(err, &serverErr) {
//	    fmt.Println(serverErr.Message)
//	}
type ServerError struct {
	// Endpoint is the API path that was called (e.g., "api/v1/login").
	Endpoint string
	// Status is the "status" field of the response, usually "error".
	Status string
	// Message is the human-readable reason, taken from "message" or
	// "error" in the response body.
	Message string
	// StatusCode is the HTTP status code of the response.
	StatusCode int
}

func (e *ServerError) Error() string {
	message := e.Message
	if message == "" {
		message = "no message"
	}
	return fmt.Sprintf("rocketchat: %s rejected (%d, status %q): %s", e.Endpoint, e.StatusCode, e.Status, message)
}

func (e *ServerError) Unwrap() error { return ErrRejected }

// HTTPError is a response whose body was not JSON. A 2xx status unwraps
// to [ErrMalformedResponse]; anything else unwraps to [ErrTransport].
type HTTPError struct {
	Method     string
	Endpoint   string
	StatusCode int
	// Excerpt is the start of the response body, for diagnostics.
	Excerpt string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("rocketchat: unexpected %d response from %s %s: %s", e.StatusCode, e.Method, e.Endpoint, e.Excerpt)
}

func (e *HTTPError) Unwrap() error {
	if e.StatusCode >= 200 && e.StatusCode < 300 {
		return ErrMalformedResponse
	}
	return ErrTransport
}

// TimestampError describes a timestamp that failed to parse. It
// unwraps to [ErrMalformedTimestamp].
type TimestampError struct {
	Input  string
	Reason string
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("rocketchat: malformed timestamp %q: %s", e.Input, e.Reason)
}

func (e *TimestampError) Unwrap() error { return ErrMalformedTimestamp }

// malformed wraps ErrMalformedResponse with a description of what was
// wrong with the response.
func malformed(endpoint, format string, args ...any) error {
	return fmt.Errorf("%w from %s: %s", ErrMalformedResponse, endpoint, fmt.Sprintf(format, args...))
}
