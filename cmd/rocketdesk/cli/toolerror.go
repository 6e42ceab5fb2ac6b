// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/rocketdesk/rocketchat"
)

// ErrorCategory classifies command errors so scripts can decide whether
// to fix input, re-authenticate, or retry without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: missing arguments,
	// unknown flags, missing credentials, or a command run while logged
	// out. Fix the input and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryForbidden indicates the server rejected the request, e.g.
	// bad credentials or an expired token.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryTransient indicates a temporary failure: network error or
	// timeout. Back off and retry.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: a malformed server
	// response or a local I/O failure.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands. It wraps
// the underlying error so errors.Is and errors.As still work.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns the underlying error message. The category is not
// included in the string.
func (e *ToolError) Error() string { return e.Err.Error() }

func (e *ToolError) Unwrap() error { return e.Err }

// ExitCode maps the category to a process exit status.
func (e *ToolError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryForbidden:
		return 3
	case CategoryTransient:
		return 4
	default:
		return 1
	}
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error: the server rejected the caller.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// Classify wraps err in a ToolError whose category follows the
// rocketchat error taxonomy. An err that already is a ToolError is
// returned unchanged; nil stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		return err
	}

	category := CategoryInternal
	switch {
	case errors.Is(err, rocketchat.ErrMissingCredentials), errors.Is(err, rocketchat.ErrNotLoggedIn):
		category = CategoryValidation
	case errors.Is(err, rocketchat.ErrRejected):
		category = CategoryForbidden
	case errors.Is(err, rocketchat.ErrTransport):
		category = CategoryTransient
	}
	return &ToolError{Category: category, Err: err}
}
