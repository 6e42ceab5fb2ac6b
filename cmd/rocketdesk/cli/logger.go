// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/bureau-foundation/rocketdesk/lib/config"
)

// NewCommandLogger creates a structured logger writing to w. With
// format "auto", a terminal gets slog.TextHandler for human-readable
// output and anything else (pipes, CI, log collectors) gets
// slog.JSONHandler.
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("command", "channels", "server", serverURL)
func NewCommandLogger(w io.Writer, logConfig config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logConfig.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", logConfig.Level, err)
	}
	options := &slog.HandlerOptions{Level: level}

	format := strings.ToLower(logConfig.Format)
	if format == "" || format == "auto" {
		format = "json"
		if isTerminal(w) {
			format = "text"
		}
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, options)
	case "json":
		handler = slog.NewJSONHandler(w, options)
	default:
		return nil, fmt.Errorf("unknown log format %q", logConfig.Format)
	}
	return slog.New(handler), nil
}
