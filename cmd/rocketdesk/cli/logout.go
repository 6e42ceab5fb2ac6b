// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
)

// LogoutCommand returns the "logout" command, which clears the saved
// token. No request is sent to the server.
func LogoutCommand(streams Streams) *Command {
	var connection ConnectionParams

	return &Command{
		Name:    "logout",
		Summary: "Forget the saved session token",
		Description: `Clear the saved session token.

The token file is emptied, so the next command that needs a session
requires "rocketdesk login" again. The server-side session is left to
expire on its own.`,
		Usage:      "rocketdesk logout [flags]",
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("logout", pflag.ContinueOnError)
			connection.AddFlags(flagSet)
			return flagSet
		},
		Run: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			conn, err := connection.Open(streams)
			if err != nil {
				return err
			}
			if err := conn.Session.Logout(); err != nil {
				return Internal("clearing saved token: %w", err)
			}
			fmt.Fprintf(streams.Err, "Cleared %s\n", conn.Session.TokenPath())
			return nil
		},
	}
}
