// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete rocketdesk command tree.
package commands

import (
	"context"
	"fmt"

	"github.com/bureau-foundation/rocketdesk/cmd/rocketdesk/cli"
	"github.com/bureau-foundation/rocketdesk/lib/clock"
	"github.com/bureau-foundation/rocketdesk/lib/version"
)

// Root builds the command tree writing to streams. clk drives the
// watch interval; nil means the real clock.
func Root(streams cli.Streams, clk clock.Clock) *cli.Command {
	return &cli.Command{
		Name: "rocketdesk",
		Description: `rocketdesk: a Rocket.Chat session client.

Log in to a Rocket.Chat server, keep the session token on disk, and
list the channels and direct-message rooms visible to the user.`,
		HelpOutput: streams.Err,
		Subcommands: []*cli.Command{
			cli.LoginCommand(streams),
			cli.LogoutCommand(streams),
			cli.WhoAmICommand(streams),
			cli.ChannelsCommand(streams),
			cli.RoomsCommand(streams),
			cli.WatchCommand(streams, clk),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string) error {
					if len(args) > 0 {
						return cli.Validation("unexpected argument: %s", args[0])
					}
					fmt.Fprintf(streams.Out, "rocketdesk %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
