// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rocketdesk/rocketchat"
)

// ChannelsCommand returns the "channels" command listing the channels
// the user has joined.
func ChannelsCommand(streams Streams) *Command {
	var connection ConnectionParams
	var output JSONOutput

	return &Command{
		Name:    "channels",
		Summary: "List joined channels",
		Description: `List the channels the logged-in user has joined, with message counts
and the time of the last message.`,
		Usage: "rocketdesk channels [flags]",
		Examples: []Example{
			{
				Description: "List joined channels as JSON",
				Command:     "rocketdesk channels --json",
			},
		},
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("channels", pflag.ContinueOnError)
			connection.AddFlags(flagSet)
			output.AddFlags(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			conn, err := connection.Open(streams)
			if err != nil {
				return err
			}
			if err := conn.RequireLogin(ctx); err != nil {
				return err
			}
			if err := conn.Session.RefreshJoinedChannels(ctx); err != nil {
				return Classify(fmt.Errorf("listing channels: %w", err))
			}

			channels := conn.Session.JoinedChannels()
			if done, err := output.EmitJSON(streams.Out, channels); done {
				return err
			}
			writeChannelTable(streams.Out, "Joined channels", channels)
			return nil
		},
	}
}

// roomsOutput is the JSON output for the rooms command.
type roomsOutput struct {
	Direct   []rocketchat.DirectRoom `json:"direct"`
	Channels []rocketchat.Channel    `json:"channels"`
}

// RoomsCommand returns the "rooms" command listing every room the user
// can see, split into direct messages and channels.
func RoomsCommand(streams Streams) *Command {
	var connection ConnectionParams
	var output JSONOutput

	return &Command{
		Name:    "rooms",
		Summary: "List direct-message rooms and channels",
		Description: `List every room visible to the logged-in user. Direct-message rooms
and channels (public and private) are shown separately; rooms of other
types are skipped.`,
		Usage:      "rocketdesk rooms [flags]",
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("rooms", pflag.ContinueOnError)
			connection.AddFlags(flagSet)
			output.AddFlags(flagSet)
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			conn, err := connection.Open(streams)
			if err != nil {
				return err
			}
			if err := conn.RequireLogin(ctx); err != nil {
				return err
			}
			if err := conn.Session.RefreshAllRooms(ctx); err != nil {
				return Classify(fmt.Errorf("listing rooms: %w", err))
			}

			direct, channels := conn.Session.Store().Rooms()
			result := roomsOutput{Direct: direct, Channels: channels}
			if result.Direct == nil {
				result.Direct = []rocketchat.DirectRoom{}
			}
			if result.Channels == nil {
				result.Channels = []rocketchat.Channel{}
			}
			if done, err := output.EmitJSON(streams.Out, result); done {
				return err
			}
			writeDirectRoomTable(streams.Out, direct)
			fmt.Fprintln(streams.Out)
			writeChannelTable(streams.Out, "Channels", channels)
			return nil
		},
	}
}
