// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rocketdesk/lib/clock"
	"github.com/bureau-foundation/rocketdesk/rocketchat"
)

// WatchCommand returns the "watch" command, which refreshes and prints
// the room listings on an interval until interrupted. clk drives the
// interval; nil means the real clock.
func WatchCommand(streams Streams, clk clock.Clock) *Command {
	var connection ConnectionParams
	var interval time.Duration

	return &Command{
		Name:    "watch",
		Summary: "Refresh the room listings periodically",
		Description: `Refresh the joined channels and all rooms on a fixed interval and print
them after each refresh. A failed refresh is logged and the previous
listing is kept; polling continues until interrupted.

The interval defaults to refresh_interval from the config file (1m).`,
		Usage: "rocketdesk watch [flags]",
		Examples: []Example{
			{
				Description: "Refresh every 30 seconds",
				Command:     "rocketdesk watch --interval 30s",
			},
		},
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("watch", pflag.ContinueOnError)
			connection.AddFlags(flagSet)
			flagSet.DurationVar(&interval, "interval", 0, "time between refreshes (default: refresh_interval from config)")
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

			pollInterval := interval
			if pollInterval == 0 {
				pollInterval = conn.Config.RefreshIntervalDuration()
			}
			if pollInterval <= 0 {
				return Validation("--interval must be positive, got %v", interval)
			}

			session := conn.Session
			// OnRefresh runs on the poller goroutine only.
			warnedUnauthorized := false

			poller, err := rocketchat.NewPoller(session, rocketchat.PollerConfig{
				Interval: pollInterval,
				Clock:    clk,
				Logger:   conn.Logger,
				OnRefresh: func(err error) {
					if err != nil {
						if isUnauthorized(err) && !warnedUnauthorized {
							warnedUnauthorized = true
							fmt.Fprintln(streams.Err, "The server no longer accepts the saved token; run \"rocketdesk login\" to resume")
						}
						return
					}
					warnedUnauthorized = false
					writeChannelTable(streams.Out, "Joined channels", session.JoinedChannels())
					fmt.Fprintln(streams.Out)
					writeDirectRoomTable(streams.Out, session.DirectRooms())
					fmt.Fprintln(streams.Out)
				},
			})
			if err != nil {
				return Validation("%w", err)
			}

			conn.Logger.Info("watching room listings", "interval", pollInterval)
			err = poller.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// isUnauthorized reports whether err is a server rejection with HTTP
// status 401, i.e. the token expired or was revoked.
func isUnauthorized(err error) bool {
	var serverErr *rocketchat.ServerError
	return errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusUnauthorized
}
