// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rocketdesk/lib/secret"
)

// whoamiOutput is the JSON output for the whoami command.
type whoamiOutput struct {
	Server           string `json:"server"`
	TokenFile        string `json:"token_file"`
	TokenFingerprint string `json:"token_fingerprint,omitempty"`
	UserID           string `json:"user_id,omitempty"`
	Status           string `json:"status"`
}

// WhoAmICommand returns the "whoami" command. Without --verify only the
// local token file is read; with --verify the token is resumed against
// the server and the user id reported.
func WhoAmICommand(streams Streams) *Command {
	var connection ConnectionParams
	var output JSONOutput
	var verify bool

	return &Command{
		Name:    "whoami",
		Summary: "Show the saved session",
		Description: `Show the server, token file, and token fingerprint of the saved session.

The fingerprint is a short keyed hash of the token; the token itself is
never printed. With --verify, the token is checked against the server
and the user id it belongs to is shown.`,
		Usage: "rocketdesk whoami [flags]",
		Examples: []Example{
			{
				Description: "Verify the saved token is still valid",
				Command:     "rocketdesk whoami --verify",
			},
		},
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			connection.AddFlags(flagSet)
			output.AddFlags(flagSet)
			flagSet.BoolVar(&verify, "verify", false, "check the token against the server")
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
			session := conn.Session
			token := session.Store().AuthToken()

			result := whoamiOutput{
				Server:           conn.Config.ServerURL,
				TokenFile:        session.TokenPath(),
				TokenFingerprint: secret.Fingerprint(token),
				Status:           "saved",
			}
			if token == "" {
				result.Status = "no token"
			}

			if verify && token != "" {
				loggedIn, err := session.LoginViaSavedToken(ctx)
				if err != nil {
					return Classify(err)
				}
				if loggedIn {
					result.Status = "valid"
					result.UserID = session.UserID()
				} else {
					result.Status = "rejected"
				}
			}

			if done, err := output.EmitJSON(streams.Out, result); done {
				if err != nil {
					return err
				}
			} else {
				tw := tabwriter.NewWriter(streams.Out, 2, 0, 3, ' ', 0)
				fmt.Fprintf(tw, "Server:\t%s\n", result.Server)
				fmt.Fprintf(tw, "Token file:\t%s\n", result.TokenFile)
				if result.TokenFingerprint != "" {
					fmt.Fprintf(tw, "Token:\t%s\n", result.TokenFingerprint)
				}
				if result.UserID != "" {
					fmt.Fprintf(tw, "User ID:\t%s\n", result.UserID)
				}
				fmt.Fprintf(tw, "Status:\t%s\n", result.Status)
				tw.Flush()
			}

			if result.Status == "rejected" || result.Status == "no token" {
				return &ExitError{Code: 1}
			}
			return nil
		},
	}
}
