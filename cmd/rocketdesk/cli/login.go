// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/rocketdesk/lib/secret"
)

// LoginCommand returns the "login" command. A saved token is tried
// first; the password is only read and sent if the token does not
// resume a session.
func LoginCommand(streams Streams) *Command {
	var connection ConnectionParams
	var passwordFile string

	return &Command{
		Name:    "login",
		Summary: "Authenticate and save a session token",
		Description: `Log in to a Rocket.Chat server and save the session token locally.

If a saved token still resumes a session, no password is needed and
none is sent. Otherwise the password is read (from --password-file, or
prompted on the terminal) and a credential login is performed.

The token is stored at <config-dir>/rocketdesk/.auth_token (or
$ROCKETDESK_TOKEN_FILE if set) with mode 0600. Later commands such as
"rocketdesk channels" use it transparently.`,
		Usage: "rocketdesk login <user> [flags]",
		Examples: []Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "rocketdesk login alice --server https://chat.example.com",
			},
			{
				Description: "Log in with the password from a file",
				Command:     "rocketdesk login alice --password-file ~/.rc-password",
			},
		},
		HelpOutput: streams.Err,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			connection.AddFlags(flagSet)
			flagSet.StringVar(&passwordFile, "password-file", "", "path to a file containing the password, or - for stdin (default: prompt)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string) error {
			if len(args) < 1 {
				return Validation("user is required\n\nUsage: rocketdesk login <user> [flags]")
			}
			user := args[0]
			if len(args) > 1 {
				return Validation("unexpected argument: %s", args[1])
			}

			conn, err := connection.Open(streams)
			if err != nil {
				return err
			}
			session := conn.Session

			loggedIn, err := session.LoginViaSavedToken(ctx)
			if err != nil {
				return Classify(err)
			}
			if !loggedIn {
				// The saved token was just rejected (or absent). Drop it
				// so Login goes straight to the credential request
				// instead of resuming the same token a second time.
				session.Store().SetAuthToken("")

				password, err := readLoginPassword(streams, passwordFile)
				if err != nil {
					return err
				}
				defer password.Close()

				if err := session.Login(ctx, user, password); err != nil {
					return Classify(fmt.Errorf("login failed: %w", err))
				}
			}

			fmt.Fprintf(streams.Err, "Logged in as %s\n", session.UserID())
			fmt.Fprintf(streams.Err, "Token saved to %s\n", session.TokenPath())
			return nil
		},
	}
}

// readLoginPassword reads the password from passwordFile, or prompts on
// the terminal with echo disabled when passwordFile is empty.
func readLoginPassword(streams Streams, passwordFile string) (*secret.Buffer, error) {
	if passwordFile == "-" {
		buffer, err := secret.ReadLine(streams.In)
		if err != nil {
			return nil, Validation("reading password from stdin: %w", err)
		}
		return buffer, nil
	}
	if passwordFile != "" {
		buffer, err := secret.ReadFromPath(passwordFile)
		if err != nil {
			return nil, Validation("reading password: %w", err)
		}
		return buffer, nil
	}

	stdin, ok := streams.In.(*os.File)
	if !ok || !term.IsTerminal(int(stdin.Fd())) {
		return nil, Validation("no terminal available for interactive password prompt (use --password-file)")
	}

	fmt.Fprint(streams.Err, "Password: ")
	passwordBytes, err := term.ReadPassword(int(stdin.Fd()))
	fmt.Fprintln(streams.Err)
	if err != nil {
		return nil, Internal("reading password: %w", err)
	}

	buffer, err := secret.NewFromBytes(passwordBytes)
	if err != nil {
		secret.Zero(passwordBytes)
		return nil, Validation("reading password: %w", err)
	}
	return buffer, nil
}
