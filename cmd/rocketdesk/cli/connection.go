// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/rocketdesk/lib/config"
	"github.com/bureau-foundation/rocketdesk/rocketchat"
)

// ConnectionParams holds the flags shared by every command that talks
// to a server.
//
//	var connection cli.ConnectionParams
//	command := &cli.Command{
//	    Flags: func() *pflag.FlagSet {
//	        flagSet := pflag.NewFlagSet("channels", pflag.ContinueOnError)
//	        connection.AddFlags(flagSet)
//	        return flagSet
//	    },
//	    Run: func(ctx context.Context, args []string) error {
//	        conn, err := connection.Open(streams)
//	        ...
//	    },
//	}
type ConnectionParams struct {
	ConfigPath string
	ServerURL  string
	TokenFile  string
}

// AddFlags registers --config, --server, and --token-file.
func (p *ConnectionParams) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&p.ConfigPath, "config", "", "path to a YAML or JSONC config file (default: $"+config.EnvConfigPath+")")
	flagSet.StringVarP(&p.ServerURL, "server", "s", "", "Rocket.Chat server URL (overrides the config file)")
	flagSet.StringVar(&p.TokenFile, "token-file", "", "saved-token path (default: $"+rocketchat.EnvTokenFile+" or <config-dir>/rocketdesk/.auth_token)")
}

// Connection is an opened session plus the configuration and logger it
// was built from.
type Connection struct {
	Config  *config.Config
	Logger  *slog.Logger
	Session *rocketchat.Session
}

// Open loads configuration, applies flag overrides, builds the logger,
// creates the session, and loads the saved token into it.
func (p *ConnectionParams) Open(streams Streams) (*Connection, error) {
	var cfg *config.Config
	var err error
	if p.ConfigPath != "" {
		cfg, err = config.LoadFile(p.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, Validation("%w", err)
	}

	if p.ServerURL != "" {
		cfg.ServerURL = p.ServerURL
	}
	if p.TokenFile != "" {
		cfg.TokenFile = p.TokenFile
	}
	if cfg.ServerURL == "" {
		return nil, Validation("server URL is required (use --server or set server_url in the config file)")
	}

	logger, err := NewCommandLogger(streams.Err, cfg.Log)
	if err != nil {
		return nil, Validation("%w", err)
	}
	logger = logger.With("server", cfg.ServerURL)

	session, err := rocketchat.NewSession(rocketchat.SessionConfig{
		ServerURL:  cfg.ServerURL,
		TokenFile:  cfg.TokenFile,
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeoutDuration()},
		Logger:     logger,
	})
	if err != nil {
		return nil, Validation("%w", err)
	}
	session.LoadSavedToken()

	return &Connection{Config: cfg, Logger: logger, Session: session}, nil
}

// RequireLogin resumes the saved session or fails with a validation
// error telling the user to log in.
func (c *Connection) RequireLogin(ctx context.Context) error {
	loggedIn, err := c.Session.LoginViaSavedToken(ctx)
	if err != nil {
		return Classify(err)
	}
	if !loggedIn {
		return Validation("not logged in to %s (run \"rocketdesk login <user>\" first)", c.Config.ServerURL)
	}
	return nil
}
