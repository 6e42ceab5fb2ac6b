// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/bureau-foundation/rocketdesk/lib/secret"
)

// SessionConfig holds configuration for creating a Session.
type SessionConfig struct {
	// ServerURL is the base URL of the Rocket.Chat server. Required.
	ServerURL string

	// BootstrapToken seeds the in-memory auth token. Usually empty;
	// call LoadSavedToken to pick up the token file instead.
	BootstrapToken string

	// TokenFile is the saved-token path. If empty, DefaultTokenPath is
	// used.
	TokenFile string

	// HTTPClient is used for all requests. If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger

	// EmitEveryAttempt makes LoginChanged fire after every login call
	// instead of only on state changes.
	EmitEveryAttempt bool
}

// Session is the surface a presentation layer uses: login, listing
// refreshes, snapshot reads, and the login-changed signal. Safe for
// concurrent use.
type Session struct {
	store        *Store
	client       *Client
	auth         *Auth
	catalog      *Catalog
	loginChanged *Signal
	logger       *slog.Logger
}

// NewSession wires a Store, Client, Auth, and Catalog for one server.
// Nothing is read from disk; call LoadSavedToken for that.
func NewSession(config SessionConfig) (*Session, error) {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := NewClient(ClientConfig{
		ServerURL:  config.ServerURL,
		HTTPClient: config.HTTPClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	tokenPath := config.TokenFile
	if tokenPath == "" {
		tokenPath, err = DefaultTokenPath()
		if err != nil {
			return nil, err
		}
	}

	store := NewStore(client.BaseURL(), config.BootstrapToken, NewTokenFile(tokenPath))
	loginChanged := &Signal{}

	return &Session{
		store:  store,
		client: client,
		auth: NewAuth(store, client, loginChanged, AuthConfig{
			Logger:           logger,
			EmitEveryAttempt: config.EmitEveryAttempt,
		}),
		catalog:      NewCatalog(store, client, CatalogConfig{Logger: logger}),
		loginChanged: loginChanged,
		logger:       logger,
	}, nil
}

// LoadSavedToken reads the token file into the Store and reports
// whether a non-empty token was found. A read failure is logged and
// treated as no token.
func (s *Session) LoadSavedToken() bool {
	token, err := s.store.LoadSavedToken()
	if err != nil {
		s.logger.Warn("reading saved token", "error", err)
		return false
	}
	if token == "" {
		return false
	}
	s.store.SetAuthToken(token)
	s.logger.Debug("loaded saved token",
		"path", s.store.TokenFile().Path(),
		"token_fingerprint", secret.Fingerprint(token),
	)
	return true
}

// Login logs in, trying the saved token before credentials. See Auth.Login.
func (s *Session) Login(ctx context.Context, user string, password *secret.Buffer) error {
	return s.auth.Login(ctx, user, password)
}

// LoginViaSavedToken attempts a resume login. See Auth.LoginViaSavedToken.
func (s *Session) LoginViaSavedToken(ctx context.Context) (bool, error) {
	return s.auth.LoginViaSavedToken(ctx)
}

// Logout clears the session and the token file.
func (s *Session) Logout() error {
	return s.auth.Logout()
}

func (s *Session) IsLoggedIn() bool { return s.store.IsLoggedIn() }

func (s *Session) UserID() string { return s.store.UserID() }

// RefreshJoinedChannels refreshes the joined-channel snapshot.
func (s *Session) RefreshJoinedChannels(ctx context.Context) error {
	return s.catalog.RefreshJoinedChannels(ctx)
}

// RefreshAllRooms refreshes the direct-room and channel-room snapshots.
func (s *Session) RefreshAllRooms(ctx context.Context) error {
	return s.catalog.RefreshAllRooms(ctx)
}

// Refresh runs both listing refreshes concurrently and returns the
// first error. A failure of one does not cancel the other.
func (s *Session) Refresh(ctx context.Context) error {
	var group errgroup.Group
	group.Go(func() error { return s.catalog.RefreshJoinedChannels(ctx) })
	group.Go(func() error { return s.catalog.RefreshAllRooms(ctx) })
	return group.Wait()
}

func (s *Session) JoinedChannels() []Channel { return s.store.JoinedChannels() }

func (s *Session) DirectRooms() []DirectRoom { return s.store.DirectRooms() }

func (s *Session) ChannelRooms() []Channel { return s.store.ChannelRooms() }

// LoginChanged returns the signal emitted when the logged-in state
// changes.
func (s *Session) LoginChanged() *Signal { return s.loginChanged }

// Store returns the underlying state owner.
func (s *Session) Store() *Store { return s.store }

// TokenPath returns the saved-token file location.
func (s *Session) TokenPath() string { return s.store.TokenFile().Path() }

// CloseIdleConnections releases pooled HTTP connections.
func (s *Session) CloseIdleConnections() { s.client.CloseIdleConnections() }
