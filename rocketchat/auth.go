// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/rocketdesk/lib/secret"
)

// AuthConfig holds optional settings for an Auth.
type AuthConfig struct {
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger

	// EmitEveryAttempt makes every login call emit the login-changed
	// signal, not only calls that change the logged-in state.
	EmitEveryAttempt bool
}

// Auth runs the login decision tree against a Store.
type Auth struct {
	store            *Store
	client           *Client
	loginChanged     *Signal
	logger           *slog.Logger
	emitEveryAttempt bool
}

// NewAuth creates an Auth that mutates store, talks through client, and
// emits loginChanged on login state transitions.
func NewAuth(store *Store, client *Client, loginChanged *Signal, config AuthConfig) *Auth {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if loginChanged == nil {
		loginChanged = &Signal{}
	}
	return &Auth{
		store:            store,
		client:           client,
		loginChanged:     loginChanged,
		logger:           logger,
		emitEveryAttempt: config.EmitEveryAttempt,
	}
}

// LoginViaSavedToken attempts a resume login with the Store's current
// token. The user id is cleared first, so a failed attempt never leaves
// a stale identity. An empty token returns (false, nil) without a
// request. A server rejection returns (false, nil).
func (a *Auth) LoginViaSavedToken(ctx context.Context) (bool, error) {
	before := a.store.IsLoggedIn()
	defer a.notify(before)
	return a.resume(ctx)
}

// Login logs in, preferring the saved token. A resume login is always
// attempted first; credentials are only sent if it does not yield a
// logged-in state. The password Buffer is read but not closed.
//
// On a credential login the saved token is cleared before the request.
// On success the new token is committed with the user id and written
// to the token file; a write failure is logged and does not fail the
// login.
func (a *Auth) Login(ctx context.Context, user string, password *secret.Buffer) error {
	before := a.store.IsLoggedIn()
	defer a.notify(before)

	loggedIn, err := a.resume(ctx)
	if err != nil {
		return err
	}
	if loggedIn {
		return nil
	}

	if user == "" || password == nil || password.Len() == 0 {
		return ErrMissingCredentials
	}

	if err := a.store.PersistToken(""); err != nil {
		a.logger.Warn("clearing saved token before credential login",
			"error", err,
		)
	}

	// Password is converted to string at the JSON serialization boundary.
	result, err := a.client.post(ctx, EndpointLogin, map[string]string{
		"user":     user,
		"password": password.String(),
	})
	if err != nil {
		return fmt.Errorf("rocketchat: credential login: %w", err)
	}

	var decoded loginResponse
	if err := json.Unmarshal(result.body, &decoded); err != nil {
		return malformed(EndpointLogin, "%v", err)
	}
	if decoded.Status == "" {
		return malformed(EndpointLogin, "status is missing")
	}
	if decoded.Status != "success" {
		return &ServerError{
			Endpoint:   EndpointLogin,
			Status:     decoded.Status,
			Message:    decoded.reason(),
			StatusCode: result.statusCode,
		}
	}
	if decoded.Data == nil || decoded.Data.UserID == "" {
		return malformed(EndpointLogin, "data.userId is missing")
	}
	if decoded.Data.AuthToken == "" {
		return malformed(EndpointLogin, "data.authToken is missing")
	}

	a.store.SetCredentials(decoded.Data.UserID, decoded.Data.AuthToken)
	if err := a.store.PersistToken(decoded.Data.AuthToken); err != nil {
		a.logger.Error("saving auth token; the session works but will not survive a restart",
			"error", err,
			"user_id", decoded.Data.UserID,
		)
	}

	a.logger.Info("logged in with credentials",
		"user_id", decoded.Data.UserID,
		"token_fingerprint", secret.Fingerprint(decoded.Data.AuthToken),
	)
	return nil
}

// Logout forgets the session: the user id and token are cleared in
// memory and the token file is emptied.
func (a *Auth) Logout() error {
	before := a.store.IsLoggedIn()
	defer a.notify(before)

	a.store.SetCredentials("", "")
	if err := a.store.PersistToken(""); err != nil {
		return err
	}
	a.logger.Info("logged out")
	return nil
}

func (a *Auth) resume(ctx context.Context) (bool, error) {
	a.store.ClearUserID()

	token := a.store.AuthToken()
	if token == "" {
		a.logger.Debug("no saved token, skipping resume login")
		return false, nil
	}
	fingerprint := secret.Fingerprint(token)

	result, err := a.client.post(ctx, EndpointLogin, map[string]string{"resume": token})
	if err != nil {
		return false, fmt.Errorf("rocketchat: resume login: %w", err)
	}

	var decoded loginResponse
	if err := json.Unmarshal(result.body, &decoded); err != nil {
		return false, malformed(EndpointLogin, "%v", err)
	}
	if decoded.Status == "" {
		return false, malformed(EndpointLogin, "status is missing")
	}
	if decoded.Status != "success" {
		a.logger.Info("saved token rejected",
			"token_fingerprint", fingerprint,
			"status", decoded.Status,
			"reason", decoded.reason(),
		)
		return false, nil
	}
	if decoded.Data == nil || decoded.Data.UserID == "" {
		return false, malformed(EndpointLogin, "data.userId is missing")
	}

	// Commit the user id together with the token it was validated
	// against.
	a.store.SetCredentials(decoded.Data.UserID, token)
	a.logger.Info("resumed session with saved token",
		"user_id", decoded.Data.UserID,
		"token_fingerprint", fingerprint,
	)
	return true, nil
}

func (a *Auth) notify(before bool) {
	if a.emitEveryAttempt || a.store.IsLoggedIn() != before {
		a.loginChanged.Emit()
	}
}
