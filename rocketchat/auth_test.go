// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestLoginViaSavedToken(t *testing.T) {
	t.Run("empty token sends no request", func(t *testing.T) {
		server := newFakeServer(t)
		session := newTestSession(t, server, "")

		loggedIn, err := session.LoginViaSavedToken(t.Context())
		if err != nil {
			t.Fatalf("LoginViaSavedToken failed: %v", err)
		}
		if loggedIn {
			t.Error("logged in with an empty token")
		}
		if counts := server.counts(); counts.resume != 0 || counts.credential != 0 {
			t.Errorf("requests sent: %+v", counts)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		server := newFakeServer(t)
		server.addToken("saved-token", "user-alice")
		session := newTestSession(t, server, "saved-token")

		loggedIn, err := session.LoginViaSavedToken(t.Context())
		if err != nil {
			t.Fatalf("LoginViaSavedToken failed: %v", err)
		}
		if !loggedIn {
			t.Fatal("expected resume login to succeed")
		}
		if session.UserID() != "user-alice" {
			t.Errorf("UserID = %q, want user-alice", session.UserID())
		}
		if counts := server.counts(); counts.resume != 1 || counts.credential != 0 {
			t.Errorf("requests sent: %+v, want one resume and no credential request", counts)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		server := newFakeServer(t)
		session := newTestSession(t, server, "expired-token")

		loggedIn, err := session.LoginViaSavedToken(t.Context())
		if err != nil {
			t.Fatalf("LoginViaSavedToken failed: %v", err)
		}
		if loggedIn || session.IsLoggedIn() {
			t.Error("logged in with a rejected token")
		}
	})

	t.Run("failed resume clears a previous identity", func(t *testing.T) {
		server := newFakeServer(t)
		session := newTestSession(t, server, "expired-token")
		session.Store().SetUserID("stale-user")

		if _, err := session.LoginViaSavedToken(t.Context()); err != nil {
			t.Fatalf("LoginViaSavedToken failed: %v", err)
		}
		if session.UserID() != "" {
			t.Errorf("stale user id %q survived a failed resume", session.UserID())
		}
	})
}

func TestLogin_ValidSavedTokenSkipsCredentials(t *testing.T) {
	server := newFakeServer(t)
	server.addToken("saved-token", "user-alice")
	session := newTestSession(t, server, "saved-token")

	if err := session.Login(t.Context(), "alice", testBuffer(t, "wrong password")); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !session.IsLoggedIn() {
		t.Fatal("not logged in")
	}
	if counts := server.counts(); counts.credential != 0 {
		t.Errorf("sent %d credential requests with a valid saved token", counts.credential)
	}
}

func TestLogin_CredentialsWithEmptyToken(t *testing.T) {
	server := newFakeServer(t)
	session := newTestSession(t, server, "")

	if err := session.Login(t.Context(), "alice", testBuffer(t, "correct horse")); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !session.IsLoggedIn() {
		t.Fatal("not logged in after successful credential login")
	}
	if session.UserID() != "user-alice" {
		t.Errorf("UserID = %q", session.UserID())
	}

	data, err := os.ReadFile(session.TokenPath())
	if err != nil {
		t.Fatalf("reading token file: %v", err)
	}
	if string(data) != "issued-token-1" {
		t.Errorf("token file = %q, want issued-token-1", data)
	}
	if session.Store().AuthToken() != "issued-token-1" {
		t.Errorf("in-memory token = %q", session.Store().AuthToken())
	}
}

func TestLogin_FallsBackToCredentialsWhenResumeRejected(t *testing.T) {
	server := newFakeServer(t)
	session := newTestSession(t, server, "expired-token")

	if err := session.Login(t.Context(), "alice", testBuffer(t, "correct horse")); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	counts := server.counts()
	if counts.resume != 1 || counts.credential != 1 {
		t.Errorf("requests = %+v, want one resume then one credential request", counts)
	}
}

func TestLogin_Rejected(t *testing.T) {
	server := newFakeServer(t)
	session := newTestSession(t, server, "")
	previous := []Channel{{ID: "c1", Name: "general", NumMessages: 3, LastMessageAt: NoTimestamp}}
	session.Store().SetJoinedChannels(previous)
	session.Store().SetRooms([]DirectRoom{{ID: "d1", Usernames: []string{"alice", "bob"}}}, previous)

	err := session.Login(t.Context(), "alice", testBuffer(t, "wrong password"))
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("Login error = %v, want ErrRejected", err)
	}
	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("error %T is not a *ServerError", err)
	}
	if serverErr.StatusCode != http.StatusUnauthorized || serverErr.Message != "Unauthorized" {
		t.Errorf("ServerError = %+v", serverErr)
	}

	if session.IsLoggedIn() {
		t.Error("logged in after rejected login")
	}
	if channels := session.JoinedChannels(); len(channels) != 1 || channels[0] != previous[0] {
		t.Errorf("joined channels changed: %+v", channels)
	}
	if rooms := session.DirectRooms(); len(rooms) != 1 || rooms[0].ID != "d1" {
		t.Errorf("direct rooms changed: %+v", rooms)
	}
	if rooms := session.ChannelRooms(); len(rooms) != 1 || rooms[0].ID != "c1" {
		t.Errorf("channel rooms changed: %+v", rooms)
	}
}

func TestLogin_ClearsSavedTokenBeforeCredentials(t *testing.T) {
	server := newFakeServer(t)
	session := newTestSession(t, server, "")
	if err := session.Store().PersistToken("stale-token"); err != nil {
		t.Fatalf("PersistToken failed: %v", err)
	}

	err := session.Login(t.Context(), "alice", testBuffer(t, "wrong password"))
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("Login error = %v, want ErrRejected", err)
	}

	data, err := os.ReadFile(session.TokenPath())
	if err != nil {
		t.Fatalf("reading token file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("token file = %q after credential attempt, want empty", data)
	}
	if session.Store().AuthToken() != "" {
		t.Errorf("in-memory token = %q, want empty", session.Store().AuthToken())
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	server := newFakeServer(t)
	session := newTestSession(t, server, "")

	if err := session.Login(t.Context(), "", testBuffer(t, "pw")); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("empty user: error = %v, want ErrMissingCredentials", err)
	}
	if err := session.Login(t.Context(), "alice", nil); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("nil password: error = %v, want ErrMissingCredentials", err)
	}
	if counts := server.counts(); counts.credential != 0 {
		t.Errorf("sent %d credential requests without credentials", counts.credential)
	}
}

func TestLogin_MalformedResponses(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"missing status", http.StatusOK, `{"data":{"userId":"u","authToken":"t"}}`, ErrMalformedResponse},
		{"success without data", http.StatusOK, `{"status":"success"}`, ErrMalformedResponse},
		{"success without userId", http.StatusOK, `{"status":"success","data":{"authToken":"t"}}`, ErrMalformedResponse},
		{"success without authToken", http.StatusOK, `{"status":"success","data":{"userId":"u"}}`, ErrMalformedResponse},
		{"status wrong type", http.StatusOK, `{"status":true}`, ErrMalformedResponse},
		{"non-JSON success", http.StatusOK, `<html>maintenance</html>`, ErrMalformedResponse},
		{"non-JSON gateway error", http.StatusBadGateway, `Bad Gateway`, ErrTransport},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			server := newFakeServer(t)
			server.setLoginOverride(func(writer http.ResponseWriter, body map[string]string) bool {
				writeRaw(writer, test.status, test.body)
				return true
			})
			session := newTestSession(t, server, "")

			err := session.Login(t.Context(), "alice", testBuffer(t, "correct horse"))
			if !errors.Is(err, test.want) {
				t.Fatalf("Login error = %v, want %v", err, test.want)
			}
			if session.IsLoggedIn() {
				t.Error("logged in after malformed response")
			}
		})
	}
}

func TestLogin_ResumeMalformedStopsBeforeCredentials(t *testing.T) {
	server := newFakeServer(t)
	server.setLoginOverride(func(writer http.ResponseWriter, body map[string]string) bool {
		if _, ok := body["resume"]; ok {
			writeRaw(writer, http.StatusOK, `{"status":"success","data":{}}`)
			return true
		}
		return false
	})
	session := newTestSession(t, server, "some-token")

	err := session.Login(t.Context(), "alice", testBuffer(t, "correct horse"))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("Login error = %v, want ErrMalformedResponse", err)
	}
	if counts := server.counts(); counts.credential != 0 {
		t.Errorf("credential login attempted after resume error")
	}
}

func TestLogin_TransportFailure(t *testing.T) {
	server := newFakeServer(t)
	session := newTestSession(t, server, "some-token")
	server.Close()

	_, err := session.LoginViaSavedToken(t.Context())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("LoginViaSavedToken error = %v, want ErrTransport", err)
	}
	if session.IsLoggedIn() {
		t.Error("logged in after transport failure")
	}
}

func TestLogin_PersistenceFailureStillLogsIn(t *testing.T) {
	server := newFakeServer(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatalf("writing blocker: %v", err)
	}
	session, err := NewSession(SessionConfig{
		ServerURL:  server.URL,
		TokenFile:  filepath.Join(blocker, ".auth_token"),
		HTTPClient: server.Client(),
		Logger:     testLogger(),
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if err := session.Login(t.Context(), "alice", testBuffer(t, "correct horse")); err != nil {
		t.Fatalf("Login failed despite usable session: %v", err)
	}
	if !session.IsLoggedIn() {
		t.Error("not logged in")
	}
	if session.Store().AuthToken() != "issued-token-1" {
		t.Errorf("in-memory token = %q", session.Store().AuthToken())
	}
}

func TestLoginChanged(t *testing.T) {
	server := newFakeServer(t)
	session := newTestSession(t, server, "")

	emissions := 0
	var observed []bool
	session.LoginChanged().Connect(func() {
		emissions++
		observed = append(observed, session.IsLoggedIn())
	})

	// Not logged in before or after: no change.
	if _, err := session.LoginViaSavedToken(t.Context()); err != nil {
		t.Fatalf("LoginViaSavedToken failed: %v", err)
	}
	if emissions != 0 {
		t.Fatalf("emitted %d times without a state change", emissions)
	}

	if err := session.Login(t.Context(), "alice", testBuffer(t, "correct horse")); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if emissions != 1 || !observed[0] {
		t.Fatalf("after login: emissions=%d observed=%v", emissions, observed)
	}

	// Already logged in; resume keeps the state.
	if err := session.Login(t.Context(), "alice", testBuffer(t, "correct horse")); err != nil {
		t.Fatalf("second Login failed: %v", err)
	}
	if emissions != 1 {
		t.Fatalf("emitted on a login that did not change state")
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if emissions != 2 || observed[1] {
		t.Fatalf("after logout: emissions=%d observed=%v", emissions, observed)
	}
}

func TestLoginChanged_EmitEveryAttempt(t *testing.T) {
	server := newFakeServer(t)
	session, err := NewSession(SessionConfig{
		ServerURL:        server.URL,
		TokenFile:        filepath.Join(t.TempDir(), ".auth_token"),
		HTTPClient:       server.Client(),
		Logger:           testLogger(),
		EmitEveryAttempt: true,
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	emissions := 0
	session.LoginChanged().Connect(func() { emissions++ })

	session.LoginViaSavedToken(t.Context())
	session.Login(t.Context(), "alice", testBuffer(t, "wrong password"))

	if emissions != 2 {
		t.Errorf("emissions = %d, want 2", emissions)
	}
}

func TestLogout(t *testing.T) {
	server := newFakeServer(t)
	session := loggedInSession(t, server)
	if err := session.Store().PersistToken("valid-token"); err != nil {
		t.Fatalf("PersistToken failed: %v", err)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if session.IsLoggedIn() || session.Store().AuthToken() != "" {
		t.Errorf("session not cleared: %+v", session.Store().Snapshot())
	}
	data, err := os.ReadFile(session.TokenPath())
	if err != nil {
		t.Fatalf("reading token file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("token file = %q after logout", data)
	}
}
