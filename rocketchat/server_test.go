// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bureau-foundation/rocketdesk/lib/secret"
)

// fakeServer is an in-process Rocket.Chat REST server covering the
// login and listing endpoints.
type fakeServer struct {
	*httptest.Server

	mu sync.Mutex
	// tokens maps a valid auth token to its user id.
	tokens map[string]string
	// accounts maps user name to password.
	accounts map[string]string
	// userIDs maps user name to the id returned on login.
	userIDs map[string]string
	issued  int

	resumeRequests     int
	credentialRequests int
	joinedRequests     int
	roomsRequests      int
	lastHeaders        http.Header

	// loginOverride, if set, replaces the login handler's response.
	loginOverride func(writer http.ResponseWriter, body map[string]string) bool
	// joinedBody and roomsBody are written verbatim by the listing
	// endpoints for authenticated requests.
	joinedBody string
	roomsBody  string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	server := &fakeServer{
		tokens:     make(map[string]string),
		accounts:   map[string]string{"alice": "correct horse"},
		userIDs:    map[string]string{"alice": "user-alice"},
		joinedBody: `{"channels":[],"success":true}`,
		roomsBody:  `{"update":[],"remove":[],"success":true}`,
	}
	server.Server = httptest.NewServer(http.HandlerFunc(server.handle))
	t.Cleanup(server.Close)
	return server
}

// addToken registers token as valid for userID.
func (s *fakeServer) addToken(token, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
}

func (s *fakeServer) setJoined(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joinedBody = body
}

func (s *fakeServer) setRooms(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomsBody = body
}

func (s *fakeServer) setLoginOverride(override func(http.ResponseWriter, map[string]string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginOverride = override
}

type requestCounts struct {
	resume, credential, joined, rooms int
}

func (s *fakeServer) counts() requestCounts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return requestCounts{s.resumeRequests, s.credentialRequests, s.joinedRequests, s.roomsRequests}
}

func (s *fakeServer) headers() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeaders.Clone()
}

func (s *fakeServer) handle(writer http.ResponseWriter, request *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastHeaders = request.Header.Clone()

	switch {
	case request.Method == http.MethodPost && request.URL.Path == "/api/v1/login":
		s.handleLogin(writer, request)
	case request.Method == http.MethodGet && request.URL.Path == "/api/v1/channels.list.joined":
		s.joinedRequests++
		if s.authorized(writer, request) {
			writeRaw(writer, http.StatusOK, s.joinedBody)
		}
	case request.Method == http.MethodGet && request.URL.Path == "/api/v1/rooms.get":
		s.roomsRequests++
		if s.authorized(writer, request) {
			writeRaw(writer, http.StatusOK, s.roomsBody)
		}
	default:
		writeJSON(writer, http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
	}
}

func (s *fakeServer) handleLogin(writer http.ResponseWriter, request *http.Request) {
	var body map[string]string
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		writeJSON(writer, http.StatusBadRequest, map[string]any{"status": "error", "message": err.Error()})
		return
	}

	if _, ok := body["resume"]; ok {
		s.resumeRequests++
	} else {
		s.credentialRequests++
	}

	if s.loginOverride != nil && s.loginOverride(writer, body) {
		return
	}

	if token, ok := body["resume"]; ok {
		userID, valid := s.tokens[token]
		if !valid {
			writeJSON(writer, http.StatusUnauthorized, map[string]any{
				"status": "error", "error": 401, "message": "You've been logged out by the server. Please log in again.",
			})
			return
		}
		writeJSON(writer, http.StatusOK, map[string]any{
			"status": "success",
			"data":   map[string]any{"userId": userID, "authToken": token},
		})
		return
	}

	user, password := body["user"], body["password"]
	if expected, ok := s.accounts[user]; !ok || expected != password {
		writeJSON(writer, http.StatusUnauthorized, map[string]any{
			"status": "error", "error": "Unauthorized", "message": "Unauthorized",
		})
		return
	}

	s.issued++
	token := fmt.Sprintf("issued-token-%d", s.issued)
	s.tokens[token] = s.userIDs[user]
	writeJSON(writer, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"userId": s.userIDs[user], "authToken": token},
	})
}

func (s *fakeServer) authorized(writer http.ResponseWriter, request *http.Request) bool {
	token := request.Header.Get("X-Auth-Token")
	userID := request.Header.Get("X-User-Id")
	if expected, ok := s.tokens[token]; !ok || expected != userID || userID == "" {
		writeJSON(writer, http.StatusUnauthorized, map[string]any{
			"status": "error", "message": "You must be logged in to do this.",
		})
		return false
	}
	return true
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
}

func writeRaw(writer http.ResponseWriter, status int, body string) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write([]byte(body))
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testBuffer creates a secret.Buffer from a string for testing. The buffer
// is automatically closed when the test completes.
func testBuffer(t *testing.T, value string) *secret.Buffer {
	t.Helper()
	buffer, err := secret.NewFromString(value)
	if err != nil {
		t.Fatalf("creating test buffer: %v", err)
	}
	t.Cleanup(func() { buffer.Close() })
	return buffer
}

// newTestSession creates a Session against server with a token file in
// a fresh temporary directory.
func newTestSession(t *testing.T, server *fakeServer, bootstrapToken string) *Session {
	t.Helper()
	session, err := NewSession(SessionConfig{
		ServerURL:      server.URL,
		BootstrapToken: bootstrapToken,
		TokenFile:      filepath.Join(t.TempDir(), "rocketdesk", ".auth_token"),
		HTTPClient:     server.Client(),
		Logger:         testLogger(),
	})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return session
}

// loggedInSession returns a session already resumed with a valid token.
func loggedInSession(t *testing.T, server *fakeServer) *Session {
	t.Helper()
	server.addToken("valid-token", "user-alice")
	session := newTestSession(t, server, "valid-token")
	loggedIn, err := session.LoginViaSavedToken(t.Context())
	if err != nil || !loggedIn {
		t.Fatalf("LoginViaSavedToken = %v, %v; want true, nil", loggedIn, err)
	}
	return session
}
