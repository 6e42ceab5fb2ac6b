// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import "sync"

// Store owns the session state: the immutable base URL, the auth token,
// the user id, and the cached room listings. Every method is one short
// critical section; none performs network I/O under the lock.
//
// The user id is the sole login signal: IsLoggedIn reports whether it
// is non-empty. Snapshot setters copy their input and replace the
// previous snapshot wholesale. Readers receive copies.
type Store struct {
	baseURL   string
	tokenFile *TokenFile

	mu             sync.RWMutex
	authToken      string
	userID         string
	joinedChannels []Channel
	directRooms    []DirectRoom
	channelRooms   []Channel
}

// NewStore creates a Store for baseURL with an optional bootstrap
// token. A nil tokenFile keeps tokens in memory only.
func NewStore(baseURL, token string, tokenFile *TokenFile) *Store {
	return &Store{
		baseURL:   baseURL,
		tokenFile: tokenFile,
		authToken: token,
	}
}

// BaseURL returns the server base URL.
func (s *Store) BaseURL() string { return s.baseURL }

// TokenFile returns the backing token file, or nil.
func (s *Store) TokenFile() *TokenFile { return s.tokenFile }

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID != ""
}

func (s *Store) AuthToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authToken
}

func (s *Store) SetAuthToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = token
}

func (s *Store) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Store) SetUserID(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
}

// ClearUserID marks the session as logged out. The token is kept so a
// later resume login can use it.
func (s *Store) ClearUserID() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = ""
}

// SetCredentials commits a user id and its token together, so no
// reader observes one without the other.
func (s *Store) SetCredentials(userID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.authToken = token
}

// Snapshot copies the base URL, user id, and token under one read lock.
// Use it when building an authenticated request.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		BaseURL:   s.baseURL,
		UserID:    s.userID,
		AuthToken: s.authToken,
	}
}

func (s *Store) JoinedChannels() []Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneChannels(s.joinedChannels)
}

func (s *Store) SetJoinedChannels(channels []Channel) {
	channels = cloneChannels(channels)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.joinedChannels = channels
}

func (s *Store) DirectRooms() []DirectRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDirectRooms(s.directRooms)
}

func (s *Store) SetDirectRooms(rooms []DirectRoom) {
	rooms = cloneDirectRooms(rooms)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directRooms = rooms
}

func (s *Store) ChannelRooms() []Channel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneChannels(s.channelRooms)
}

func (s *Store) SetChannelRooms(channels []Channel) {
	channels = cloneChannels(channels)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channelRooms = channels
}

// SetRooms replaces the direct-room and channel-room snapshots in one
// critical section.
func (s *Store) SetRooms(direct []DirectRoom, channels []Channel) {
	direct = cloneDirectRooms(direct)
	channels = cloneChannels(channels)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.directRooms = direct
	s.channelRooms = channels
}

// Rooms returns the direct-room and channel-room snapshots read under
// one lock.
func (s *Store) Rooms() ([]DirectRoom, []Channel) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDirectRooms(s.directRooms), cloneChannels(s.channelRooms)
}

// LoadSavedToken reads the token file. A missing file returns "" and a
// nil error; other failures wrap ErrPersistence. The in-memory token is
// not changed.
func (s *Store) LoadSavedToken() (string, error) {
	if s.tokenFile == nil {
		return "", nil
	}
	return s.tokenFile.Load()
}

// PersistToken commits token to memory and then writes it to the token
// file. A write failure wraps ErrPersistence and does not roll back the
// in-memory commit.
func (s *Store) PersistToken(token string) error {
	if s.tokenFile == nil {
		s.SetAuthToken(token)
		return nil
	}
	return s.tokenFile.save(token, func() { s.SetAuthToken(token) })
}
