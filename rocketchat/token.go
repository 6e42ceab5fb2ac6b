// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	// EnvTokenFile overrides the full path of the saved-token file.
	EnvTokenFile = "ROCKETDESK_TOKEN_FILE"

	appName       = "rocketdesk"
	tokenFileName = ".auth_token"
)

// DefaultTokenPath returns the saved-token location. Checks
// ROCKETDESK_TOKEN_FILE first, then $XDG_CONFIG_HOME/rocketdesk/.auth_token,
// then ~/.config/rocketdesk/.auth_token.
func DefaultTokenPath() (string, error) {
	if envPath := os.Getenv(EnvTokenFile); envPath != "" {
		return envPath, nil
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("rocketchat: locating config directory: %w", err)
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, appName, tokenFileName), nil
}

// TokenFile reads and writes the saved token. The file holds the raw
// token bytes with no trailing newline. Writes are serialized and
// replace the file atomically.
type TokenFile struct {
	path string

	// mu serializes writers so concurrent Save calls cannot interleave
	// temp-file creation and rename.
	mu sync.Mutex
}

// NewTokenFile returns a TokenFile at path. Nothing is touched on disk.
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Path returns the file location.
func (f *TokenFile) Path() string { return f.path }

// Load returns the saved token exactly as stored. A missing file or
// directory returns "" and a nil error.
func (f *TokenFile) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: reading %s: %w", ErrPersistence, f.path, err)
	}

	return string(data), nil
}

// Save writes token to the file, creating the parent directory with
// mode 0700. The file is written with mode 0600 via a temporary file in
// the same directory and a rename. An empty token leaves an empty file.
func (f *TokenFile) Save(token string) error {
	return f.save(token, nil)
}

// save runs commit and the write under the writer lock, so the order of
// files on disk matches the order of commits.
func (f *TokenFile) save(token string, commit func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if commit != nil {
		commit()
	}

	directory := filepath.Dir(f.path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("%w: creating directory %s: %w", ErrPersistence, directory, err)
	}

	temporary, err := os.CreateTemp(directory, tokenFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temporary file in %s: %w", ErrPersistence, directory, err)
	}
	temporaryPath := temporary.Name()

	// Remove the temporary file on any failure below; after a
	// successful rename this is a no-op error we ignore.
	defer os.Remove(temporaryPath)

	if err := temporary.Chmod(0600); err != nil {
		temporary.Close()
		return fmt.Errorf("%w: chmod %s: %w", ErrPersistence, temporaryPath, err)
	}
	if _, err := temporary.WriteString(token); err != nil {
		temporary.Close()
		return fmt.Errorf("%w: writing %s: %w", ErrPersistence, temporaryPath, err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("%w: syncing %s: %w", ErrPersistence, temporaryPath, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrPersistence, temporaryPath, err)
	}
	if err := os.Rename(temporaryPath, f.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", ErrPersistence, f.path, err)
	}
	return nil
}
