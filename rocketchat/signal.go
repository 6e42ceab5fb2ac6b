// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rocketchat

import (
	"slices"
	"sync"
)

// Signal is an ordered list of no-argument callbacks. Emit invokes them
// synchronously in registration order. The zero value is ready to use.
type Signal struct {
	mu        sync.Mutex
	callbacks []func()
}

// Connect registers callback. A nil callback is ignored.
func (s *Signal) Connect(callback func()) {
	if callback == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, callback)
}

// Emit calls every registered callback in order. Callbacks run outside
// the signal's lock, so a callback may call Connect or read session
// state; callbacks connected during Emit are first called on the next
// Emit.
func (s *Signal) Emit() {
	s.mu.Lock()
	callbacks := slices.Clone(s.callbacks)
	s.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

// DisconnectAll removes every registered callback.
func (s *Signal) DisconnectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = nil
}

// Count returns the number of registered callbacks.
func (s *Signal) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.callbacks)
}
