// Copyright 2024-2026 Firefly Software Solutions Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package manifest

import (
	"io"
	"sync"
)

// Store guards a *Manifest behind a readers-writer discipline: any
// number of resolvers may read concurrently, while load/replace require
// exclusive access. It is an ordinary value, not a process-wide
// singleton — callers that want a shared global own that choice
// themselves.
//
// Go's sync.RWMutex has no native notion of a "poisoned" lock the way
// Rust's std::sync::RwLock does. Store reproduces the observable
// contract — a panic during mutation leaves every later call failing —
// with a recover()-and-flag mechanism: mutating calls defer a recover that
// sets a poisoned flag before re-panicking is avoided (the panic is
// converted into the same ErrLockPoisoned every subsequent call already
// returns), so the failure mode is visible to callers as an ordinary
// error instead of a crashed goroutine.
type Store struct {
	mu       sync.RWMutex
	manifest *Manifest
	loaded   bool
	poisoned bool
}

// NewStore returns an empty, unloaded Store.
func NewStore() *Store {
	return &Store{}
}

// Load decodes data via Decode and installs the result as the Store's
// manifest. On success, prior contents are replaced atomically; on
// failure, the Store's prior state (including "not loaded") is
// unchanged.
func (s *Store) Load(r io.Reader) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			s.poisoned = true
			err = ErrLockPoisoned
		}
	}()

	if s.poisoned {
		return ErrLockPoisoned
	}

	m, decodeErr := Decode(r)
	if decodeErr != nil {
		return decodeErr
	}
	s.manifest = m
	s.loaded = true
	return nil
}

// Replace installs m directly, bypassing decoding — used by callers that
// construct a manifest programmatically (e.g. tests, or a builder
// collaborator) rather than from a byte stream.
func (s *Store) Replace(m *Manifest) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			s.poisoned = true
			err = ErrLockPoisoned
		}
	}()

	if s.poisoned {
		return ErrLockPoisoned
	}
	s.manifest = m
	s.loaded = true
	return nil
}

// Update runs fn with exclusive access to the loaded manifest, for
// explicit add operations after the initial load. Returns ErrNotLoaded
// if no manifest has been loaded. A panic inside fn poisons the Store;
// the call returns ErrLockPoisoned and so does every call after it.
func (s *Store) Update(fn func(*Manifest) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			s.poisoned = true
			err = ErrLockPoisoned
		}
	}()

	if s.poisoned {
		return ErrLockPoisoned
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return fn(s.manifest)
}

// View runs fn with read access to the loaded manifest. It returns
// ErrNotLoaded if no manifest has been loaded, or ErrLockPoisoned if a
// prior mutation panicked.
func (s *Store) View(fn func(*Manifest) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.poisoned {
		return ErrLockPoisoned
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return fn(s.manifest)
}

// Snapshot returns the currently loaded manifest for callers (such as the
// graph builder) that need a reference to build from outside a View
// closure. The returned pointer must be treated as read-only by the
// caller; Store makes no copy.
func (s *Store) Snapshot() (*Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.poisoned {
		return nil, ErrLockPoisoned
	}
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	return s.manifest, nil
}
