// Package auth persists the bearer credential used by the API client.
//
// A TokenStore holds at most one token. Save overwrites, Get returns "" when
// nothing is stored, Clear removes the token. Every implementation serializes
// access so concurrent Save/Clear calls resolve as last-write-wins without
// interleaved partial writes.
//
// There is no expiry tracking here. A 401 from the backend is the only expiry
// signal and is surfaced by the api package.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrEmptyToken is returned when Save is called with a blank token.
var ErrEmptyToken = errors.New("token cannot be empty")

// TokenStore is the credential cache contract shared by the client and CLI.
type TokenStore interface {
	Save(token string) error
	Get() (string, error)
	Clear() error
}

// Backend names accepted by Open.
const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
)

// Open builds the TokenStore selected by kind. path is used by the file
// backend and user by the keyring backend; empty values use defaults.
func Open(kind, path, user string) (TokenStore, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendFile:
		return NewFileStore(path), nil
	case BackendKeyring:
		return NewKeyringStore(user), nil
	case BackendMemory:
		return &MemoryStore{}, nil
	default:
		return nil, fmt.Errorf("unknown token store %q", kind)
	}
}

// MemoryStore keeps the token in process memory. The zero value is ready.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

var _ TokenStore = (*MemoryStore)(nil)

// Save replaces the held token.
func (m *MemoryStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Get returns the held token, or "".
func (m *MemoryStore) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Clear drops the held token.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
