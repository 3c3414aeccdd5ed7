package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	keyringService     = "fitlog"
	defaultKeyringUser = "api-token"
)

// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
var ErrKeyringUnavailable = errors.New("OS keyring is not available")

// KeyringStore keeps the token in the OS keyring.
type KeyringStore struct {
	user string
	mu   sync.Mutex
}

var _ TokenStore = (*KeyringStore)(nil)

// NewKeyringStore returns a store for the given keyring user, or the default.
func NewKeyringStore(user string) *KeyringStore {
	if strings.TrimSpace(user) == "" {
		user = defaultKeyringUser
	}
	return &KeyringStore{user: user}
}

// Save stores token in the OS keyring.
func (k *KeyringStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := keyring.Set(keyringService, k.user, token); err != nil {
		return fmt.Errorf("store token in keyring: %w", err)
	}
	return nil
}

// Get returns the keyring token, or "" when no entry exists.
func (k *KeyringStore) Get() (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	token, err := keyring.Get(keyringService, k.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return token, nil
}

// Clear deletes the keyring entry. A missing entry is not an error.
func (k *KeyringStore) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := keyring.Delete(keyringService, k.user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete token from keyring: %w", err)
	}
	return nil
}
