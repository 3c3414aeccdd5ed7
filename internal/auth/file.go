package auth

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultCredentialsPath = "~/.config/fitlog/credentials.toml"

// DefaultCredentialsPath returns the default credentials file path.
func DefaultCredentialsPath() string {
	return defaultCredentialsPath
}

type credentialsFile struct {
	Token string `toml:"token"`
}

// FileStore keeps the token in a TOML file readable only by the owner.
// The file is read lazily on the first Get and cached afterwards.
type FileStore struct {
	path string

	mu     sync.Mutex
	loaded bool
	token  string
}

var _ TokenStore = (*FileStore)(nil)

// NewFileStore returns a store backed by path, or the default path when empty.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes token to the credentials file, replacing any previous one.
func (f *FileStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.write(credentialsFile{Token: token}); err != nil {
		return err
	}
	f.token = token
	f.loaded = true
	return nil
}

// Get returns the stored token, or "" when the file is missing or empty.
func (f *FileStore) Get() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loaded {
		return f.token, nil
	}
	creds, err := f.read()
	if err != nil {
		return "", err
	}
	f.token = strings.TrimSpace(creds.Token)
	f.loaded = true
	return f.token, nil
}

// Clear removes the token. A missing file is not an error.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	resolved, err := resolvePath(f.path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	f.token = ""
	f.loaded = true
	return nil
}

func (f *FileStore) read() (credentialsFile, error) {
	resolved, err := resolvePath(f.path)
	if err != nil {
		return credentialsFile{}, fmt.Errorf("resolve path: %w", err)
	}
	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return credentialsFile{}, nil
		}
		return credentialsFile{}, fmt.Errorf("open credentials: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return credentialsFile{}, fmt.Errorf("read credentials: %w", err)
	}
	var creds credentialsFile
	if err := toml.Unmarshal(bytes, &creds); err != nil {
		return credentialsFile{}, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}

// write replaces the file through a temp file and rename so a reader never
// sees a partially written token.
func (f *FileStore) write(creds credentialsFile) error {
	resolved, err := resolvePath(f.path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	bytes, err := toml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*.toml")
	if err != nil {
		return fmt.Errorf("create temp credentials: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod credentials: %w", err)
	}
	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials: %w", err)
	}
	if err := os.Rename(tmpName, resolved); err != nil {
		return fmt.Errorf("replace credentials: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultCredentialsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
