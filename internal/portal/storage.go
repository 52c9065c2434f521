package portal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/glowbook/salon-booking/internal/client"
)

// Keys persisted between runs.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyTheme        = "theme"
)

// Storage is a small string key/value store for tokens and preferences.
type Storage interface {
	Get(key string) string
	Set(key, value string) error
	Delete(keys ...string) error
}

// MemoryStorage keeps values for the lifetime of the process.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (s *MemoryStorage) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStorage) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.values, k)
	}
	return nil
}

// FileStorage persists values as a JSON object. Every write rewrites the file.
type FileStorage struct {
	path string
	mem  *MemoryStorage
	mu   sync.Mutex
}

// OpenFileStorage loads path if it exists. A missing file starts empty.
func OpenFileStorage(path string) (*FileStorage, error) {
	s := &FileStorage{path: path, mem: NewMemoryStorage()}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read storage %s: %w", path, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.mem.values); err != nil {
			return nil, fmt.Errorf("decode storage %s: %w", path, err)
		}
	}
	return s, nil
}

func (s *FileStorage) Get(key string) string {
	return s.mem.Get(key)
}

func (s *FileStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.mem.Set(key, value)
	return s.flush()
}

func (s *FileStorage) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.mem.Delete(keys...)
	return s.flush()
}

// flush replaces the file through a temp file and rename.
func (s *FileStorage) flush() error {
	s.mem.mu.RLock()
	raw, err := json.MarshalIndent(s.mem.values, "", "  ")
	s.mem.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// storageTokens reads the access token out of a Storage.
type storageTokens struct{ s Storage }

func (t storageTokens) AccessToken() string { return t.s.Get(KeyAccessToken) }

// TokenSource exposes the access token held in s to the API clients.
func TokenSource(s Storage) client.TokenSource {
	return storageTokens{s}
}
