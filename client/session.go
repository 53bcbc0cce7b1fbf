package client

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"teamup/viewmodel"
)

// currentUserKey is the fixed key the authenticated user's view-model
// (token included) persists under across restarts.
const currentUserKey = "currentUser"

// SessionStorage is the durable key/value port the client persists the
// authenticated user into. Get returns nil data when the key is absent.
type SessionStorage interface {
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Delete(key string) error
}

// FileStorage keeps each key as a JSON file inside a directory.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{Dir: dir}
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func (s *FileStorage) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (s *FileStorage) Set(key string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o600)
}

func (s *FileStorage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemStorage is the in-memory fallback used when no durable storage is
// injected; sessions then last only as long as the process.
type MemStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{data: make(map[string][]byte)}
}

func (s *MemStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *MemStorage) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func (s *MemStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// restoreSession reads the persisted user once at construction.
func (c *Client) restoreSession() {
	data, err := c.storage.Get(currentUserKey)
	if err != nil {
		log.Printf("Error reading persisted session: %v", err)
		return
	}
	if data == nil {
		return
	}
	var user viewmodel.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("Error decoding persisted session: %v", err)
		return
	}
	c.user = &user
	c.token = user.Token
}

// saveSession persists the authenticated user under the fixed key.
func (c *Client) saveSession(user viewmodel.User) error {
	c.user = &user
	c.token = user.Token
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.storage.Set(currentUserKey, data)
}

// clearSession drops the authenticated user from memory and storage.
func (c *Client) clearSession() error {
	c.user = nil
	c.token = ""
	return c.storage.Delete(currentUserKey)
}
