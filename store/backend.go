// Package store persists the prize pool and audio preferences as small TOML documents
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by a Backend when no document exists for a key
var ErrNotFound = errors.New("store: not found")

// Backend is a key-value document store
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// FileBackend keeps one <key>.toml file per key under a base directory
type FileBackend struct {
	basePath string
}

// NewFileBackend creates a backend rooted at basePath; the directory is created on first save
func NewFileBackend(basePath string) *FileBackend {
	return &FileBackend{basePath: basePath}
}

// FilePath returns the path for a key
func (b *FileBackend) FilePath(key string) string {
	return filepath.Join(b.basePath, key+".toml")
}

// Exists checks if a document file exists
func (b *FileBackend) Exists(key string) bool {
	_, err := os.Stat(b.FilePath(key))
	return err == nil
}

// Save writes data through a temp file and rename so readers never see a partial document
func (b *FileBackend) Save(key string, data []byte) error {
	if err := os.MkdirAll(b.basePath, 0755); err != nil {
		return fmt.Errorf("store: create %s: %w", b.basePath, err)
	}

	path := b.FilePath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: replace %s: %w", key, err)
	}
	return nil
}

// Load reads a document; ErrNotFound when the file is absent
func (b *FileBackend) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(b.FilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, nil
}

// MemoryBackend is an in-process Backend, used by tests
type MemoryBackend struct {
	mu   sync.Mutex
	docs map[string][]byte

	// SaveErr, when set, is returned by every Save
	SaveErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBackend) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.docs[key] = append([]byte(nil), data...)
	return nil
}

// Put seeds a raw document
func (m *MemoryBackend) Put(key string, data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = []byte(data)
}

// Get returns the raw document for key
func (m *MemoryBackend) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[key]
	return string(data), ok
}
