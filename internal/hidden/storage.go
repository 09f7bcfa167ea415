package hidden

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/marcus/due/internal/models"
)

// Key is the storage key the hidden set is persisted under.
const Key = "hiddenAssignmentIds"

const (
	stateFile = ".due/state.json"
	stateDB   = ".due/state.db"
)

// Storage is a minimal durable key-value port.
// Load reports ok=false when the key is absent.
type Storage interface {
	Load(key string) (value string, ok bool, err error)
	Save(key, value string) error
	Clear(key string) error
}

// OpenStorage opens the durable backend selected by backend under baseDir.
// An empty backend selects the file backend.
func OpenStorage(baseDir string, backend models.StorageBackend) (Storage, error) {
	switch backend {
	case "", models.StorageFile:
		return NewFileStorage(filepath.Join(baseDir, stateFile)), nil
	case models.StorageSQLite:
		return OpenSQLiteStorage(filepath.Join(baseDir, stateDB))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (use %q or %q)", backend, models.StorageFile, models.StorageSQLite)
	}
}

// Close closes s if the backend holds resources.
func Close(s Storage) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// MemoryStorage is an in-process Storage, used in tests and as the default
// when no durable backend is configured.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (m *MemoryStorage) Load(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStorage) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStorage) Clear(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
