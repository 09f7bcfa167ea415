package hidden

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/due/internal/filelock"
)

// FileStorage keeps entries in a single JSON object file, written
// atomically (temp file + rename) under an exclusive file lock.
type FileStorage struct {
	path string
}

// NewFileStorage returns a FileStorage backed by path. The file is created
// on first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Path returns the backing file path
func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) Load(key string) (string, bool, error) {
	entries, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

func (f *FileStorage) Save(key, value string) error {
	return f.update(func(entries map[string]string) {
		entries[key] = value
	})
}

func (f *FileStorage) Clear(key string) error {
	return f.update(func(entries map[string]string) {
		delete(entries, key)
	})
}

func (f *FileStorage) lockPath() string {
	return f.path + ".lock"
}

func (f *FileStorage) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return entries, nil
}

// update applies fn to the current entries and writes the result. A corrupt
// file is replaced rather than blocking every future write.
func (f *FileStorage) update(fn func(map[string]string)) error {
	return filelock.With(f.lockPath(), func() error {
		entries, err := f.read()
		if err != nil {
			entries = map[string]string{}
		}
		fn(entries)
		return f.write(entries)
	})
}

func (f *FileStorage) write(entries map[string]string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "state-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, f.path)
}
