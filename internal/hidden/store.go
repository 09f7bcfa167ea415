// Package hidden implements the persisted set of assignment ids the user has
// dismissed from the table.
package hidden

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
)

// Store is the in-memory hidden set backed by a Storage entry under Key.
// The persisted value is a JSON array of ids in the order they were hidden.
type Store struct {
	storage Storage
	ids     []int
	set     map[int]struct{}
}

// NewStore returns an empty store over storage. Call Load to read the
// persisted entry.
func NewStore(storage Storage) *Store {
	return &Store{
		storage: storage,
		set:     make(map[int]struct{}),
	}
}

// Decode parses a persisted value. Duplicates are dropped, keeping the first
// occurrence.
func Decode(raw string) ([]int, error) {
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode hidden ids: %w", err)
	}
	seen := make(map[int]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

// Read returns the persisted ids from storage. Any failure (absent key,
// unreadable storage, malformed JSON, non-array content) yields an empty
// slice.
func Read(storage Storage) []int {
	raw, ok, err := storage.Load(Key)
	if err != nil {
		slog.Debug("hidden: load", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	ids, err := Decode(raw)
	if err != nil {
		slog.Debug("hidden: discard malformed entry", "err", err)
		return nil
	}
	return ids
}

// Load replaces the in-memory set with the persisted one. It never fails.
func (s *Store) Load() {
	s.Restore(Read(s.storage))
}

// Restore replaces the in-memory set without touching storage.
func (s *Store) Restore(ids []int) {
	s.ids = s.ids[:0]
	s.set = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.set[id]; dup {
			continue
		}
		s.set[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
}

// Hide adds id and overwrites the persisted entry with the full set. Hiding
// an id already in the set is a no-op. The in-memory set is updated even if
// the write fails.
func (s *Store) Hide(id int) error {
	if s.Contains(id) {
		return nil
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
	return s.persist()
}

// Unhide removes a single id and persists the result.
func (s *Store) Unhide(id int) error {
	if !s.Contains(id) {
		return nil
	}
	delete(s.set, id)
	s.ids = slices.DeleteFunc(s.ids, func(v int) bool { return v == id })
	if len(s.ids) == 0 {
		return s.clear()
	}
	return s.persist()
}

// ResetAll empties the set and erases the persisted entry.
func (s *Store) ResetAll() error {
	s.ids = s.ids[:0]
	s.set = make(map[int]struct{})
	return s.clear()
}

// Contains reports whether id is hidden
func (s *Store) Contains(id int) bool {
	_, ok := s.set[id]
	return ok
}

// IDs returns the hidden ids in the order they were hidden
func (s *Store) IDs() []int {
	return slices.Clone(s.ids)
}

// Len returns the number of hidden ids
func (s *Store) Len() int {
	return len(s.ids)
}

// Storage returns the backing storage
func (s *Store) Storage() Storage {
	return s.storage
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.ids)
	if err != nil {
		return err
	}
	if err := s.storage.Save(Key, string(data)); err != nil {
		return fmt.Errorf("persist hidden ids: %w", err)
	}
	return nil
}

func (s *Store) clear() error {
	if err := s.storage.Clear(Key); err != nil {
		return fmt.Errorf("clear hidden ids: %w", err)
	}
	return nil
}
