package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrPersist marks a failed durable flush. The in-memory snapshot is left on
// the last persisted state when it is returned.
var ErrPersist = errors.New("store: persist failed")

// Store owns the document snapshot. Reads run under a shared lock via View;
// every read-modify-write sequence is serialized through Mutate, which is the
// single mutation entry point for the whole dataset.
type Store struct {
	mu   sync.RWMutex
	path string
	data *Snapshot
}

// Open loads the JSON document at path, creating it with seeded default
// categories when missing or empty.
func Open(path string) (*Store, error) {
	st := &Store{path: path, data: &Snapshot{}}

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(b, st.data); err != nil {
			return nil, fmt.Errorf("store: decode %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fresh database
	default:
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}

	if len(st.data.Categories) == 0 {
		st.data.Categories = defaultCategories()
		if err := st.persist(st.data); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// View runs fn with a read lock over the current snapshot. fn must not retain
// or mutate the snapshot.
func (s *Store) View(fn func(*Snapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// Mutate applies fn to a clone of the current snapshot, flushes the clone to
// disk, and swaps it in. An error from fn aborts the mutation untouched; a
// flush failure is reported as ErrPersist and keeps the previous snapshot.
func (s *Store) Mutate(fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.data.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.Version++
	if err := s.persist(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// persist writes the snapshot to a temp file and renames it over the target,
// so the on-disk document is replaced atomically or not at all.
func (s *Store) persist(snap *Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrPersist, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
