package board

import (
	"sync"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/types"
)

// Store owns the current board snapshot. Readers get an immutable
// snapshot; writers replace it whole under the lock.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
	version uint64
}

// NewStore creates a store holding the given snapshot
func NewStore(initial Snapshot) *Store {
	return &Store{current: initial}
}

// Snapshot returns the current snapshot
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Version increments on every replacement
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Replace swaps in a new snapshot
func (s *Store) Replace(next Snapshot) {
	s.mu.Lock()
	s.current = next
	s.version++
	s.mu.Unlock()
}

// Update runs fn against the current snapshot and stores its result.
// fn runs under the write lock, so a decision made from the snapshot it
// receives cannot be invalidated by a concurrent writer. Nothing is
// stored when fn returns an error.
func (s *Store) Update(fn func(Snapshot) (Snapshot, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.current)
	if err != nil {
		return err
	}
	s.current = next
	s.version++
	return nil
}

// Locate reads the candidate's current stage atomically
func (s *Store) Locate(id types.CandidateID) (models.Stage, bool) {
	stage, _, _, ok := s.Snapshot().Locate(id)
	return stage, ok
}

// Columns returns a copy of the current columns
func (s *Store) Columns() []models.Column {
	return s.Snapshot().Columns()
}
