// Package selection tracks candidates marked for a bulk action.
// Membership is independent of which column a candidate is in.
package selection

import (
	"sync"

	"github.com/thenoetrevino/hireboard/internal/types"
)

// Set is a concurrency-safe set of candidate ids that remembers
// insertion order so bulk requests are issued deterministically.
type Set struct {
	mu    sync.Mutex
	index map[types.CandidateID]struct{}
	order []types.CandidateID
}

// New creates an empty selection
func New() *Set {
	return &Set{index: make(map[types.CandidateID]struct{})}
}

// Toggle adds id when absent and removes it when present.
// It returns true when id is selected afterwards.
func (s *Set) Toggle(id types.CandidateID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; ok {
		s.remove(id)
		return false
	}
	s.add(id)
	return true
}

// Add selects id. Adding a selected id is a no-op.
func (s *Set) Add(id types.CandidateID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		s.add(id)
	}
}

// Remove deselects id
func (s *Set) Remove(id types.CandidateID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; ok {
		s.remove(id)
	}
}

// Clear empties the selection
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = make(map[types.CandidateID]struct{})
	s.order = nil
}

// Has reports whether id is selected
func (s *Set) Has(id types.CandidateID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

// Len returns the number of selected ids
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// IDs materializes the selection in the order ids were selected.
// The returned slice is owned by the caller.
func (s *Set) IDs() []types.CandidateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.CandidateID(nil), s.order...)
}

// Take materializes the selection and clears it in one step
func (s *Set) Take() []types.CandidateID {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.order
	s.index = make(map[types.CandidateID]struct{})
	s.order = nil
	return ids
}

func (s *Set) add(id types.CandidateID) {
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Set) remove(id types.CandidateID) {
	delete(s.index, id)
	for i, cur := range s.order {
		if cur == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return
		}
	}
}
