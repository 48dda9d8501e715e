package domain

import (
	"slices"
	"sync"
)

// SelectionSet tracks which assets are in scope for the next question.
// An empty selection means "all documents", not "none". Membership only;
// no ordering semantics are observable.
type SelectionSet struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{ids: make(map[int64]struct{})}
}

// Toggle flips membership for id. Toggling twice restores the prior state.
func (s *SelectionSet) Toggle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// Prune removes id unconditionally. Pruning an id that was never
// selected is a no-op, not an error.
func (s *SelectionSet) Prune(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Retain drops every member not present in known. Called after each
// listing refresh so the selection never holds a dangling reference.
func (s *SelectionSet) Retain(known []Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alive := make(map[int64]struct{}, len(known))
	for _, a := range known {
		alive[a.ID] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := alive[id]; !ok {
			delete(s.ids, id)
		}
	}
}

func (s *SelectionSet) Has(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *SelectionSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns a snapshot of the selection. Sorted for stable request
// bodies; callers must not rely on the order.
func (s *SelectionSet) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.ids) == 0 {
		return nil
	}
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
