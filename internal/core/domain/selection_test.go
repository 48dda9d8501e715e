package domain

import (
	"slices"
	"testing"
)

func TestSelectionSetToggle(t *testing.T) {
	s := NewSelectionSet()

	s.Toggle(1)
	if !s.Has(1) {
		t.Error("expected 1 to be selected after toggle")
	}

	s.Toggle(1)
	if s.Has(1) {
		t.Error("expected 1 to be deselected after second toggle")
	}

	// Double toggle restores the prior state exactly
	s.Toggle(2)
	s.Toggle(3)
	s.Toggle(3)
	if !s.Has(2) || s.Has(3) {
		t.Errorf("unexpected state: has(2)=%v has(3)=%v", s.Has(2), s.Has(3))
	}
}

func TestSelectionSetPrune(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle(1)
	s.Toggle(2)

	s.Prune(1)
	if s.Has(1) {
		t.Error("expected 1 to be pruned")
	}
	if !s.Has(2) {
		t.Error("prune must not touch other members")
	}

	// Pruning an id that was never selected is a no-op
	s.Prune(99)
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestSelectionSetRetain(t *testing.T) {
	s := NewSelectionSet()
	s.Toggle(1)
	s.Toggle(2)
	s.Toggle(3)

	s.Retain([]Asset{{ID: 1}, {ID: 3}})

	if s.Has(2) {
		t.Error("2 should have been dropped: not in the known listing")
	}
	if !s.Has(1) || !s.Has(3) {
		t.Error("surviving members were dropped")
	}

	// Empty listing empties the selection
	s.Retain(nil)
	if s.Len() != 0 {
		t.Errorf("Len = %d after retain with empty listing, want 0", s.Len())
	}
}

func TestSelectionSetIDs(t *testing.T) {
	s := NewSelectionSet()

	if s.IDs() != nil {
		t.Error("empty selection must yield nil, not an empty slice")
	}

	s.Toggle(30)
	s.Toggle(10)
	s.Toggle(20)

	got := s.IDs()
	want := []int64{10, 20, 30}
	if !slices.Equal(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}

	// Snapshot: mutating the result does not affect the set
	got[0] = 99
	if !slices.Equal(s.IDs(), want) {
		t.Error("IDs result is not a snapshot")
	}
}
