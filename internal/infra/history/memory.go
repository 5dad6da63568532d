// Package history keeps recent transformations in memory.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"healthinfo-simplifier/internal/domain/entity"
)

// MemoryStore is a bounded, newest-first list of transformations.
// Callers always receive copies, so stored entries cannot be mutated from
// outside. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	items    []*entity.Transformation
	capacity int
	onChange func(size int)
}

// NewMemoryStore creates a store holding at most capacity entries.
// A non-positive capacity uses DefaultCapacity.
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryStore{
		items:    make([]*entity.Transformation, 0, capacity),
		capacity: capacity,
	}
}

// OnChange registers fn to be called with the new size after every change.
func (s *MemoryStore) OnChange(fn func(size int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Capacity returns the maximum number of stored entries.
func (s *MemoryStore) Capacity() int {
	return s.capacity
}

// Add validates t and puts a copy at the front, evicting the oldest entry
// when the store is full. An ID already present is rejected.
func (s *MemoryStore) Add(_ context.Context, t *entity.Transformation) error {
	if t == nil {
		return &entity.ValidationError{Field: "transformation", Message: "transformation is required"}
	}
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.ID == t.ID {
			return fmt.Errorf("transformation %s already exists: %w", t.ID, entity.ErrInvalidInput)
		}
	}

	cp := *t
	s.items = append([]*entity.Transformation{&cp}, s.items...)
	if len(s.items) > s.capacity {
		for i := s.capacity; i < len(s.items); i++ {
			s.items[i] = nil
		}
		s.items = s.items[:s.capacity]
	}
	s.notify()
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *MemoryStore) List(_ context.Context, limit int) ([]*entity.Transformation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*entity.Transformation, n)
	for i := 0; i < n; i++ {
		cp := *s.items[i]
		out[i] = &cp
	}
	return out, nil
}

// Get returns a copy of the entry with the given ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*entity.Transformation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.items {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("transformation %s: %w", id, entity.ErrNotFound)
}

// Clear removes every entry.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]*entity.Transformation, 0, s.capacity)
	s.notify()
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// PruneOlderThan drops entries created before cutoff and returns how many
// were removed.
func (s *MemoryStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, t := range s.items {
		if !t.CreatedAt.Before(cutoff) {
			kept = append(kept, t)
		}
	}
	removed := len(s.items) - len(kept)
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	if removed > 0 {
		s.notify()
	}
	return removed, nil
}

// notify must be called with mu held.
func (s *MemoryStore) notify() {
	if s.onChange != nil {
		s.onChange(len(s.items))
	}
}
