package store

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore keeps diagrams in a map.
type MemoryStore struct {
	mu       sync.RWMutex
	diagrams map[string]Diagram
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagrams: make(map[string]Diagram)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Diagram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagrams[id]
	if !ok {
		return nil, notFound(id)
	}
	return &d, nil
}

func (s *MemoryStore) Put(_ context.Context, d *Diagram) error {
	if err := checkID(d.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams[d.ID] = *d
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.diagrams, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*Diagram, error) {
	s.mu.RLock()
	all := slices.Collect(maps.Values(s.diagrams))
	s.mu.RUnlock()
	return newestFirst(all, limit), nil
}

func (s *MemoryStore) Close() error { return nil }

// newestFirst sorts by UpdatedAt descending (id ascending on ties) and
// truncates to limit.
func newestFirst(all []Diagram, limit int) []*Diagram {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	slices.SortFunc(all, func(a, b Diagram) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	out := make([]*Diagram, 0, min(limit, len(all)))
	for i := range all[:min(limit, len(all))] {
		out = append(out, &all[i])
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
