package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/hashpad/turing/pkg/domain"
)

// Store implements ports.TraceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]domain.Snapshot
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]domain.Snapshot),
	}
}

// Append records a copy of snap.
func (s *Store) Append(ctx context.Context, runID string, snap domain.Snapshot) error {
	snap.Tape = slices.Clone(snap.Tape)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[runID] = append(s.data[runID], snap)
	return nil
}

// Load returns a copy of the trace so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, runID string) ([]domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trace, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrTraceNotFound
	}

	ret := make([]domain.Snapshot, len(trace))
	for i, snap := range trace {
		snap.Tape = slices.Clone(snap.Tape)
		ret[i] = snap
	}
	return ret, nil
}

// Delete removes the trace.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns the recorded runs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	slices.Sort(runs)
	return runs, nil
}
