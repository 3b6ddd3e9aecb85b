package store

import (
	"context"
	"sync"

	"github.com/argmaplab/argmap/pkg/payload"
)

// MemoryStore is an in-process store for tests and single-run CLI use.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]payload.Result
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]payload.Result)}
}

// SaveResult stores the result under its run id.
func (s *MemoryStore) SaveResult(ctx context.Context, res payload.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[res.RunID] = res
	return nil
}

// GetResult retrieves a result by run id.
func (s *MemoryStore) GetResult(ctx context.Context, runID string) (*payload.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.runs[runID]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

// DeleteResult removes a result by run id.
func (s *MemoryStore) DeleteResult(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
