package memory

import (
	"context"
	"sync"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
// It backs single-session runs where the corpus does not need to
// outlive the process, and doubles as the test store.
type CorpusStore struct {
	mu      sync.RWMutex
	entries []domain.CorpusEntry
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{}
}

// Append adds an entry at the end of the corpus.
func (s *CorpusStore) Append(_ context.Context, entry domain.CorpusEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// All returns a snapshot of every entry in insertion order.
func (s *CorpusStore) All(_ context.Context) ([]domain.CorpusEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.CorpusEntry, len(s.entries))
	copy(snapshot, s.entries)
	return snapshot, nil
}

// Count returns the number of entries.
func (s *CorpusStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
