package driven

import (
	"context"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

// CorpusStore is the append-only collection of previously processed
// documents used by the cross-reference probe.
//
// Append must be safe under concurrent use; All returns a consistent
// snapshot in insertion order. Entries are never deduplicated, mutated
// or removed - the corpus grows for the lifetime of a processing
// session.
type CorpusStore interface {
	// Append adds an entry at the end of the corpus.
	Append(ctx context.Context, entry domain.CorpusEntry) error

	// All returns every entry in insertion order. The returned slice
	// is a snapshot: later appends do not modify it.
	All(ctx context.Context) ([]domain.CorpusEntry, error)

	// Count returns the number of entries.
	Count(ctx context.Context) (int, error)
}
