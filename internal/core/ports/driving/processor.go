package driving

import (
	"context"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

// ProcessorService handles document intake: cleaning, validation,
// chunking, signal extraction and corpus registration.
type ProcessorService interface {
	// ProcessText processes already-decoded text under the given
	// filename and appends the result to the corpus.
	ProcessText(ctx context.Context, filename, text string) (*domain.Document, error)

	// ProcessFile reads a text file and processes its content.
	ProcessFile(ctx context.Context, path string) (*domain.Document, error)

	// ProcessBatch processes multiple files independently. A failure
	// in one file never affects the others; per-file errors are
	// reported in the corresponding result.
	ProcessBatch(ctx context.Context, paths []string) []BatchResult
}

// BatchResult is the outcome of processing one file in a batch.
type BatchResult struct {
	// Path is the input file path.
	Path string

	// Document is the processed document, nil when Err is set.
	Document *domain.Document

	// Err is the processing failure for this file, if any.
	Err error
}
