package driving

import (
	"context"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

// AnonymizerService rewrites a document chunk by chunk through the
// LLM using an anonymization strategy.
type AnonymizerService interface {
	// Anonymize processes every chunk of the document and reassembles
	// the anonymized text in sequence order. Chunks whose generation
	// fails are reported in the result rather than aborting the run;
	// an error is returned only when no LLM is configured or every
	// chunk failed.
	Anonymize(ctx context.Context, doc *domain.Document, strategy domain.Strategy) (*AnonymizationResult, error)
}

// AnonymizationResult is the outcome of anonymizing one document.
type AnonymizationResult struct {
	// Text is the reassembled anonymized document.
	Text string

	// Strategy is the strategy that produced it.
	Strategy domain.StrategyName

	// ChunksProcessed is the number of chunks successfully rewritten.
	ChunksProcessed int

	// FailedChunks lists chunks whose generation failed.
	FailedChunks []FailedChunk
}

// FailedChunk records one chunk that could not be anonymized.
type FailedChunk struct {
	// Sequence is the chunk's position in the document.
	Sequence int

	// Reason is the generation failure detail.
	Reason string
}
