package driven

import (
	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

// SignalExtractor provides the text signals the probes and the
// scoring system consume: entities, legal patterns, n-gram phrases
// and a symmetric similarity measure.
//
// Extraction is pure text analysis: implementations must not perform
// I/O and must return empty results rather than failing on unusual
// input.
type SignalExtractor interface {
	// Entities recognises named entities grouped by category. Every
	// category key is present in the result, possibly empty.
	Entities(text string) domain.EntitySet

	// LegalPatterns finds citation-style patterns (case citations,
	// statutes, court names) in document order.
	LegalPatterns(text string) []domain.LegalPattern

	// Phrases returns the distinct lowercase word n-grams of the
	// given length.
	Phrases(text string, n int) []string

	// Similarity computes a symmetric word-set similarity between two
	// texts in [0, 1].
	Similarity(a, b string) float64
}

// TokenCounter approximates the token count of a text under a fixed
// tokenization scheme. Estimates are non-negative and monotonic:
// appending non-empty text never decreases the count. Counting never
// fails; empty text counts as zero.
type TokenCounter interface {
	EstimateTokens(text string) int
}

// Chunker splits text into an ordered sequence of bounded,
// overlapping chunks. Chunking is a pure function of the text and the
// configured budgets: it performs no I/O and never fails, returning an
// empty sequence for empty input.
type Chunker interface {
	// Name returns the chunker name for logging and configuration.
	Name() string

	// Chunk splits the text into chunks with contiguous sequence
	// numbers starting at 0.
	Chunk(text string) []domain.Chunk
}
