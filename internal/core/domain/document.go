package domain

import "time"

// Document represents a processed document ready for anonymization
// and probing. It is the canonical representation after text cleaning.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original file name, used in reports.
	Filename string

	// Text is the full cleaned text content.
	Text string

	// WordCount is the number of whitespace-separated words in Text.
	WordCount int

	// Chunks are the token-budgeted slices of Text, in sequence order.
	Chunks []Chunk

	// Entities are the recognised entities, grouped by category.
	Entities EntitySet

	// LegalPatterns are the citation-style patterns found in Text.
	LegalPatterns []LegalPattern

	// CreatedAt is when the document was processed.
	CreatedAt time.Time
}

// Chunk is a bounded slice of a document's text with an estimated
// token cost. Chunks within one document overlap: each chunk after the
// first begins with the trailing words of the previous one.
type Chunk struct {
	// Sequence is the ordinal position within the document,
	// contiguous from 0.
	Sequence int

	// Text is the chunk content.
	Text string

	// EstimatedTokens is the approximate token count of Text.
	// It never exceeds the configured chunk budget unless the chunk
	// consists of a single sentence that alone exceeds the budget.
	EstimatedTokens int
}

// CorpusEntry is a previously processed document retained for
// cross-reference probing. Entries are append-only: once added to the
// corpus they are never mutated or removed within a session.
type CorpusEntry struct {
	// ID is the unique identifier for the entry.
	ID string

	// Filename is the source file name, reported when a later
	// document cross-references this entry.
	Filename string

	// Text is the full document text.
	Text string

	// Entities are the extracted entities at processing time.
	Entities EntitySet

	// LegalPatterns are the extracted patterns at processing time.
	LegalPatterns []LegalPattern
}
