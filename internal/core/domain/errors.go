package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidWeights indicates a weight set that does not sum to 1
	// or tier thresholds out of order. This is a programmer error and
	// surfaces at construction, never mid-run.
	ErrInvalidWeights = errors.New("invalid scoring configuration")

	// ErrEmptyVocabulary indicates a vocabulary term list with no
	// entries. Probe formulas divide by list sizes, so empty lists
	// are rejected at construction like bad weights.
	ErrEmptyVocabulary = errors.New("empty vocabulary list")

	// ErrUnknownStrategy indicates an anonymization strategy name
	// outside the closed set.
	ErrUnknownStrategy = errors.New("unknown anonymization strategy")

	// ErrGuidelinesRequired indicates the custom strategy was selected
	// without user guidelines.
	ErrGuidelinesRequired = errors.New("custom strategy requires guidelines")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Anonymization and the contextual reconstruction probe degrade
	// without it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrDocumentTooLong indicates the document exceeds the word
	// count limit.
	ErrDocumentTooLong = errors.New("document exceeds word count limit")

	// ErrEmptyDocument indicates no usable text was found.
	ErrEmptyDocument = errors.New("document contains no text")
)
