// Package tokenizer provides approximate token counting for chunk
// budgeting. Exactness against any particular model tokenizer is not a
// goal; the estimate only needs to be stable and monotonic so chunk
// budgets behave predictably.
package tokenizer

import (
	"strings"
	"unicode"
)

// charsPerToken is the fallback ratio when word statistics are
// unusable, roughly matching subword tokenizers on English text.
const charsPerToken = 4

// Estimator approximates token counts from word and punctuation
// statistics. The zero value is ready to use.
type Estimator struct{}

// New creates a new token estimator.
func New() *Estimator {
	return &Estimator{}
}

// EstimateTokens returns an approximate token count for the text.
// It returns 0 for empty or whitespace-only text and never fails.
// Appending non-empty text never decreases the estimate: both the
// word statistics and the punctuation count only grow as text grows.
func (e *Estimator) EstimateTokens(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return len(text) / charsPerToken
	}

	// One token per word, with long words splitting into subword
	// tokens and punctuation tokenizing separately.
	tokens := 0
	for _, w := range words {
		tokens += 1 + len(w)/8
	}
	for _, r := range text {
		if unicode.IsPunct(r) {
			tokens++
		}
	}
	return tokens
}
