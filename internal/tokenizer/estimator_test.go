package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens_Empty(t *testing.T) {
	e := New()

	assert.Equal(t, 0, e.EstimateTokens(""))
	assert.Equal(t, 0, e.EstimateTokens("   \n\t  "))
}

func TestEstimateTokens_SimpleText(t *testing.T) {
	e := New()

	// One token per word plus one per punctuation mark.
	got := e.EstimateTokens("The court granted the motion.")
	assert.Equal(t, 6, got)
}

func TestEstimateTokens_GrowsWithText(t *testing.T) {
	e := New()

	short := "The plaintiff filed a complaint"
	long := short + " in the district court on the first of March"

	assert.Greater(t, e.EstimateTokens(long), e.EstimateTokens(short))
}

func TestEstimateTokens_MonotonicUnderAppend(t *testing.T) {
	e := New()

	base := "Therefore, the agreement was breached"
	suffixes := []string{" and", ".", "x", " damages followed.", "\n\nNew paragraph."}

	current := base
	prev := e.EstimateTokens(current)
	for _, s := range suffixes {
		current += s
		next := e.EstimateTokens(current)
		assert.GreaterOrEqual(t, next, prev, "appending %q decreased the estimate", s)
		prev = next
	}
}

func TestEstimateTokens_LongWordsCost(t *testing.T) {
	e := New()

	// A very long unbroken word still accrues subword tokens.
	word := strings.Repeat("a", 80)
	assert.GreaterOrEqual(t, e.EstimateTokens(word), 10)
}

func TestEstimateTokens_Deterministic(t *testing.T) {
	e := New()

	text := "Pursuant to 42 U.S.C. § 1983, the plaintiff seeks damages."
	first := e.EstimateTokens(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.EstimateTokens(text))
	}
}
