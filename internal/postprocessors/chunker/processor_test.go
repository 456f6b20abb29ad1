package chunker

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/veilworks/anoncheck-cli/internal/tokenizer"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		p := New()
		if p.chunkBudget != DefaultChunkBudget {
			t.Errorf("expected chunkBudget %d, got %d", DefaultChunkBudget, p.chunkBudget)
		}
		if p.overlapBudget != DefaultOverlapBudget {
			t.Errorf("expected overlapBudget %d, got %d", DefaultOverlapBudget, p.overlapBudget)
		}
	})

	t.Run("custom budgets", func(t *testing.T) {
		p := New(WithChunkBudget(500), WithOverlapBudget(50))
		if p.chunkBudget != 500 {
			t.Errorf("expected chunkBudget 500, got %d", p.chunkBudget)
		}
		if p.overlapBudget != 50 {
			t.Errorf("expected overlapBudget 50, got %d", p.overlapBudget)
		}
	})

	t.Run("overlap exceeds budget", func(t *testing.T) {
		p := New(WithChunkBudget(100), WithOverlapBudget(150))
		if p.overlapBudget >= p.chunkBudget {
			t.Error("overlap should be reduced when it exceeds the chunk budget")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		p := New(WithChunkBudget(0), WithOverlapBudget(-1), WithTokenCounter(nil))
		if p.chunkBudget != DefaultChunkBudget {
			t.Errorf("expected default chunkBudget, got %d", p.chunkBudget)
		}
		if p.overlapBudget != DefaultOverlapBudget {
			t.Errorf("expected default overlapBudget, got %d", p.overlapBudget)
		}
		if p.counter == nil {
			t.Error("expected default token counter")
		}
	})
}

func TestProcessor_Name(t *testing.T) {
	p := New()
	if p.Name() != "chunker" {
		t.Errorf("expected name 'chunker', got '%s'", p.Name())
	}
}

func TestChunk_EmptyText(t *testing.T) {
	p := New()

	if got := p.Chunk(""); len(got) != 0 {
		t.Errorf("expected 0 chunks for empty text, got %d", len(got))
	}
	if got := p.Chunk("  \n\n \t "); len(got) != 0 {
		t.Errorf("expected 0 chunks for whitespace text, got %d", len(got))
	}
}

func TestChunk_SmallText(t *testing.T) {
	p := New(WithChunkBudget(100), WithOverlapBudget(20))
	text := "A short document that fits in one chunk."

	chunks := p.Chunk(text)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for small text, got %d", len(chunks))
	}
	if chunks[0].Sequence != 0 {
		t.Errorf("expected sequence 0, got %d", chunks[0].Sequence)
	}
	if chunks[0].Text != text {
		t.Errorf("expected chunk text to match input")
	}
	if chunks[0].EstimatedTokens <= 0 {
		t.Errorf("expected positive token estimate, got %d", chunks[0].EstimatedTokens)
	}
}

func TestChunk_Deterministic(t *testing.T) {
	p := New(WithChunkBudget(40), WithOverlapBudget(10))
	text := repeatedParagraphs(12, 20)

	first := p.Chunk(text)
	for i := 0; i < 5; i++ {
		if got := p.Chunk(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced different chunks", i)
		}
	}
}

func TestChunk_SequenceContiguous(t *testing.T) {
	p := New(WithChunkBudget(30), WithOverlapBudget(5))
	chunks := p.Chunk(repeatedParagraphs(15, 15))

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Sequence != i {
			t.Errorf("chunk %d has sequence %d", i, c.Sequence)
		}
	}
}

func TestChunk_BudgetRespected(t *testing.T) {
	p := New(WithChunkBudget(50), WithOverlapBudget(10))
	chunks := p.Chunk(repeatedParagraphs(20, 18))

	for _, c := range chunks {
		if c.EstimatedTokens > 50 {
			t.Errorf("chunk %d estimate %d exceeds budget", c.Sequence, c.EstimatedTokens)
		}
	}
}

func TestChunk_OverlapMatchesPreviousTail(t *testing.T) {
	overlapBudget := 10
	p := New(WithChunkBudget(40), WithOverlapBudget(overlapBudget))
	counter := tokenizer.New()
	chunks := p.Chunk(repeatedParagraphs(12, 16))

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev := strings.Fields(chunks[i-1].Text)
		next := strings.Fields(chunks[i].Text)

		n := overlapLen(prev, next)
		if n == 0 {
			continue // overlap can be empty when the tail would not fit
		}

		overlap := strings.Join(next[:n], " ")
		if got := counter.EstimateTokens(overlap); got > overlapBudget {
			t.Errorf("chunk %d overlap estimate %d exceeds overlap budget", i, got)
		}
	}
}

func TestChunk_ReconstructsWordSequence(t *testing.T) {
	p := New(WithChunkBudget(35), WithOverlapBudget(8))
	text := repeatedParagraphs(10, 14)
	chunks := p.Chunk(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	var rebuilt []string
	for i, c := range chunks {
		words := strings.Fields(c.Text)
		if i == 0 {
			rebuilt = append(rebuilt, words...)
			continue
		}
		prev := strings.Fields(chunks[i-1].Text)
		rebuilt = append(rebuilt, words[overlapLen(prev, words):]...)
	}

	if want := strings.Fields(text); !reflect.DeepEqual(rebuilt, want) {
		t.Errorf("reconstructed %d words, want %d; sequences differ", len(rebuilt), len(want))
	}
}

func TestChunk_OversizedParagraphSplitsBySentence(t *testing.T) {
	p := New(WithChunkBudget(20), WithOverlapBudget(4))

	// One paragraph, many sentences, no blank lines.
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&sb, "Sentence number %d has a handful of words in it. ", i)
	}

	chunks := p.Chunk(sb.String())

	if len(chunks) < 2 {
		t.Fatalf("expected sentence-level chunking to produce multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if c.EstimatedTokens > 20 {
			t.Errorf("chunk %d estimate %d exceeds budget", c.Sequence, c.EstimatedTokens)
		}
	}
}

func TestChunk_SingleOversizedSentenceKeptWhole(t *testing.T) {
	p := New(WithChunkBudget(10), WithOverlapBudget(2))

	big := "word " + strings.Repeat("filler ", 40) + "end."
	text := "Short lead sentence here. " + big + " Short tail sentence here."

	chunks := p.Chunk(text)

	found := false
	for _, c := range chunks {
		if strings.Contains(c.Text, "filler filler") && c.EstimatedTokens > 10 {
			found = true
		}
	}
	if !found {
		t.Error("expected the oversized sentence to be kept whole in a single over-budget chunk")
	}
}

func TestChunk_FiveHundredWordParagraph(t *testing.T) {
	p := New(WithChunkBudget(50), WithOverlapBudget(10))
	counter := tokenizer.New()

	// 500 distinct words in one paragraph, sentences well under the
	// budget.
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "w%d", i)
		if i%10 == 9 {
			sb.WriteString(". ")
		} else {
			sb.WriteString(" ")
		}
	}

	chunks := p.Chunk(sb.String())

	if len(chunks) < 2 {
		t.Fatalf("expected more than one chunk, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Sequence != i {
			t.Errorf("chunk %d has sequence %d", i, c.Sequence)
		}
		if i == 0 {
			continue
		}
		prev := strings.Fields(chunks[i-1].Text)
		next := strings.Fields(c.Text)
		if n := overlapLen(prev, next); n > 0 {
			overlap := strings.Join(next[:n], " ")
			if got := counter.EstimateTokens(overlap); got > 10 {
				t.Errorf("chunk %d overlap estimate %d exceeds 10", i, got)
			}
		}
	}
}

// overlapLen returns the length of the longest prefix of next that is
// also a suffix of prev.
func overlapLen(prev, next []string) int {
	max := len(prev)
	if len(next) < max {
		max = len(next)
	}
	for n := max; n > 0; n-- {
		if reflect.DeepEqual(prev[len(prev)-n:], next[:n]) {
			return n
		}
	}
	return 0
}

// repeatedParagraphs builds count paragraphs of wordsEach distinct
// words separated by blank lines.
func repeatedParagraphs(count, wordsEach int) string {
	var sb strings.Builder
	word := 0
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		for j := 0; j < wordsEach; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "w%d", word)
			word++
		}
		sb.WriteString(".")
	}
	return sb.String()
}
