// Package chunker provides a token-budgeted text chunking processor.
//
// Text is split at paragraph boundaries and accumulated under a token
// budget; a paragraph that alone exceeds the budget is split again at
// sentence boundaries. Consecutive chunks share an overlap region: the
// trailing words of one chunk are repeated at the start of the next so
// context survives the boundary.
package chunker

import (
	"strings"
	"unicode"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
	"github.com/veilworks/anoncheck-cli/internal/tokenizer"
)

// Ensure Processor implements the interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkBudget is the default chunk size in estimated tokens.
const DefaultChunkBudget = 4000

// DefaultOverlapBudget is the default overlap size in estimated tokens.
const DefaultOverlapBudget = 200

// Processor splits text into token-budgeted overlapping chunks.
type Processor struct {
	counter       driven.TokenCounter
	chunkBudget   int
	overlapBudget int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkBudget sets the chunk budget in estimated tokens.
func WithChunkBudget(budget int) Option {
	return func(p *Processor) {
		if budget > 0 {
			p.chunkBudget = budget
		}
	}
}

// WithOverlapBudget sets the overlap budget in estimated tokens.
func WithOverlapBudget(budget int) Option {
	return func(p *Processor) {
		if budget >= 0 {
			p.overlapBudget = budget
		}
	}
}

// WithTokenCounter sets the token counter used for budgeting.
func WithTokenCounter(counter driven.TokenCounter) Option {
	return func(p *Processor) {
		if counter != nil {
			p.counter = counter
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		counter:       tokenizer.New(),
		chunkBudget:   DefaultChunkBudget,
		overlapBudget: DefaultOverlapBudget,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed the chunk budget
	if p.overlapBudget >= p.chunkBudget {
		p.overlapBudget = p.chunkBudget / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Chunk splits the text into overlapping chunks with contiguous
// sequence numbers starting at 0. It is a pure function of the text
// and the configured budgets: no I/O, fully deterministic, and it
// never fails - empty or whitespace-only text yields no chunks.
//
// Every chunk's estimated token count stays within the chunk budget
// unless the chunk consists of a single sentence that alone exceeds
// it, in which case the sentence is kept whole.
func (p *Processor) Chunk(text string) []domain.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	b := builder{proc: p}

	for _, para := range splitParagraphs(text) {
		paraTokens := p.counter.EstimateTokens(para)

		if paraTokens > p.chunkBudget {
			// Oversized paragraph: accumulate at sentence
			// granularity within this paragraph only.
			for _, sentence := range splitSentences(para) {
				b.add(sentence, " ")
			}
			continue
		}

		b.add(para, "\n\n")
	}

	return b.finish()
}

// builder accumulates units into chunks, closing a chunk whenever the
// next unit would exceed the budget and seeding the successor with the
// overlap tail of the closed chunk.
type builder struct {
	proc    *Processor
	chunks  []domain.Chunk
	current strings.Builder
	tokens  int
	// hasUnits is true once the buffer holds more than a seeded
	// overlap tail. Only such buffers are emitted as chunks, so
	// overlap text is never duplicated beyond adjacent chunks.
	hasUnits bool
}

func (b *builder) add(unit, separator string) {
	unitTokens := b.proc.counter.EstimateTokens(unit)

	if b.hasUnits && b.tokens+unitTokens > b.proc.chunkBudget {
		b.close()
	}

	// A seeded overlap that cannot fit alongside the next unit is
	// dropped rather than emitted on its own.
	if !b.hasUnits && b.current.Len() > 0 && b.tokens+unitTokens > b.proc.chunkBudget {
		b.current.Reset()
		b.tokens = 0
	}

	if b.current.Len() > 0 {
		b.current.WriteString(separator)
	}
	b.current.WriteString(unit)
	b.tokens += unitTokens
	b.hasUnits = true
}

// close emits the current buffer as a chunk and seeds the next buffer
// with the closed chunk's overlap tail.
func (b *builder) close() {
	text := strings.TrimSpace(b.current.String())
	if text == "" {
		return
	}

	b.chunks = append(b.chunks, domain.Chunk{
		Sequence:        len(b.chunks),
		Text:            text,
		EstimatedTokens: b.proc.counter.EstimateTokens(text),
	})

	b.current.Reset()
	b.tokens = 0
	b.hasUnits = false

	if tail := b.proc.overlapTail(text); tail != "" {
		b.current.WriteString(tail)
		b.tokens = b.proc.counter.EstimateTokens(tail)
	}
}

// finish emits the final non-empty buffer and returns all chunks.
// A buffer holding only a seeded overlap tail is discarded.
func (b *builder) finish() []domain.Chunk {
	if !b.hasUnits {
		return b.chunks
	}
	text := strings.TrimSpace(b.current.String())
	if text != "" {
		b.chunks = append(b.chunks, domain.Chunk{
			Sequence:        len(b.chunks),
			Text:            text,
			EstimatedTokens: b.proc.counter.EstimateTokens(text),
		})
	}
	return b.chunks
}

// overlapTail returns the trailing words of the text whose cumulative
// estimated tokens come closest to the overlap budget without
// exceeding it. Words are never split.
func (p *Processor) overlapTail(text string) string {
	if p.overlapBudget <= 0 {
		return ""
	}

	words := strings.Fields(text)
	tokens := 0
	start := len(words)

	for i := len(words) - 1; i >= 0; i-- {
		wordTokens := p.counter.EstimateTokens(words[i])
		if tokens+wordTokens > p.overlapBudget {
			break
		}
		tokens += wordTokens
		start = i
	}

	if start == len(words) {
		return ""
	}
	return strings.Join(words[start:], " ")
}

// splitParagraphs splits text into blank-line-delimited blocks,
// preserving order and dropping empty blocks.
func splitParagraphs(text string) []string {
	blocks := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block != "" {
			paragraphs = append(paragraphs, block)
		}
	}
	return paragraphs
}

// splitSentences splits text at terminal punctuation followed by
// whitespace. The trailing fragment is kept even without terminal
// punctuation.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if !isTerminal(runes[i]) {
			continue
		}
		if i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}

		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()

		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
