package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driving"
	"github.com/veilworks/anoncheck-cli/internal/logger"
)

// Ensure AnonymizerService implements the interface.
var _ driving.AnonymizerService = (*AnonymizerService)(nil)

// chunkInterval spaces out chunk requests so a local model server is
// not flooded.
const chunkInterval = 100 * time.Millisecond

// AnonymizerService rewrites documents chunk by chunk through the LLM.
type AnonymizerService struct {
	llm     driven.LLMService
	limiter *rate.Limiter
}

// NewAnonymizerService creates the anonymizer. The llm parameter is
// optional (can be nil); Anonymize then fails with ErrLLMUnavailable.
func NewAnonymizerService(llm driven.LLMService) *AnonymizerService {
	return &AnonymizerService{
		llm:     llm,
		limiter: rate.NewLimiter(rate.Every(chunkInterval), 1),
	}
}

// Anonymize processes every chunk of the document in sequence order
// and reassembles the anonymized text. A failed chunk is recorded and
// skipped; the run aborts only when the context is cancelled, no LLM
// is configured, or every chunk failed.
func (s *AnonymizerService) Anonymize(ctx context.Context, doc *domain.Document, strategy domain.Strategy) (*driving.AnonymizationResult, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	chunks := doc.Chunks
	if len(chunks) == 0 {
		if strings.TrimSpace(doc.Text) == "" {
			return nil, domain.ErrEmptyDocument
		}
		chunks = []domain.Chunk{{Sequence: 0, Text: doc.Text}}
	}

	logger.Section("Anonymization")
	logger.Debug("Strategy: %s, chunks: %d, model: %s", strategy.Name(), len(chunks), s.llm.ModelName())

	parts := make([]string, 0, len(chunks))
	var failed []driving.FailedChunk
	for i, chunk := range chunks {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("anonymize chunk %d: %w", chunk.Sequence, err)
		}
		logger.Debug("Processing chunk %d/%d", i+1, len(chunks))

		out, err := s.llm.Generate(ctx, strategy.Prompt(chunk.Text), driven.GenerateOptions{})
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("anonymize chunk %d: %w", chunk.Sequence, ctx.Err())
			}
			logger.Debug("Chunk %d failed: %v", chunk.Sequence, err)
			failed = append(failed, driving.FailedChunk{Sequence: chunk.Sequence, Reason: err.Error()})
			continue
		}
		parts = append(parts, strings.TrimSpace(out))
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("anonymization failed: all %d chunks failed", len(chunks))
	}

	return &driving.AnonymizationResult{
		Text:            strings.Join(parts, "\n\n"),
		Strategy:        strategy.Name(),
		ChunksProcessed: len(parts),
		FailedChunks:    failed,
	}, nil
}
