package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driving"
	"github.com/veilworks/anoncheck-cli/internal/logger"
)

// Ensure ProcessorService implements the interface.
var _ driving.ProcessorService = (*ProcessorService)(nil)

// Intake limits.
const (
	defaultMaxWordCount = 50000
	maxFileSizeBytes    = 50 * 1024 * 1024
)

var (
	// specialCharPattern strips characters outside the legal-document
	// repertoire: letters, digits, whitespace and common punctuation.
	specialCharPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?\-()\[\]{}"'/\\]`)

	// blankLinePattern normalises blank-line runs to a single paragraph
	// boundary, which the chunker splits on.
	blankLinePattern = regexp.MustCompile(`\n[ \t\r]*\n\s*`)
)

// ProcessorOption configures a ProcessorService.
type ProcessorOption func(*ProcessorService)

// WithMaxWordCount overrides the document word count limit.
func WithMaxWordCount(n int) ProcessorOption {
	return func(s *ProcessorService) {
		s.maxWords = n
	}
}

// ProcessorService handles document intake: cleaning, validation,
// chunking, signal extraction and corpus registration.
type ProcessorService struct {
	chunker   driven.Chunker
	extractor driven.SignalExtractor
	corpus    driven.CorpusStore
	maxWords  int
}

// NewProcessorService creates the document processor.
func NewProcessorService(
	chunker driven.Chunker,
	extractor driven.SignalExtractor,
	corpus driven.CorpusStore,
	opts ...ProcessorOption,
) *ProcessorService {
	s := &ProcessorService{
		chunker:   chunker,
		extractor: extractor,
		corpus:    corpus,
		maxWords:  defaultMaxWordCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessText processes already-decoded text under the given filename
// and appends the result to the corpus.
func (s *ProcessorService) ProcessText(ctx context.Context, filename, text string) (*domain.Document, error) {
	logger.Section("Document Processing")
	logger.Debug("Processing %q", filename)

	cleaned := cleanText(text)
	if cleaned == "" {
		return nil, fmt.Errorf("process %q: %w", filename, domain.ErrEmptyDocument)
	}

	wordCount := len(strings.Fields(cleaned))
	if wordCount > s.maxWords {
		return nil, fmt.Errorf("process %q: %w: maximum words %d, found %d",
			filename, domain.ErrDocumentTooLong, s.maxWords, wordCount)
	}

	chunks := s.chunker.Chunk(cleaned)
	entities := s.extractor.Entities(cleaned)
	patterns := s.extractor.LegalPatterns(cleaned)
	logger.Debug("%d words, %d chunks, %d entities, %d legal patterns",
		wordCount, len(chunks), entities.Total(), len(patterns))

	doc := &domain.Document{
		ID:            uuid.NewString(),
		Filename:      filename,
		Text:          cleaned,
		WordCount:     wordCount,
		Chunks:        chunks,
		Entities:      entities,
		LegalPatterns: patterns,
		CreatedAt:     time.Now(),
	}

	entry := domain.CorpusEntry{
		ID:            doc.ID,
		Filename:      doc.Filename,
		Text:          doc.Text,
		Entities:      doc.Entities,
		LegalPatterns: doc.LegalPatterns,
	}
	if err := s.corpus.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("process %q: append to corpus: %w", filename, err)
	}

	return doc, nil
}

// ProcessFile reads a text file and processes its content.
func (s *ProcessorService) ProcessFile(ctx context.Context, path string) (*domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("process %q: %w", path, err)
	}
	if info.Size() > maxFileSizeBytes {
		return nil, fmt.Errorf("process %q: %w: file exceeds %dMB",
			path, domain.ErrInvalidInput, maxFileSizeBytes/(1024*1024))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("process %q: %w", path, err)
	}

	return s.ProcessText(ctx, filepath.Base(path), string(data))
}

// ProcessBatch processes multiple files independently. A failure in
// one file never affects the others.
func (s *ProcessorService) ProcessBatch(ctx context.Context, paths []string) []driving.BatchResult {
	results := make([]driving.BatchResult, 0, len(paths))
	for _, path := range paths {
		doc, err := s.ProcessFile(ctx, path)
		if err != nil {
			logger.Debug("Batch file %q failed: %v", path, err)
		}
		results = append(results, driving.BatchResult{Path: path, Document: doc, Err: err})
	}
	return results
}

// cleanText normalises whitespace and strips unexpected characters.
// Paragraph boundaries (blank lines) are preserved so the chunker can
// split on them; everything else collapses to single spaces.
func cleanText(text string) string {
	text = specialCharPattern.ReplaceAllString(text, "")
	text = blankLinePattern.ReplaceAllString(text, "\n\n")

	paragraphs := strings.Split(text, "\n\n")
	cleaned := paragraphs[:0]
	for _, p := range paragraphs {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, "\n\n")
}
