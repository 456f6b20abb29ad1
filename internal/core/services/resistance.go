package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driving"
	"github.com/veilworks/anoncheck-cli/internal/logger"
)

// Ensure ResistanceService implements the interface.
var _ driving.ResistanceService = (*ResistanceService)(nil)

// Phrase lengths used by the probes. Pattern matching looks for long,
// highly identifying word sequences; fingerprinting uses shorter ones
// that capture style rather than content.
const (
	patternPhraseLen     = 4
	fingerprintPhraseLen = 3
)

// Evidence truncation limits keep reports readable.
const (
	maxLeakedShown    = 10
	maxPreservedShown = 5
)

var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)

// ResistanceOption configures a ResistanceService.
type ResistanceOption func(*ResistanceService)

// WithRetryPolicy overrides the LLM retry policy used by the
// contextual reconstruction probe.
func WithRetryPolicy(maxRetries int, initialDelay time.Duration) ResistanceOption {
	return func(s *ResistanceService) {
		s.maxRetries = maxRetries
		s.retryDelay = initialDelay
	}
}

// ResistanceService runs the five re-identification probes and
// aggregates them into a resistance report.
type ResistanceService struct {
	extractor driven.SignalExtractor
	corpus    driven.CorpusStore
	llm       driven.LLMService

	cfg domain.ScoringConfig

	maxRetries int
	retryDelay time.Duration
}

// NewResistanceService creates the probe battery service.
// The llm parameter is optional (can be nil); without it the
// contextual reconstruction probe degrades to a zero-scored result.
func NewResistanceService(
	extractor driven.SignalExtractor,
	corpus driven.CorpusStore,
	llm driven.LLMService,
	cfg domain.ScoringConfig,
	opts ...ResistanceOption,
) (*ResistanceService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("resistance service: %w", err)
	}
	s := &ResistanceService{
		extractor:  extractor,
		corpus:     corpus,
		llm:        llm,
		cfg:        cfg,
		maxRetries: 3,
		retryDelay: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RunAll runs every probe against the original/anonymized pair and
// aggregates the results. A probe whose dependency fails contributes
// a zero-scored, high-risk result instead of aborting the battery.
func (s *ResistanceService) RunAll(ctx context.Context, originalText, anonymizedText string) *domain.ResistanceReport {
	logger.Section("Resistance Probes")

	results := make(map[domain.ProbeName]domain.ProbeResult, 5)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	run := func(name domain.ProbeName, probe func() domain.ProbeResult) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := probe()
			logger.Debug("Probe %s: score %.2f (%s)", name, result.Score, result.RiskTier)
			mu.Lock()
			results[name] = result
			mu.Unlock()
		}()
	}

	run(domain.ProbeDirectIdentifier, func() domain.ProbeResult {
		return s.directIdentifiers(originalText, anonymizedText)
	})
	run(domain.ProbePatternMatching, func() domain.ProbeResult {
		return s.patternMatching(originalText, anonymizedText)
	})
	run(domain.ProbeContextualReconstruction, func() domain.ProbeResult {
		return s.contextualReconstruction(ctx, anonymizedText)
	})
	run(domain.ProbeCrossReference, func() domain.ProbeResult {
		return s.crossReference(ctx, anonymizedText)
	})
	run(domain.ProbeLinguisticFingerprint, func() domain.ProbeResult {
		return s.linguisticFingerprint(originalText, anonymizedText)
	})
	wg.Wait()

	score := 0.0
	for _, name := range domain.ProbeNames() {
		score += results[name].Score * s.cfg.Resistance.ForProbe(name)
	}
	logger.Debug("Resistance score: %.2f", score)

	return &domain.ResistanceReport{
		Results:         results,
		ResistanceScore: domain.ClampScore(score),
		Risk:            assessRisk(results),
		Recommendations: recommendations(results),
	}
}

// directIdentifiers searches the anonymized text for entities that
// were recognised in the original. Any exact survival counts as a
// leak regardless of category.
func (s *ResistanceService) directIdentifiers(originalText, anonymizedText string) domain.ProbeResult {
	entities := s.extractor.Entities(originalText)

	all := make([]string, 0, entities.Total())
	for _, category := range domain.Categories() {
		for _, ent := range entities[category] {
			all = append(all, strings.ToLower(ent.Text))
		}
	}

	anonymizedLower := strings.ToLower(anonymizedText)
	var leaked []string
	for _, entity := range all {
		if strings.Contains(anonymizedLower, entity) {
			leaked = append(leaked, entity)
		}
	}

	score := 100.0
	if len(all) > 0 {
		score = 100 - float64(len(leaked))/float64(len(all))*100
	}

	return domain.NewProbeResult(score, map[string]any{
		"total_entities":  len(all),
		"matches_found":   len(leaked),
		"leaked_entities": truncate(leaked, maxLeakedShown),
	})
}

// patternMatching checks whether unique legal patterns and long word
// sequences from the original survived anonymization.
func (s *ResistanceService) patternMatching(originalText, anonymizedText string) domain.ProbeResult {
	originalPatterns := s.extractor.LegalPatterns(originalText)
	anonymizedPatterns := s.extractor.LegalPatterns(anonymizedText)

	anonymizedSet := make(map[string]bool, len(anonymizedPatterns))
	for _, p := range anonymizedPatterns {
		anonymizedSet[strings.ToLower(p.Text)] = true
	}
	var preservedPatterns []string
	for _, p := range originalPatterns {
		if anonymizedSet[strings.ToLower(p.Text)] {
			preservedPatterns = append(preservedPatterns, p.Text)
		}
	}

	originalPhrases := s.extractor.Phrases(originalText, patternPhraseLen)
	anonymizedPhrases := toSet(s.extractor.Phrases(anonymizedText, patternPhraseLen))
	var preservedPhrases []string
	for _, phrase := range originalPhrases {
		if anonymizedPhrases[phrase] {
			preservedPhrases = append(preservedPhrases, phrase)
		}
	}

	total := len(originalPatterns) + len(originalPhrases)
	preserved := len(preservedPatterns) + len(preservedPhrases)

	score := 100.0
	if total > 0 {
		score = 100 - float64(preserved)/float64(total)*100
	}

	return domain.NewProbeResult(score, map[string]any{
		"total_patterns":           total,
		"preserved_patterns":       preserved,
		"preserved_legal_patterns": truncate(preservedPatterns, maxPreservedShown),
		"preserved_phrases":        truncate(preservedPhrases, maxPreservedShown),
	})
}

// reconstructionPrompt asks the model to play attacker against the
// anonymized document.
const reconstructionPrompt = `You are a skilled investigator trying to identify the original case or parties from this anonymized legal document.
Based on the content, legal patterns, and any remaining clues, make your best guess about:

1. What type of legal case this might be
2. Possible parties involved
3. Jurisdiction or court system
4. Time period
5. Any specific case details you can deduce

Anonymized document:
%s

Provide your analysis and confidence level (1-10) for each guess.`

// contextualReconstruction asks the LLM to reverse-engineer the case
// from the anonymized text and scores how confident and specific the
// attempt is.
func (s *ResistanceService) contextualReconstruction(ctx context.Context, anonymizedText string) domain.ProbeResult {
	if s.llm == nil {
		return domain.FailedProbeResult(domain.ErrLLMUnavailable.Error())
	}

	start := time.Now()
	attempt, err := s.generateWithRetry(ctx, fmt.Sprintf(reconstructionPrompt, anonymizedText))
	if err != nil {
		return domain.FailedProbeResult(fmt.Sprintf("reconstruction attempt failed: %v", err))
	}
	elapsed := time.Since(start)

	attemptLower := strings.ToLower(attempt)
	indicators := s.cfg.Vocabulary.ConfidenceIndicators
	categories := s.cfg.Vocabulary.DetailCategories

	confidenceCount := countContained(attemptLower, indicators)
	detailsCount := countContained(attemptLower, categories)

	confidencePenalty := float64(confidenceCount) / float64(len(indicators)) * 50
	detailsPenalty := float64(detailsCount) / float64(len(categories)) * 50
	score := 100 - confidencePenalty - detailsPenalty

	return domain.NewProbeResult(score, map[string]any{
		"reconstruction_attempt":      clip(attempt, 500),
		"confidence_indicators_found": confidenceCount,
		"specific_details_mentioned":  detailsCount,
		"processing_time":             elapsed.Seconds(),
	})
}

// generateWithRetry calls the LLM with exponential backoff. Only
// transport failures are retried; a service-side error is final.
func (s *ResistanceService) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	delay := s.retryDelay
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("Retrying LLM call in %s (attempt %d of %d)", delay, attempt, s.maxRetries)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		out, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
		if err == nil {
			return out, nil
		}
		lastErr = err

		var genErr *driven.GenerateError
		if errors.As(err, &genErr) && !genErr.Retryable() {
			return "", err
		}
	}
	return "", lastErr
}

// crossReference compares the anonymized text against every corpus
// entry. The closest match drives the score; an empty corpus offers
// nothing to link against.
func (s *ResistanceService) crossReference(ctx context.Context, anonymizedText string) domain.ProbeResult {
	entries, err := s.corpus.All(ctx)
	if err != nil {
		return domain.FailedProbeResult(fmt.Sprintf("corpus unavailable: %v", err))
	}

	if len(entries) == 0 {
		return domain.NewProbeResult(100, map[string]any{
			"corpus_size": 0,
			"message":     "No corpus available for cross-reference testing",
		})
	}

	maxSimilarity := -1.0
	closest := ""
	similarities := make([][2]any, 0, len(entries))
	for _, entry := range entries {
		similarity := s.extractor.Similarity(anonymizedText, entry.Text)
		similarities = append(similarities, [2]any{entry.Filename, similarity})
		if similarity > maxSimilarity {
			maxSimilarity = similarity
			closest = entry.Filename
		}
	}

	score := 100 - maxSimilarity*100

	return domain.NewProbeResult(score, map[string]any{
		"corpus_size":        len(entries),
		"highest_similarity": maxSimilarity,
		"similar_document":   closest,
		"all_similarities":   similarities,
	})
}

// linguisticFingerprint measures how much of the original writing
// style survived: shared vocabulary, shared short phrases and a
// similar average sentence length all make the author recognisable.
func (s *ResistanceService) linguisticFingerprint(originalText, anonymizedText string) domain.ProbeResult {
	originalAvg := averageSentenceLength(originalText)
	anonymizedAvg := averageSentenceLength(anonymizedText)

	structureSimilarity := 0.0
	if originalAvg > 0 {
		structureSimilarity = 1 - math.Abs(originalAvg-anonymizedAvg)/originalAvg
	}

	originalWords := toSet(lowerWords(originalText))
	anonymizedWords := toSet(lowerWords(anonymizedText))
	vocabOverlap := 0.0
	if len(originalWords) > 0 {
		vocabOverlap = float64(intersectionSize(originalWords, anonymizedWords)) / float64(len(originalWords))
	}

	originalPhrases := s.extractor.Phrases(originalText, fingerprintPhraseLen)
	anonymizedPhrases := toSet(s.extractor.Phrases(anonymizedText, fingerprintPhraseLen))
	phraseOverlap := 0.0
	if len(originalPhrases) > 0 {
		shared := 0
		for _, phrase := range originalPhrases {
			if anonymizedPhrases[phrase] {
				shared++
			}
		}
		phraseOverlap = float64(shared) / float64(len(originalPhrases))
	}

	score := 100 - (vocabOverlap*30 + phraseOverlap*40 + structureSimilarity*30)

	return domain.NewProbeResult(score, map[string]any{
		"vocabulary_overlap":             vocabOverlap,
		"phrase_overlap":                 phraseOverlap,
		"structure_similarity":           structureSimilarity,
		"original_avg_sentence_length":   originalAvg,
		"anonymized_avg_sentence_length": anonymizedAvg,
	})
}

// assessRisk partitions the probes into risk bands in battery order.
func assessRisk(results map[domain.ProbeName]domain.ProbeResult) domain.RiskAssessment {
	var assessment domain.RiskAssessment
	for _, name := range domain.ProbeNames() {
		switch results[name].RiskTier {
		case domain.RiskHigh:
			assessment.HighRisk = append(assessment.HighRisk, name)
		case domain.RiskMedium:
			assessment.MediumRisk = append(assessment.MediumRisk, name)
		default:
			assessment.LowRisk = append(assessment.LowRisk, name)
		}
	}
	switch {
	case len(assessment.HighRisk) > 0:
		assessment.Overall = domain.RiskHigh
	case len(assessment.MediumRisk) > 0:
		assessment.Overall = domain.RiskMedium
	default:
		assessment.Overall = domain.RiskLow
	}
	return assessment
}

// adviceThreshold is the probe score below which advice is emitted.
const adviceThreshold = 80.0

var probeAdvice = map[domain.ProbeName][]string{
	domain.ProbeDirectIdentifier: {
		"Consider using more aggressive entity replacement strategy",
		"Review entity extraction to catch missed identifiers",
	},
	domain.ProbePatternMatching: {
		"Replace or generalize unique legal patterns",
		"Consider breaking up distinctive phrase structures",
	},
	domain.ProbeContextualReconstruction: {
		"Reduce contextual clues that enable reconstruction",
		"Consider more abstract anonymization approach",
	},
	domain.ProbeCrossReference: {
		"Ensure sufficient differentiation from similar documents",
		"Consider additional randomization elements",
	},
	domain.ProbeLinguisticFingerprint: {
		"Vary sentence structure and vocabulary",
		"Consider style transformation in addition to anonymization",
	},
}

// recommendations derives advisory strings from weak probe results,
// in battery order.
func recommendations(results map[domain.ProbeName]domain.ProbeResult) []string {
	var advice []string
	for _, name := range domain.ProbeNames() {
		if results[name].Score < adviceThreshold {
			advice = append(advice, probeAdvice[name]...)
		}
	}
	if len(advice) == 0 {
		advice = append(advice, "Anonymization quality is good - no major improvements needed")
	}
	return advice
}

func averageSentenceLength(text string) float64 {
	sentences := sentenceSplitPattern.Split(text, -1)
	total := 0
	for _, sentence := range sentences {
		total += len(strings.Fields(sentence))
	}
	return float64(total) / float64(len(sentences))
}

func lowerWords(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func intersectionSize(a, b map[string]bool) int {
	n := 0
	for item := range a {
		if b[item] {
			n++
		}
	}
	return n
}

func countContained(haystack string, needles []string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			n++
		}
	}
	return n
}

func truncate(items []string, max int) []string {
	if len(items) > max {
		return items[:max]
	}
	return items
}

func clip(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
