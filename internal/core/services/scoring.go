package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driving"
	"github.com/veilworks/anoncheck-cli/internal/logger"
)

// Ensure ScoringService implements the interface.
var _ driving.ScoringService = (*ScoringService)(nil)

// timingPatterns recognise durations and dates for the procedural
// guidance sub-score.
var timingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+\s*(days?|weeks?|months?|years?)\b`),
	regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`),
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
}

// ScoringService computes strategic value preservation and the
// overall quality verdict.
type ScoringService struct {
	cfg domain.ScoringConfig
}

// NewScoringService creates the scoring service. The configuration is
// validated once here; a bad weight set never reaches a score
// calculation.
func NewScoringService(cfg domain.ScoringConfig) (*ScoringService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring service: %w", err)
	}
	return &ScoringService{cfg: cfg}, nil
}

// StrategicValue measures how much legal, educational, business and
// procedural utility survived anonymization.
func (s *ScoringService) StrategicValue(originalText, anonymizedText string) domain.StrategicSubScores {
	original := strings.ToLower(originalText)
	anonymized := strings.ToLower(anonymizedText)

	subs := domain.StrategicSubScores{
		LegalPrincipleRetention: s.legalPrincipleRetention(original, anonymized),
		EducationalValue:        s.educationalValue(original, anonymized),
		BusinessIntelligence:    s.businessIntelligence(original, anonymized),
		ProceduralGuidance:      s.proceduralGuidance(original, anonymized),
	}
	logger.Debug("Strategic sub-scores: legal %.2f, educational %.2f, business %.2f, procedural %.2f",
		subs.LegalPrincipleRetention, subs.EducationalValue, subs.BusinessIntelligence, subs.ProceduralGuidance)
	return subs
}

// CalculateOverallScore combines a resistance report with the
// strategic sub-scores into the tiered overall score.
func (s *ScoringService) CalculateOverallScore(report *domain.ResistanceReport, subs domain.StrategicSubScores) domain.OverallScore {
	strategic := s.combineSubScores(subs)
	overall := report.ResistanceScore*s.cfg.Overall.Resistance + strategic*s.cfg.Overall.StrategicValue
	overall = domain.ClampScore(overall)

	logger.Debug("Overall score: %.2f (resistance %.2f, strategic %.2f)",
		overall, report.ResistanceScore, strategic)

	return domain.OverallScore{
		Overall:        overall,
		Resistance:     report.ResistanceScore,
		StrategicValue: strategic,
		SubScores:      subs,
		Quality:        s.cfg.Thresholds.TierFor(overall),
	}
}

func (s *ScoringService) combineSubScores(subs domain.StrategicSubScores) float64 {
	w := s.cfg.Strategic
	return domain.ClampScore(
		subs.LegalPrincipleRetention*w.LegalPrincipleRetention +
			subs.EducationalValue*w.EducationalValue +
			subs.BusinessIntelligence*w.BusinessIntelligence +
			subs.ProceduralGuidance*w.ProceduralGuidance)
}

// legalPrincipleRetention weighs surviving legal terminology against
// surviving reasoning markers, 70/30.
func (s *ScoringService) legalPrincipleRetention(original, anonymized string) float64 {
	termRetention, hadTerms := retentionRate(original, anonymized, s.cfg.Vocabulary.LegalTerms)
	if !hadTerms {
		return 100
	}
	reasoningRetention, _ := retentionRate(original, anonymized, s.cfg.Vocabulary.ReasoningTerms)
	return domain.ClampScore((termRetention*0.7 + reasoningRetention*0.3) * 100)
}

// educationalValue weighs teaching indicators against abstract
// concepts, 60/40.
func (s *ScoringService) educationalValue(original, anonymized string) float64 {
	teachingRetention, hadTerms := retentionRate(original, anonymized, s.cfg.Vocabulary.EducationalTerms)
	if !hadTerms {
		return 100
	}
	abstractRetention, _ := retentionRate(original, anonymized, s.cfg.Vocabulary.AbstractTerms)
	return domain.ClampScore((teachingRetention*0.6 + abstractRetention*0.4) * 100)
}

// businessIntelligence weighs business context terms against
// multi-word strategic insight phrases, 70/30.
func (s *ScoringService) businessIntelligence(original, anonymized string) float64 {
	termRetention, hadTerms := retentionRate(original, anonymized, s.cfg.Vocabulary.BusinessTerms)
	if !hadTerms {
		return 100
	}
	strategicRetention, _ := retentionRate(original, anonymized, s.cfg.Vocabulary.StrategicPhrases)
	return domain.ClampScore((termRetention*0.7 + strategicRetention*0.3) * 100)
}

// proceduralGuidance weighs process-step terms against timing
// information, 80/20.
func (s *ScoringService) proceduralGuidance(original, anonymized string) float64 {
	termRetention, hadTerms := retentionRate(original, anonymized, s.cfg.Vocabulary.ProceduralTerms)
	if !hadTerms {
		return 100
	}

	originalTiming := countTimingMatches(original)
	anonymizedTiming := countTimingMatches(anonymized)
	timingRetention := 1.0
	if originalTiming > 0 {
		timingRetention = float64(anonymizedTiming) / float64(originalTiming)
	}

	return domain.ClampScore((termRetention*0.8 + timingRetention*0.2) * 100)
}

// retentionRate reports what fraction of the vocabulary present in
// the original also appears in the anonymized text. Each term counts
// once however often it occurs. The second return is false when the
// original contains none of the terms; the rate is then the neutral 1.
func retentionRate(original, anonymized string, terms []string) (float64, bool) {
	originalCount := countContained(original, terms)
	if originalCount == 0 {
		return 1, false
	}
	anonymizedCount := countContained(anonymized, terms)
	return float64(anonymizedCount) / float64(originalCount), true
}

func countTimingMatches(text string) int {
	n := 0
	for _, pattern := range timingPatterns {
		n += len(pattern.FindAllString(text, -1))
	}
	return n
}
