package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

func newScoringService(t *testing.T) *ScoringService {
	t.Helper()
	svc, err := NewScoringService(domain.DefaultScoringConfig())
	require.NoError(t, err)
	return svc
}

func TestNewScoringService_InvalidWeights(t *testing.T) {
	cfg := domain.DefaultScoringConfig()
	cfg.Overall.Resistance = 0.9

	_, err := NewScoringService(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidWeights)
}

func TestScoringService_StrategicValue_IdenticalTexts(t *testing.T) {
	svc := newScoringService(t)
	text := "The breach of contract caused damages. Therefore the ruling " +
		"illustrates the principle. The market strategy shaped the deal. " +
		"First file the motion, then wait 30 days."

	subs := svc.StrategicValue(text, text)

	// Everything the original had survives, so every component is full.
	assert.InDelta(t, 100.0, subs.LegalPrincipleRetention, 1e-9)
	assert.InDelta(t, 100.0, subs.EducationalValue, 1e-9)
	assert.InDelta(t, 100.0, subs.BusinessIntelligence, 1e-9)
	assert.InDelta(t, 100.0, subs.ProceduralGuidance, 1e-9)
}

func TestScoringService_StrategicValue_NothingToPreserve(t *testing.T) {
	svc := newScoringService(t)

	subs := svc.StrategicValue("plain words with no signal", "other plain words")

	// A component with nothing to preserve scores full marks.
	assert.InDelta(t, 100.0, subs.LegalPrincipleRetention, 1e-9)
	assert.InDelta(t, 100.0, subs.EducationalValue, 1e-9)
	assert.InDelta(t, 100.0, subs.BusinessIntelligence, 1e-9)
	assert.InDelta(t, 100.0, subs.ProceduralGuidance, 1e-9)
}

func TestScoringService_LegalPrincipleRetention_PartialLoss(t *testing.T) {
	svc := newScoringService(t)

	// Original has 2 legal terms and 1 reasoning marker; the
	// anonymized text keeps 1 legal term and the marker.
	original := "the contract and its breach, therefore"
	anonymized := "the contract remained, therefore"

	score := svc.legalPrincipleRetention(original, anonymized)

	// (0.5*0.7 + 1.0*0.3) * 100
	assert.InDelta(t, 65.0, score, 1e-9)
}

func TestScoringService_EducationalValue_AllLost(t *testing.T) {
	svc := newScoringService(t)

	original := "this example illustrates the analysis"
	anonymized := "everything was removed"

	score := svc.educationalValue(original, anonymized)

	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestScoringService_BusinessIntelligence_PartialLoss(t *testing.T) {
	svc := newScoringService(t)

	// 2 business terms and 1 strategic phrase originally; 1 term and
	// the phrase survive.
	original := "the market merger built a competitive advantage"
	anonymized := "the market change kept its competitive advantage"

	score := svc.businessIntelligence(original, anonymized)

	// (0.5*0.7 + 1.0*0.3) * 100
	assert.InDelta(t, 65.0, score, 1e-9)
}

func TestScoringService_ProceduralGuidance_TimingLost(t *testing.T) {
	svc := newScoringService(t)

	// 1 procedural term and 1 timing match; the term survives, the
	// timing is gone.
	original := "the first filing is due in 30 days"
	anonymized := "the first filing is due promptly"

	score := svc.proceduralGuidance(original, anonymized)

	// (1.0*0.8 + 0.0*0.2) * 100
	assert.InDelta(t, 80.0, score, 1e-9)
}

func TestScoringService_CalculateOverallScore(t *testing.T) {
	svc := newScoringService(t)

	report := &domain.ResistanceReport{ResistanceScore: 87.5}
	subs := domain.StrategicSubScores{
		LegalPrincipleRetention: 75,
		EducationalValue:        75,
		BusinessIntelligence:    75,
		ProceduralGuidance:      75,
	}

	score := svc.CalculateOverallScore(report, subs)

	assert.InDelta(t, 75.0, score.StrategicValue, 1e-9)
	assert.InDelta(t, 87.5, score.Resistance, 1e-9)
	// 87.5*0.6 + 75.0*0.4
	assert.InDelta(t, 82.5, score.Overall, 1e-9)
	assert.Equal(t, domain.TierGood, score.Quality.Tier)
	assert.Equal(t, "Consider minor refinements", score.Quality.Recommendation)
	assert.Equal(t, subs, score.SubScores)
}

func TestScoringService_CalculateOverallScore_Tiers(t *testing.T) {
	svc := newScoringService(t)

	tests := []struct {
		name       string
		resistance float64
		strategic  float64
		want       domain.QualityTier
	}{
		{"excellent", 95, 90, domain.TierExcellent},
		{"acceptable", 70, 75, domain.TierAcceptable},
		{"poor", 60, 65, domain.TierPoor},
		{"failed", 30, 40, domain.TierFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &domain.ResistanceReport{ResistanceScore: tt.resistance}
			subs := domain.StrategicSubScores{
				LegalPrincipleRetention: tt.strategic,
				EducationalValue:        tt.strategic,
				BusinessIntelligence:    tt.strategic,
				ProceduralGuidance:      tt.strategic,
			}

			score := svc.CalculateOverallScore(report, subs)
			assert.Equal(t, tt.want, score.Quality.Tier)
		})
	}
}
