package driving

import (
	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

// ScoringService computes strategic value and the overall quality
// verdict.
type ScoringService interface {
	// StrategicValue measures how much legal, educational, business
	// and procedural utility survived anonymization.
	StrategicValue(originalText, anonymizedText string) domain.StrategicSubScores

	// CalculateOverallScore combines a resistance report with the
	// strategic sub-scores into the tiered overall score.
	CalculateOverallScore(report *domain.ResistanceReport, subs domain.StrategicSubScores) domain.OverallScore
}
