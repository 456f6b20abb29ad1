package domain

// QualityTier is the discrete verdict derived from the overall score.
type QualityTier string

const (
	// TierExcellent means the document is production ready.
	TierExcellent QualityTier = "excellent"
	// TierGood means only minor improvements are needed.
	TierGood QualityTier = "good"
	// TierAcceptable means the document requires review.
	TierAcceptable QualityTier = "acceptable"
	// TierPoor means significant issues remain.
	TierPoor QualityTier = "poor"
	// TierFailed means the document must not be used.
	TierFailed QualityTier = "failed"
)

// TierInfo carries the display metadata for a quality tier.
type TierInfo struct {
	// Tier is the tier label.
	Tier QualityTier

	// Description is a one-line summary of what the tier means.
	Description string

	// Recommendation is the suggested next step.
	Recommendation string
}

// StrategicSubScores are the four strategic value components, each in
// [0, 100], measuring how much domain utility survived anonymization.
type StrategicSubScores struct {
	// LegalPrincipleRetention measures surviving legal terminology
	// and reasoning structure.
	LegalPrincipleRetention float64

	// EducationalValue measures surviving teaching indicators and
	// abstract concepts.
	EducationalValue float64

	// BusinessIntelligence measures surviving business context and
	// strategic insight terms.
	BusinessIntelligence float64

	// ProceduralGuidance measures surviving process steps and timing
	// information.
	ProceduralGuidance float64
}

// OverallScore combines resistance and strategic value into the final
// verdict.
type OverallScore struct {
	// Overall is Resistance*w_r + StrategicValue*w_s, in [0, 100].
	Overall float64

	// Resistance is the weighted probe battery score.
	Resistance float64

	// StrategicValue is the weighted strategic sub-score combination.
	StrategicValue float64

	// SubScores are the strategic value components that produced
	// StrategicValue.
	SubScores StrategicSubScores

	// Quality is the tier metadata for Overall.
	Quality TierInfo
}
