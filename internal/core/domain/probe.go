package domain

// RiskTier classifies a probe score into a coarse risk band.
type RiskTier string

const (
	// RiskLow means the probe found little or no residual signal.
	RiskLow RiskTier = "low"
	// RiskMedium means some residual signal survived anonymization.
	RiskMedium RiskTier = "medium"
	// RiskHigh means the document is likely re-identifiable.
	RiskHigh RiskTier = "high"
)

// Risk tier thresholds. Scores below TierHighBelow are high risk,
// scores below TierMediumBelow are medium, everything else is low.
const (
	TierHighBelow   = 70.0
	TierMediumBelow = 90.0
)

// TierForScore maps a probe score to its risk tier. The mapping is
// the same for every probe.
func TierForScore(score float64) RiskTier {
	switch {
	case score < TierHighBelow:
		return RiskHigh
	case score < TierMediumBelow:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ClampScore bounds a score to [0, 100].
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ProbeName identifies one re-identification probe.
type ProbeName string

const (
	// ProbeDirectIdentifier searches the anonymized text for entities
	// extracted from the original.
	ProbeDirectIdentifier ProbeName = "direct_identifier"
	// ProbePatternMatching checks whether unique legal patterns and
	// phrases survived anonymization.
	ProbePatternMatching ProbeName = "pattern_matching"
	// ProbeContextualReconstruction asks an LLM to reverse-engineer
	// the case from the anonymized text.
	ProbeContextualReconstruction ProbeName = "contextual_reconstruction"
	// ProbeCrossReference compares the anonymized text against the
	// corpus of previously processed documents.
	ProbeCrossReference ProbeName = "cross_reference"
	// ProbeLinguisticFingerprint measures how much of the original
	// writing style is still detectable.
	ProbeLinguisticFingerprint ProbeName = "linguistic_fingerprint"
)

// ProbeNames lists all probes in battery order.
func ProbeNames() []ProbeName {
	return []ProbeName{
		ProbeDirectIdentifier,
		ProbePatternMatching,
		ProbeContextualReconstruction,
		ProbeCrossReference,
		ProbeLinguisticFingerprint,
	}
}

// ProbeResult is the outcome of a single probe. A higher score means
// stronger resistance to that attack vector.
type ProbeResult struct {
	// Score is the probe score in [0, 100].
	Score float64

	// RiskTier is derived from Score via TierForScore.
	RiskTier RiskTier

	// Evidence holds probe-specific detail (leaked entities,
	// preserved phrases, similarity figures, failure reasons).
	Evidence map[string]any

	// Err is the failure description when the probe degraded to a
	// zero score because a dependency failed. Empty on success.
	Err string
}

// NewProbeResult builds a result with the score clamped and the tier
// derived from it.
func NewProbeResult(score float64, evidence map[string]any) ProbeResult {
	score = ClampScore(score)
	return ProbeResult{
		Score:    score,
		RiskTier: TierForScore(score),
		Evidence: evidence,
	}
}

// FailedProbeResult is the defined worst-case result for a probe whose
// dependency failed: zero score, high risk, reason attached.
func FailedProbeResult(reason string) ProbeResult {
	return ProbeResult{
		Score:    0,
		RiskTier: RiskHigh,
		Evidence: map[string]any{"error": reason},
		Err:      reason,
	}
}

// RiskAssessment partitions probe names by their risk tier.
type RiskAssessment struct {
	// HighRisk lists probes whose tier is high.
	HighRisk []ProbeName
	// MediumRisk lists probes whose tier is medium.
	MediumRisk []ProbeName
	// LowRisk lists probes whose tier is low.
	LowRisk []ProbeName
	// Overall is high if any probe is high, medium if any is medium,
	// low otherwise.
	Overall RiskTier
}

// ResistanceReport is the aggregated output of the probe battery.
type ResistanceReport struct {
	// Results maps each probe to its result. All five probes are
	// always present, degraded or not.
	Results map[ProbeName]ProbeResult

	// ResistanceScore is the weighted combination of probe scores.
	ResistanceScore float64

	// Risk partitions probes into risk bands.
	Risk RiskAssessment

	// Recommendations are ordered advisory strings derived from the
	// probe results.
	Recommendations []string
}
