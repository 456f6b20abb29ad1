package domain

import (
	"fmt"
	"math"
)

// weightSumTolerance absorbs floating-point drift when validating that
// a weight set sums to 1.
const weightSumTolerance = 1e-9

// ResistanceWeights assigns a weight to each probe when combining the
// battery into a single resistance score. Weights must sum to 1.
type ResistanceWeights struct {
	DirectIdentifier         float64 `toml:"direct_identifier"`
	PatternMatching          float64 `toml:"pattern_matching"`
	ContextualReconstruction float64 `toml:"contextual_reconstruction"`
	CrossReference           float64 `toml:"cross_reference"`
	LinguisticFingerprint    float64 `toml:"linguistic_fingerprint"`
}

// DefaultResistanceWeights returns the standard probe weighting.
func DefaultResistanceWeights() ResistanceWeights {
	return ResistanceWeights{
		DirectIdentifier:         0.30,
		PatternMatching:          0.25,
		ContextualReconstruction: 0.20,
		CrossReference:           0.15,
		LinguisticFingerprint:    0.10,
	}
}

// ForProbe returns the weight assigned to the given probe.
func (w ResistanceWeights) ForProbe(name ProbeName) float64 {
	switch name {
	case ProbeDirectIdentifier:
		return w.DirectIdentifier
	case ProbePatternMatching:
		return w.PatternMatching
	case ProbeContextualReconstruction:
		return w.ContextualReconstruction
	case ProbeCrossReference:
		return w.CrossReference
	case ProbeLinguisticFingerprint:
		return w.LinguisticFingerprint
	default:
		return 0
	}
}

// Validate checks that the weights sum to 1 and are non-negative.
func (w ResistanceWeights) Validate() error {
	return validateWeightSum("resistance", w.DirectIdentifier, w.PatternMatching,
		w.ContextualReconstruction, w.CrossReference, w.LinguisticFingerprint)
}

// StrategicWeights assigns a weight to each strategic value sub-score.
// Weights must sum to 1.
type StrategicWeights struct {
	LegalPrincipleRetention float64 `toml:"legal_principle_retention"`
	EducationalValue        float64 `toml:"educational_value"`
	BusinessIntelligence    float64 `toml:"business_intelligence"`
	ProceduralGuidance      float64 `toml:"procedural_guidance"`
}

// DefaultStrategicWeights returns the standard strategic weighting.
func DefaultStrategicWeights() StrategicWeights {
	return StrategicWeights{
		LegalPrincipleRetention: 0.40,
		EducationalValue:        0.30,
		BusinessIntelligence:    0.20,
		ProceduralGuidance:      0.10,
	}
}

// Validate checks that the weights sum to 1 and are non-negative.
func (w StrategicWeights) Validate() error {
	return validateWeightSum("strategic value", w.LegalPrincipleRetention,
		w.EducationalValue, w.BusinessIntelligence, w.ProceduralGuidance)
}

// OverallWeights balances resistance against strategic value in the
// final score. Weights must sum to 1.
type OverallWeights struct {
	Resistance     float64 `toml:"resistance"`
	StrategicValue float64 `toml:"strategic_value"`
}

// DefaultOverallWeights returns the standard 60/40 balance.
func DefaultOverallWeights() OverallWeights {
	return OverallWeights{
		Resistance:     0.60,
		StrategicValue: 0.40,
	}
}

// Validate checks that the weights sum to 1 and are non-negative.
func (w OverallWeights) Validate() error {
	return validateWeightSum("overall", w.Resistance, w.StrategicValue)
}

// TierThresholds are the minimum overall scores for each quality tier.
// The order excellent > good > acceptable > poor must hold.
type TierThresholds struct {
	Excellent  float64 `toml:"excellent"`
	Good       float64 `toml:"good"`
	Acceptable float64 `toml:"acceptable"`
	Poor       float64 `toml:"poor"`
}

// DefaultTierThresholds returns the standard tier boundaries.
func DefaultTierThresholds() TierThresholds {
	return TierThresholds{
		Excellent:  90,
		Good:       80,
		Acceptable: 70,
		Poor:       60,
	}
}

// Validate checks that the thresholds are strictly descending.
func (t TierThresholds) Validate() error {
	if !(t.Excellent > t.Good && t.Good > t.Acceptable && t.Acceptable > t.Poor) {
		return fmt.Errorf("%w: tier thresholds must be strictly descending", ErrInvalidWeights)
	}
	return nil
}

// TierFor maps a score to its tier metadata.
func (t TierThresholds) TierFor(score float64) TierInfo {
	switch {
	case score >= t.Excellent:
		return TierInfo{TierExcellent, "Production ready", "Document is ready for use"}
	case score >= t.Good:
		return TierInfo{TierGood, "Minor improvements needed", "Consider minor refinements"}
	case score >= t.Acceptable:
		return TierInfo{TierAcceptable, "Requires review", "Review and improve before use"}
	case score >= t.Poor:
		return TierInfo{TierPoor, "Significant issues", "Significant improvements required"}
	default:
		return TierInfo{TierFailed, "Do not use", "Do not use - major security issues"}
	}
}

// Vocabulary holds the term lists driving the linguistic probes and
// strategic value scoring. The lists are content configuration, not
// logic; empty lists fall back to the defaults at load time.
type Vocabulary struct {
	// LegalTerms feed legal principle retention.
	LegalTerms []string `toml:"legal_terms"`
	// ReasoningTerms are discourse markers of legal reasoning.
	ReasoningTerms []string `toml:"reasoning_terms"`
	// EducationalTerms feed educational value scoring.
	EducationalTerms []string `toml:"educational_terms"`
	// AbstractTerms are abstract-concept markers.
	AbstractTerms []string `toml:"abstract_terms"`
	// BusinessTerms feed business intelligence scoring.
	BusinessTerms []string `toml:"business_terms"`
	// StrategicPhrases are multi-word strategic insight markers.
	StrategicPhrases []string `toml:"strategic_phrases"`
	// ProceduralTerms feed procedural guidance scoring.
	ProceduralTerms []string `toml:"procedural_terms"`
	// ConfidenceIndicators are phrases an attacker model uses when it
	// believes its reconstruction.
	ConfidenceIndicators []string `toml:"confidence_indicators"`
	// DetailCategories are the identifying categories scanned for in
	// a reconstruction attempt.
	DetailCategories []string `toml:"detail_categories"`
}

// Validate checks that every term list has at least one entry. The
// contextual reconstruction probe divides by the confidence and
// detail list sizes, and an empty list silently disables the scoring
// it feeds, so empty lists fail fast like malformed weights.
func (v Vocabulary) Validate() error {
	lists := []struct {
		name  string
		terms []string
	}{
		{"legal_terms", v.LegalTerms},
		{"reasoning_terms", v.ReasoningTerms},
		{"educational_terms", v.EducationalTerms},
		{"abstract_terms", v.AbstractTerms},
		{"business_terms", v.BusinessTerms},
		{"strategic_phrases", v.StrategicPhrases},
		{"procedural_terms", v.ProceduralTerms},
		{"confidence_indicators", v.ConfidenceIndicators},
		{"detail_categories", v.DetailCategories},
	}
	for _, list := range lists {
		if len(list.terms) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyVocabulary, list.name)
		}
	}
	return nil
}

// DefaultVocabulary returns the built-in English term lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		LegalTerms: []string{
			"contract", "breach", "liability", "damages", "negligence", "statute",
			"precedent", "jurisdiction", "motion", "discovery", "evidence",
			"testimony", "ruling", "judgment", "appeal", "constitutional",
			"due process", "burden of proof", "standard of care",
		},
		ReasoningTerms: []string{
			"therefore", "because", "since", "as a result", "consequently",
			"however", "nevertheless", "furthermore", "moreover", "in contrast",
		},
		EducationalTerms: []string{
			"example", "illustrates", "demonstrates", "shows", "teaches",
			"principle", "concept", "theory", "practice", "method",
			"approach", "strategy", "technique", "process", "procedure",
		},
		AbstractTerms: []string{
			"analysis", "interpretation", "conclusion", "rationale",
			"reasoning", "logic", "argument", "position", "stance",
		},
		BusinessTerms: []string{
			"market", "industry", "competition", "strategy", "revenue",
			"costs", "profit", "loss", "investment", "risk", "opportunity",
			"negotiation", "contract", "deal", "partnership", "merger",
		},
		StrategicPhrases: []string{
			"competitive advantage", "market position", "strategic approach",
			"business model", "value proposition", "risk assessment",
		},
		ProceduralTerms: []string{
			"step", "process", "procedure", "method", "approach",
			"first", "second", "third", "next", "then", "finally",
			"before", "after", "during", "timeline", "deadline",
		},
		ConfidenceIndicators: []string{
			"confident", "certain", "likely", "probably", "appears to be",
			"suggests", "indicates", "evidence of", "based on", "clearly",
		},
		DetailCategories: []string{
			"case name", "court", "judge", "attorney", "company", "date",
			"location", "plaintiff", "defendant", "parties",
		},
	}
}

// ScoringConfig is the immutable configuration for the aggregator and
// the probe battery. Construct it once, validate it, and pass it in;
// weight mistakes are programmer errors and fail fast.
type ScoringConfig struct {
	Resistance ResistanceWeights `toml:"resistance"`
	Strategic  StrategicWeights  `toml:"strategic"`
	Overall    OverallWeights    `toml:"overall"`
	Thresholds TierThresholds    `toml:"thresholds"`
	Vocabulary Vocabulary        `toml:"vocabulary"`
}

// DefaultScoringConfig returns the standard configuration.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Resistance: DefaultResistanceWeights(),
		Strategic:  DefaultStrategicWeights(),
		Overall:    DefaultOverallWeights(),
		Thresholds: DefaultTierThresholds(),
		Vocabulary: DefaultVocabulary(),
	}
}

// Validate checks every weight set and the tier thresholds.
func (c ScoringConfig) Validate() error {
	if err := c.Resistance.Validate(); err != nil {
		return err
	}
	if err := c.Strategic.Validate(); err != nil {
		return err
	}
	if err := c.Overall.Validate(); err != nil {
		return err
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	return c.Vocabulary.Validate()
}

func validateWeightSum(name string, weights ...float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: %s weights must be non-negative", ErrInvalidWeights, name)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: %s weights sum to %v, want 1", ErrInvalidWeights, name, sum)
	}
	return nil
}
