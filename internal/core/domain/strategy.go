package domain

import "strings"

// StrategyName identifies an anonymization strategy.
type StrategyName string

const (
	// StrategyTraditional replaces every identifier with [REDACTED].
	StrategyTraditional StrategyName = "traditional"
	// StrategyStrategic anonymizes while preserving legal strategy.
	StrategyStrategic StrategyName = "strategic"
	// StrategyEducational abstracts the document into teaching
	// principles.
	StrategyEducational StrategyName = "educational"
	// StrategyCustom applies user-supplied guidelines.
	StrategyCustom StrategyName = "custom"
)

// StrategyNames lists the closed set of strategies.
func StrategyNames() []StrategyName {
	return []StrategyName{
		StrategyTraditional,
		StrategyStrategic,
		StrategyEducational,
		StrategyCustom,
	}
}

// Strategy is a validated anonymization strategy. Construct one with
// NewStrategy; the zero value is not usable.
type Strategy struct {
	name       StrategyName
	guidelines string
}

// NewStrategy validates the name and guidelines and returns the
// strategy. Guidelines are required for the custom strategy and
// ignored for every other one.
func NewStrategy(name StrategyName, guidelines string) (Strategy, error) {
	switch name {
	case StrategyTraditional, StrategyStrategic, StrategyEducational:
		return Strategy{name: name}, nil
	case StrategyCustom:
		if strings.TrimSpace(guidelines) == "" {
			return Strategy{}, ErrGuidelinesRequired
		}
		return Strategy{name: name, guidelines: guidelines}, nil
	default:
		return Strategy{}, ErrUnknownStrategy
	}
}

// Name returns the strategy name.
func (s Strategy) Name() StrategyName {
	return s.name
}

// Guidelines returns the user-supplied guidelines for the custom
// strategy, empty otherwise.
func (s Strategy) Guidelines() string {
	return s.guidelines
}

// Prompt renders the anonymization prompt for the given document text.
func (s Strategy) Prompt(text string) string {
	switch s.name {
	case StrategyTraditional:
		return strings.Replace(traditionalTemplate, "{text}", text, 1)
	case StrategyEducational:
		return strings.Replace(educationalTemplate, "{text}", text, 1)
	case StrategyCustom:
		prompt := strings.Replace(customTemplate, "{guidelines}", s.guidelines, 1)
		return strings.Replace(prompt, "{text}", text, 1)
	default:
		return strings.Replace(strategicTemplate, "{text}", text, 1)
	}
}

const traditionalTemplate = `You are a legal document anonymization specialist. Your task is to redact all identifying information from the following legal document text while preserving the document structure and legal meaning.

Replace the following with [REDACTED]:
- Names of people, companies, organizations
- Addresses, phone numbers, email addresses
- Case numbers, court names, dates
- Any other identifying information

Document text to anonymize:
{text}

Return only the anonymized text with no additional commentary.`

const strategicTemplate = `You are a legal document anonymization specialist. Your task is to anonymize the following legal document while preserving strategic legal insights and procedural guidance.

Anonymization rules:
- Replace specific names with generic descriptors (e.g., "Plaintiff", "Defendant", "The Company")
- Preserve legal strategies, arguments, and reasoning
- Maintain procedural steps and tactical information
- Keep industry context and business intelligence
- Replace dates with relative timeframes where possible

Document text to anonymize:
{text}

Return only the anonymized text with no additional commentary.`

const educationalTemplate = `You are a legal document anonymization specialist. Your task is to transform the following legal document into educational principles while removing all case-specific details.

Transformation rules:
- Convert specific facts into general principles
- Replace parties with generic examples
- Focus on legal concepts and educational value
- Remove all identifying information
- Maintain the legal reasoning and educational insights

Document text to anonymize:
{text}

Return only the transformed educational text with no additional commentary.`

const customTemplate = `You are a legal document anonymization specialist. Your task is to anonymize the following legal document according to these custom guidelines:

{guidelines}

Document text to anonymize:
{text}

Return only the anonymized text with no additional commentary.`
