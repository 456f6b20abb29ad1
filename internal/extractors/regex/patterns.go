package regex

import (
	"regexp"
	"sort"
	"strings"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

var (
	caseCitationPattern = regexp.MustCompile(`\b\d+ [A-Z][a-z]*\.?(?:[23]d)? \d+\b`)
	statutePattern      = regexp.MustCompile(`\b\d+ U\.S\.C\.? (?:§ ?)?\d+\b`)
	courtPattern        = regexp.MustCompile(`(?i)\b(?:Supreme Court|District Court|Court of Appeals|Bankruptcy Court)\b`)
)

// LegalPatterns finds citation-style patterns in document order.
func (e *Extractor) LegalPatterns(text string) []domain.LegalPattern {
	var patterns []domain.LegalPattern

	for _, m := range caseCitationPattern.FindAllStringIndex(text, -1) {
		patterns = append(patterns, domain.LegalPattern{
			Type:  domain.PatternCaseCitation,
			Text:  text[m[0]:m[1]],
			Start: m[0],
			End:   m[1],
		})
	}

	for _, m := range statutePattern.FindAllStringIndex(text, -1) {
		patterns = append(patterns, domain.LegalPattern{
			Type:  domain.PatternStatute,
			Text:  text[m[0]:m[1]],
			Start: m[0],
			End:   m[1],
		})
	}

	for _, m := range courtPattern.FindAllStringIndex(text, -1) {
		patterns = append(patterns, domain.LegalPattern{
			Type:  domain.PatternCourt,
			Text:  text[m[0]:m[1]],
			Start: m[0],
			End:   m[1],
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Start < patterns[j].Start
	})

	return patterns
}

// Phrases returns the distinct lowercase word n-grams of the given
// length, in order of first occurrence.
func (e *Extractor) Phrases(text string, n int) []string {
	if n <= 0 {
		return nil
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) < n {
		return nil
	}

	seen := make(map[string]bool, len(words))
	phrases := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		phrase := strings.Join(words[i:i+n], " ")
		if seen[phrase] {
			continue
		}
		seen[phrase] = true
		phrases = append(phrases, phrase)
	}

	return phrases
}

// Similarity computes the word-set Jaccard similarity between two
// texts, in [0, 1]. It is symmetric and returns 0 when both texts are
// empty.
func (e *Extractor) Similarity(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
