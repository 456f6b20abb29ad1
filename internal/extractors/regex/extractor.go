// Package regex provides a pattern-based signal extractor.
//
// It recognises entities, legal citation patterns and identifying
// phrases with regular expressions and capitalisation heuristics.
// Recall is deliberately conservative: the probes only need a stable,
// deterministic signal source, not a full NLP pipeline, and a swap-in
// model-backed extractor can implement the same port.
package regex

import (
	"regexp"
	"sort"
	"strings"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
	"github.com/veilworks/anoncheck-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.SignalExtractor = (*Extractor)(nil)

// Extractor recognises text signals with regular expressions.
type Extractor struct{}

// New creates a new regex extractor.
func New() *Extractor {
	return &Extractor{}
}

var (
	personPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+){1,2}\b`)
	orgPattern    = regexp.MustCompile(`\b[A-Z][A-Za-z&]+(?: [A-Z][A-Za-z&]+)* (?:Inc|LLC|LLP|Ltd|Corp|Corporation|Company|Group|Partners|Holdings)\b\.?`)
	capPattern    = regexp.MustCompile(`\b[A-Z][a-zA-Z]{2,}\b`)
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern  = regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`)
	ssnPattern    = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	moneyPattern  = regexp.MustCompile(`\$\d[\d,]*(?:\.\d+)?(?: (?:million|billion|thousand))?`)
	datePattern   = regexp.MustCompile(`(?i)\b(?:january|february|march|april|may|june|july|august|september|october|november|december) \d{1,2},? \d{4}\b|\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b(?:19|20)\d{2}\b`)
)

// leadingWords are capitalised words that start sentences or noun
// phrases without identifying anything.
var leadingWords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"A": true, "An": true, "In": true, "On": true, "At": true, "For": true,
	"By": true, "From": true, "With": true, "After": true, "Before": true,
	"However": true, "Therefore": true, "Furthermore": true, "Moreover": true,
	"Plaintiff": true, "Defendant": true, "Court": true, "Judge": true,
	"It": true, "If": true, "As": true, "When": true, "While": true,
}

// Entities recognises named entities grouped by category. Every
// category key is present in the result, possibly empty.
func (e *Extractor) Entities(text string) domain.EntitySet {
	set := domain.NewEntitySet()

	covered := make([]span, 0, 16)
	appendEntity := func(ent domain.Entity, categories ...domain.EntityCategory) {
		for _, c := range categories {
			set[c] = append(set[c], ent)
		}
		covered = append(covered, span{ent.Start, ent.End})
	}

	for _, m := range orgPattern.FindAllStringIndex(text, -1) {
		ent := domain.Entity{Text: strings.TrimSuffix(text[m[0]:m[1]], "."), Label: "ORG", Start: m[0], End: m[1]}
		appendEntity(ent, domain.CategoryLegal, domain.CategoryBusiness)
	}

	for _, m := range personPattern.FindAllStringIndex(text, -1) {
		if overlaps(covered, m[0], m[1]) {
			continue
		}
		matched := text[m[0]:m[1]]
		words := strings.Fields(matched)
		if leadingWords[words[0]] {
			continue
		}
		ent := domain.Entity{Text: matched, Label: "PERSON", Start: m[0], End: m[1]}
		appendEntity(ent, domain.CategoryLegal, domain.CategoryPersonal)
	}

	for _, m := range emailPattern.FindAllStringIndex(text, -1) {
		ent := domain.Entity{Text: text[m[0]:m[1]], Label: "EMAIL", Start: m[0], End: m[1]}
		appendEntity(ent, domain.CategoryPersonal)
	}

	for _, m := range ssnPattern.FindAllStringIndex(text, -1) {
		ent := domain.Entity{Text: text[m[0]:m[1]], Label: "SSN", Start: m[0], End: m[1]}
		appendEntity(ent, domain.CategoryPersonal)
	}

	for _, m := range phonePattern.FindAllStringIndex(text, -1) {
		if overlaps(covered, m[0], m[1]) {
			continue
		}
		ent := domain.Entity{Text: text[m[0]:m[1]], Label: "PHONE", Start: m[0], End: m[1]}
		appendEntity(ent, domain.CategoryPersonal)
	}

	for _, m := range moneyPattern.FindAllStringIndex(text, -1) {
		ent := domain.Entity{Text: text[m[0]:m[1]], Label: "MONEY", Start: m[0], End: m[1]}
		appendEntity(ent, domain.CategoryBusiness)
	}

	for _, m := range datePattern.FindAllStringIndex(text, -1) {
		ent := domain.Entity{Text: text[m[0]:m[1]], Label: "DATE", Start: m[0], End: m[1]}
		appendEntity(ent, domain.CategoryTemporal)
	}

	// Lone capitalised words away from a sentence start read as
	// organisation or place names. Runs last so dates and amounts
	// already cover their spans.
	for _, m := range capPattern.FindAllStringIndex(text, -1) {
		if overlaps(covered, m[0], m[1]) || sentenceStart(text, m[0]) {
			continue
		}
		word := text[m[0]:m[1]]
		if leadingWords[word] {
			continue
		}
		ent := domain.Entity{Text: word, Label: "ORG", Start: m[0], End: m[1]}
		appendEntity(ent, domain.CategoryLegal, domain.CategoryBusiness)
	}

	for _, p := range e.LegalPatterns(text) {
		switch p.Type {
		case domain.PatternCourt:
			ent := domain.Entity{Text: p.Text, Label: "COURT", Start: p.Start, End: p.End}
			set[domain.CategoryLegal] = append(set[domain.CategoryLegal], ent)
			set[domain.CategoryJurisdictional] = append(set[domain.CategoryJurisdictional], ent)
		case domain.PatternStatute:
			ent := domain.Entity{Text: p.Text, Label: "LAW", Start: p.Start, End: p.End}
			set[domain.CategoryLegal] = append(set[domain.CategoryLegal], ent)
			set[domain.CategoryJurisdictional] = append(set[domain.CategoryJurisdictional], ent)
		}
	}

	for _, c := range domain.Categories() {
		sort.SliceStable(set[c], func(i, j int) bool {
			return set[c][i].Start < set[c][j].Start
		})
	}

	return set
}

type span struct{ start, end int }

func overlaps(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// sentenceStart reports whether the word at offset opens a sentence:
// it is at the start of the text or preceded by terminal punctuation.
func sentenceStart(text string, offset int) bool {
	i := offset - 1
	for i >= 0 && (text[i] == ' ' || text[i] == '\n' || text[i] == '\t' || text[i] == '\r' || text[i] == '"') {
		i--
	}
	if i < 0 {
		return true
	}
	switch text[i] {
	case '.', '!', '?':
		return true
	}
	return false
}
