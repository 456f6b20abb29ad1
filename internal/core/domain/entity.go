package domain

// EntityCategory groups recognised entities by the kind of
// identification risk they carry.
type EntityCategory string

const (
	// CategoryLegal covers people, organisations, courts and laws.
	CategoryLegal EntityCategory = "legal"
	// CategoryPersonal covers names and direct contact details.
	CategoryPersonal EntityCategory = "personal"
	// CategoryBusiness covers organisations, money and products.
	CategoryBusiness EntityCategory = "business"
	// CategoryTemporal covers dates, times and durations.
	CategoryTemporal EntityCategory = "temporal"
	// CategoryJurisdictional covers places, laws and courts.
	CategoryJurisdictional EntityCategory = "jurisdictional"
)

// Categories lists all entity categories in a fixed order.
func Categories() []EntityCategory {
	return []EntityCategory{
		CategoryLegal,
		CategoryPersonal,
		CategoryBusiness,
		CategoryTemporal,
		CategoryJurisdictional,
	}
}

// Entity is a single recognised entity occurrence.
type Entity struct {
	// Text is the matched text as it appears in the document.
	Text string

	// Label is the recogniser's tag (e.g. "PERSON", "ORG", "DATE").
	Label string

	// Start is the byte offset of the match in the source text.
	Start int

	// End is the byte offset one past the match.
	End int
}

// EntitySet maps each category to its recognised entities.
// An entity may appear under more than one category.
type EntitySet map[EntityCategory][]Entity

// NewEntitySet returns an EntitySet with every category present
// and empty. Probes iterate over categories, so all keys exist even
// when nothing was recognised.
func NewEntitySet() EntitySet {
	set := make(EntitySet, len(Categories()))
	for _, c := range Categories() {
		set[c] = nil
	}
	return set
}

// Total returns the number of entity occurrences across all categories.
func (s EntitySet) Total() int {
	n := 0
	for _, entities := range s {
		n += len(entities)
	}
	return n
}

// PatternType identifies the kind of legal pattern matched.
type PatternType string

const (
	// PatternCaseCitation matches reporter citations like "123 F.3d 456".
	PatternCaseCitation PatternType = "case_citation"
	// PatternStatute matches statute references like "42 U.S.C. § 1983".
	PatternStatute PatternType = "statute"
	// PatternCourt matches court names like "District Court".
	PatternCourt PatternType = "court"
)

// LegalPattern is a citation-style pattern found in a document.
type LegalPattern struct {
	// Type is the pattern kind.
	Type PatternType

	// Text is the matched text.
	Text string

	// Start is the byte offset of the match in the source text.
	Start int

	// End is the byte offset one past the match.
	End int
}
