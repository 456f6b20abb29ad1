// Package domain defines the core business entities for Anoncheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A processed document with its extracted signals
//   - Chunk: A token-budgeted slice of a document's text
//   - ProbeResult: The outcome of one re-identification probe
//   - ResistanceReport: The aggregated probe battery output
//   - OverallScore: Resistance and strategic value combined into a tier
//   - CorpusEntry: A previously processed document kept for cross-reference
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
