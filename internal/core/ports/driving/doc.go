// Package driving defines the interfaces through which the outside
// world drives the core (primary ports in hexagonal architecture).
//
// The CLI adapter calls these interfaces; core services implement
// them.
//
//   - ProcessorService: document intake (clean, chunk, extract, corpus)
//   - ResistanceService: the re-identification probe battery
//   - ScoringService: strategic value and overall score aggregation
//   - AnonymizerService: LLM-backed chunk-by-chunk anonymization
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
