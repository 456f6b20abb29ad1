// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - ProcessorService: document intake and corpus registration
//   - ResistanceService: the re-identification probe battery
//   - ScoringService: strategic value and overall score aggregation
//   - AnonymizerService: LLM-backed chunk-by-chunk anonymization
package services
