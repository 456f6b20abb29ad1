// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SignalExtractor: Entity, pattern and phrase extraction
//   - TokenCounter: Approximate token counting for chunk budgets
//   - Chunker: Token-budgeted text chunking
//   - CorpusStore: Append-only corpus of processed documents
//   - ConfigStore: Scoring configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model generation. Without it, anonymization is
//     disabled and the contextual reconstruction probe degrades to a
//     zero-scored, high-risk result.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
