package driven

import (
	"context"
	"fmt"
)

// LLMService provides language model text generation.
// This is an optional service - when nil, anonymization and the
// contextual reconstruction probe degrade gracefully.
//
// Implementations may include:
//   - Ollama (local models)
//   - Any OpenAI-compatible inference server
type LLMService interface {
	// Generate produces a text completion from a prompt. Failures are
	// reported as a *GenerateError carrying the failure kind, so call
	// sites can distinguish timeouts from service errors.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to LLM-backed
	// features.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// TopP is the nucleus sampling parameter.
	TopP float64
}

// FailureKind classifies a generation failure.
type FailureKind string

const (
	// FailureTimeout means the request exceeded its deadline.
	FailureTimeout FailureKind = "timeout"
	// FailureConnection means the service could not be reached.
	FailureConnection FailureKind = "connection"
	// FailureService means the service answered with an error.
	FailureService FailureKind = "service"
)

// GenerateError is the explicit failure result of an external
// generation call.
type GenerateError struct {
	// Kind classifies the failure.
	Kind FailureKind

	// Message is the service or transport error detail.
	Message string
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	return fmt.Sprintf("llm generate (%s): %s", e.Kind, e.Message)
}

// Retryable reports whether retrying the call could succeed.
// Service-side errors are not retried; transport failures are.
func (e *GenerateError) Retryable() bool {
	return e.Kind == FailureTimeout || e.Kind == FailureConnection
}
