package driven

import (
	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

// ConfigStore provides access to the scoring configuration.
// Implementations merge persisted overrides onto the built-in
// defaults and validate the result before returning it.
type ConfigStore interface {
	// ScoringConfig returns the validated scoring configuration.
	ScoringConfig() (domain.ScoringConfig, error)

	// Path returns the backing file path, for display.
	Path() string
}
