package driving

import (
	"context"

	"github.com/veilworks/anoncheck-cli/internal/core/domain"
)

// ResistanceService runs the re-identification probe battery.
type ResistanceService interface {
	// RunAll runs every probe against the original/anonymized pair
	// and aggregates the results. It always produces a report: a
	// probe whose dependency fails contributes a zero-scored,
	// high-risk result instead of aborting the battery.
	RunAll(ctx context.Context, originalText, anonymizedText string) *domain.ResistanceReport
}
