package letters

import (
	"context"

	"github.com/google/uuid"
)

// RunStore keeps the history of generation runs. GetRun returns nil, nil
// for an unknown run.
type RunStore interface {
	RecordRun(ctx context.Context, report *Report) error
	GetRun(ctx context.Context, runID uuid.UUID) (*Report, error)
	ListRuns(ctx context.Context, limit int) ([]Report, error)
}
