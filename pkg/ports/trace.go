package ports

import (
	"context"

	"github.com/hashpad/turing/pkg/domain"
)

// TraceStore records the snapshots of a run, one per notification.
// Implementations must be safe for concurrent use across different run IDs.
type TraceStore interface {
	// Append adds a snapshot at the end of the run's trace, creating the trace if needed.
	Append(ctx context.Context, runID string, snap domain.Snapshot) error

	// Load returns the snapshots in append order.
	// Returns domain.ErrTraceNotFound if the run has no trace.
	Load(ctx context.Context, runID string) ([]domain.Snapshot, error)

	// List returns the IDs of the recorded runs.
	List(ctx context.Context) ([]string, error)

	// Delete removes a trace. Deleting a missing trace is not an error.
	Delete(ctx context.Context, runID string) error
}
