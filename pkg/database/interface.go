package database

import (
	"context"

	"github.com/ketrez/steward/pkg/structs"
)

// Database persists the two shared mutable resources of the task manager: the
// append-only event log (source of truth) and the execution-details read
// model (derived, fast to query).
type Database interface {
	// AppendEvents atomically appends events to one task's history.
	// expectedVersion is the number of events the caller believes are
	// already stored; a mismatch fails the whole batch with
	// errors.ErrConcurrentWrite and the caller must re-read the history
	// and recompute its command.
	AppendEvents(ctx context.Context, taskID string, expectedVersion int, events []structs.Event) error

	// History returns a task's events in append order. Unknown ids yield
	// an empty history, not an error.
	History(ctx context.Context, taskID string) (structs.History, error)

	// UpsertDetails writes the folded snapshot for a task.
	UpsertDetails(ctx context.Context, d *structs.TaskExecutionDetails) error

	// Details returns the snapshot for one task, or errors.ErrNotFound.
	Details(ctx context.Context, taskID string) (*structs.TaskExecutionDetails, error)

	// ListDetails returns snapshots matching the query.
	ListDetails(ctx context.Context, q *structs.Query) ([]*structs.TaskExecutionDetails, error)

	Close() error
}
