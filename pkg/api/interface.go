package api

import (
	"context"
	"time"

	"github.com/ketrez/steward/pkg/structs"
	"github.com/ketrez/steward/pkg/task"
)

// TaskManager represents the functions steward servers expose.
type TaskManager interface {
	// Implemented in steward/internal/core.Service

	// Submit records the task and schedules it for execution somewhere in
	// the cluster. It returns the task's ID immediately.
	Submit(ctx context.Context, t task.Task) (string, error)

	// Await blocks until the task reaches a final status or the timeout
	// passes, whichever comes first.
	Await(ctx context.Context, taskID string, timeout time.Duration) (*structs.TaskExecutionDetails, error)

	// Cancel requests that the task stop. Safe to call any number of
	// times; finished tasks are unaffected.
	Cancel(ctx context.Context, taskID string) error

	Details(ctx context.Context, taskID string) (*structs.TaskExecutionDetails, error)
	List(ctx context.Context, q *structs.Query) ([]*structs.TaskExecutionDetails, error)

	Close() error
}

type Server interface {
	ServeForever(svc TaskManager) error
	Close() error
}
