package task

import (
	"context"
)

// Result is what a task's Run reports on success.
type Result string

const (
	// Done means the task ran to completion.
	Done Result = "COMPLETED"

	// Partial means the task finished but only covered part of its work
	// (eg. a reindex that skipped unreadable mailboxes).
	Partial Result = "PARTIAL"
)

// Task is an opaque unit of work. Concrete kinds (mailbox reindex, schema
// migration, quota recompute ...) live with their owners; the manager only
// needs this contract.
//
// Run must honour ctx cancellation if the task is to be cancellable; a task
// that never checks ctx runs to natural completion and a cancel request for
// it is effectively lost.
type Task interface {
	// Type names the task kind; it must match a registered codec so the
	// task can be executed on a different node than it was submitted on.
	Type() string

	Run(ctx context.Context) (Result, error)
}

// Informer is optionally implemented by tasks that expose structured progress
// information. The worker polls it while the task runs and records snapshots
// as InfoUpdated events.
type Informer interface {
	Info() []byte
}
