package errors

import (
	"fmt"
)

var (
	// ErrNotFound is returned when a task id is unknown to the details store.
	ErrNotFound = fmt.Errorf("task not found")

	// ErrConcurrentWrite is returned when an append's expected version no longer
	// matches the stored history (someone else appended first).
	ErrConcurrentWrite = fmt.Errorf("concurrent write")

	// ErrReachedTimeout is returned by Await when the task is still in flight.
	ErrReachedTimeout = fmt.Errorf("reached timeout")

	// ErrUnknownTaskType is returned when no codec is registered for a type discriminator.
	ErrUnknownTaskType = fmt.Errorf("unknown task type")

	// ErrInvalidTask is returned when a task payload or registration is malformed.
	ErrInvalidTask = fmt.Errorf("invalid task")

	ErrInvalidArg   = fmt.Errorf("invalid arg")
	ErrInvalidState = fmt.Errorf("invalid state")
	ErrNotSupported = fmt.Errorf("not supported")
)
