package queue

import (
	"context"
)

// Handler processes one dequeued task reference. Returning an error leaves the
// message unacknowledged so the transport redelivers it; handlers must be
// idempotent (the event log's history checks absorb duplicates).
type Handler func(ctx context.Context, ref *Ref) error

// Queue hands serialized tasks to exactly one remote worker at a time.
type Queue interface {
	// Enqueue publishes a task reference to the named work queue.
	//
	// If it supports it, the Queue will return a unique id for the queued
	// message with which we can call Kill(the-given-id).
	Enqueue(ref *Ref) (string, error)

	// Register sets the handler invoked for each dequeued task.
	Register(handler Handler) error

	// Run the queue & process tasks (via the Register func). This should
	// block until Close() is called.
	Run() error

	// Kill a queued message with the ID given to us by Enqueue. Best
	// effort; the durable cancellation path is the broadcast channel.
	Kill(queuedTaskID string) error

	// Close & shutdown the queue.
	Close() error
}
