package broadcast

import (
	"context"

	"github.com/ketrez/steward/pkg/structs"
)

// CancelRequest asks whichever node is executing the task to stop it.
// Nodes not running that task ignore the message.
type CancelRequest struct {
	TaskID string `json:"task_id"`

	// Node is the requesting node, for the audit trail in logs.
	Node string `json:"node"`
}

// Termination announces that a task reached a terminal state, so nodes
// awaiting the result can unblock. Delivery is best effort; the details
// store remains the authoritative fallback.
type Termination struct {
	TaskID string         `json:"task_id"`
	Status structs.Status `json:"status"`
}

// Broadcaster is the cluster-wide fan-out channel for cancellation and
// termination. Both topics tolerate duplicate delivery; handlers must be
// idempotent.
type Broadcaster interface {
	PublishCancel(ctx context.Context, req *CancelRequest) error
	PublishTermination(ctx context.Context, t *Termination) error

	// SubscribeCancel / SubscribeTermination return channels fed until ctx
	// is cancelled or the broadcaster is closed.
	SubscribeCancel(ctx context.Context) (<-chan *CancelRequest, error)
	SubscribeTermination(ctx context.Context) (<-chan *Termination, error)

	Close() error
}
