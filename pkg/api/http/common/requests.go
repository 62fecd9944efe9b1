package common

import "encoding/json"

// SubmitRequest asks the cluster to run a task, specific to HTTP.
type SubmitRequest struct {
	// Type names a task kind registered on the worker nodes.
	Type string `json:"type"`

	// Args is the task's own payload, passed through as-is.
	Args json.RawMessage `json:"args,omitempty"`
}

// SubmitResponse carries the ID the cluster assigned to the task.
type SubmitResponse struct {
	TaskID string `json:"task_id"`
}

// CancelRequest asks that a task be stopped.
type CancelRequest struct {
	TaskID string `json:"task_id"`
}
