package structs

// TaskExecutionDetails is the current-state snapshot of one task, derived by
// folding its history. It is never the source of truth; it exists so that any
// node can answer status queries without replaying events.
type TaskExecutionDetails struct {
	TaskID   string `json:"task_id"`
	TaskType string `json:"task_type"`
	Status   Status `json:"status"`

	// SubmittedNode is the node the task was submitted on, StartedNode the
	// node that executed (or is executing) it.
	SubmittedNode string `json:"submitted_node"`
	StartedNode   string `json:"started_node,omitempty"`

	// unix times in seconds; zero when the lifecycle point wasn't reached
	SubmittedAt int64 `json:"submitted_at"`
	StartedAt   int64 `json:"started_at,omitempty"`
	CompletedAt int64 `json:"completed_at,omitempty"`
	CancelledAt int64 `json:"cancelled_at,omitempty"`

	// Result is set for COMPLETED tasks, Message for FAILED ones.
	Result  string `json:"result,omitempty"`
	Message string `json:"message,omitempty"`

	// Info is the latest additional information the task reported, opaque.
	Info []byte `json:"info,omitempty"`
}

// Apply folds one event into the snapshot. Status moves monotonically from
// WAITING through IN_PROGRESS / CANCEL_REQUESTED to a terminal state; once
// terminal, only Info may still be refreshed by the terminal event itself.
// Re-applying an event a transport redelivered is a no-op.
func (d *TaskExecutionDetails) Apply(e Event) {
	switch evt := e.(type) {
	case *Created:
		if d.TaskID != "" {
			return
		}
		d.TaskID = evt.ID
		d.TaskType = evt.TaskType
		d.Status = WAITING
		d.SubmittedNode = evt.Node
		d.SubmittedAt = evt.At
	case *Started:
		if IsFinalStatus(d.Status) || d.StartedAt > 0 {
			return
		}
		d.StartedAt = evt.At
		d.StartedNode = evt.Node
		if d.Status == WAITING {
			d.Status = IN_PROGRESS
		}
	case *InfoUpdated:
		if IsFinalStatus(d.Status) {
			return
		}
		d.Info = evt.Info
	case *CancelRequested:
		if IsFinalStatus(d.Status) || d.Status == CANCEL_REQUESTED {
			return
		}
		d.Status = CANCEL_REQUESTED
	case *Completed:
		if IsFinalStatus(d.Status) {
			return
		}
		d.Status = COMPLETED
		d.Result = evt.Result
		d.CompletedAt = evt.At
		if evt.Info != nil {
			d.Info = evt.Info
		}
	case *Failed:
		if IsFinalStatus(d.Status) {
			return
		}
		d.Status = FAILED
		d.Message = evt.Message
		d.CompletedAt = evt.At
		if evt.Info != nil {
			d.Info = evt.Info
		}
	case *Cancelled:
		if IsFinalStatus(d.Status) {
			return
		}
		d.Status = CANCELLED
		d.CancelledAt = evt.At
		if evt.Info != nil {
			d.Info = evt.Info
		}
	}
}

// FoldDetails rebuilds the snapshot from a full history. Returns nil for an
// empty history.
func FoldDetails(h History) *TaskExecutionDetails {
	if len(h) == 0 {
		return nil
	}
	d := &TaskExecutionDetails{}
	for _, e := range h {
		d.Apply(e)
	}
	return d
}
