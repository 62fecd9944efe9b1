package structs

// Aggregate command functions. Each inspects the prior history and returns the
// event to append, or nil when the command is a no-op.
//
// Illegal transitions are deliberately not errors: every command may be
// redelivered by an at-least-once transport, so "nothing to do" is the
// expected way to absorb duplicates.

// NewCreated builds the initial event for a fresh task id.
func NewCreated(taskID, taskType string, args []byte, node string, now int64) *Created {
	return &Created{ID: taskID, TaskType: taskType, Args: args, Node: node, At: now}
}

// Start is legal only if the task has never started and isn't terminal.
func (h History) Start(node string, now int64) *Started {
	if h.Created() == nil || h.StartedEvent() != nil || h.Terminal() != nil {
		return nil
	}
	return &Started{ID: h.Created().ID, Node: node, At: now}
}

// RequestCancel is legal unless the task is terminal or a cancel was already
// requested; repeated requests collapse into the first.
func (h History) RequestCancel(node string, now int64) *CancelRequested {
	if h.Created() == nil || h.Terminal() != nil || h.CancelRequestedEvent() != nil {
		return nil
	}
	return &CancelRequested{ID: h.Created().ID, Node: node, At: now}
}

// UpdateInfo is legal only while the task isn't terminal.
func (h History) UpdateInfo(info []byte, now int64) *InfoUpdated {
	if h.Created() == nil || h.Terminal() != nil {
		return nil
	}
	return &InfoUpdated{ID: h.Created().ID, Info: info, At: now}
}

// Complete is legal only if no terminal event exists yet.
func (h History) Complete(result string, info []byte, now int64) *Completed {
	if h.Created() == nil || h.Terminal() != nil {
		return nil
	}
	return &Completed{ID: h.Created().ID, Result: result, Info: info, At: now}
}

// Fail is legal only if no terminal event exists yet.
func (h History) Fail(message string, info []byte, now int64) *Failed {
	if h.Created() == nil || h.Terminal() != nil {
		return nil
	}
	return &Failed{ID: h.Created().ID, Message: message, Info: info, At: now}
}

// Cancel is legal only if no terminal event exists yet.
func (h History) Cancel(info []byte, now int64) *Cancelled {
	if h.Created() == nil || h.Terminal() != nil {
		return nil
	}
	return &Cancelled{ID: h.Created().ID, Info: info, At: now}
}
