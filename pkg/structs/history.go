package structs

// History is the ordered event sequence for one task id, oldest first.
type History []Event

// Version is the number of events appended so far; an append expecting this
// version succeeds only if nothing else was appended in between.
func (h History) Version() int {
	return len(h)
}

// Created returns the initial event, or nil for an empty history.
func (h History) Created() *Created {
	if len(h) == 0 {
		return nil
	}
	c, ok := h[0].(*Created)
	if !ok {
		return nil
	}
	return c
}

// StartedEvent returns the Started event if one exists.
func (h History) StartedEvent() *Started {
	for _, e := range h {
		if s, ok := e.(*Started); ok {
			return s
		}
	}
	return nil
}

// CancelRequestedEvent returns the first CancelRequested event if one exists.
func (h History) CancelRequestedEvent() *CancelRequested {
	for _, e := range h {
		if c, ok := e.(*CancelRequested); ok {
			return c
		}
	}
	return nil
}

// Terminal returns the terminal event (Completed, Failed or Cancelled) if one
// exists. A legal history never holds more than one.
func (h History) Terminal() Event {
	for _, e := range h {
		switch e.Kind() {
		case KindCompleted, KindFailed, KindCancelled:
			return e
		}
	}
	return nil
}
