package structs

// EventKind discriminates the closed set of task lifecycle events.
type EventKind string

const (
	KindCreated         EventKind = "CREATED"
	KindStarted         EventKind = "STARTED"
	KindInfoUpdated     EventKind = "INFO_UPDATED"
	KindCancelRequested EventKind = "CANCEL_REQUESTED"
	KindCompleted       EventKind = "COMPLETED"
	KindFailed          EventKind = "FAILED"
	KindCancelled       EventKind = "CANCELLED"
)

// Event is one entry in a task's append-only history.
//
// Events are immutable once appended; the full ordered sequence for one task
// id ("History") is the source of truth for that task's state.
type Event interface {
	Kind() EventKind
	TaskID() string

	// Time is when the event occurred, unix time in seconds.
	Time() int64
}

// Created is always the first event of a history, exactly once per task.
type Created struct {
	ID       string `json:"task_id"`
	TaskType string `json:"task_type"`

	// Args is the serialized task payload, opaque to the event log.
	Args []byte `json:"args"`

	// Node is the cluster node the task was submitted on.
	Node string `json:"node"`

	At int64 `json:"at"`
}

func (e *Created) Kind() EventKind { return KindCreated }
func (e *Created) TaskID() string  { return e.ID }
func (e *Created) Time() int64     { return e.At }

// Started is appended when a worker picks the task up; at most once per history.
type Started struct {
	ID   string `json:"task_id"`
	Node string `json:"node"`
	At   int64  `json:"at"`
}

func (e *Started) Kind() EventKind { return KindStarted }
func (e *Started) TaskID() string  { return e.ID }
func (e *Started) Time() int64     { return e.At }

// InfoUpdated refreshes the task's additional information; zero or more per
// history, informational only.
type InfoUpdated struct {
	ID   string `json:"task_id"`
	Info []byte `json:"info"`
	At   int64  `json:"at"`
}

func (e *InfoUpdated) Kind() EventKind { return KindInfoUpdated }
func (e *InfoUpdated) TaskID() string  { return e.ID }
func (e *InfoUpdated) Time() int64     { return e.At }

// CancelRequested records the durable intent to cancel; cancellation itself is
// cooperative and may never take effect if the task doesn't check for it.
type CancelRequested struct {
	ID   string `json:"task_id"`
	Node string `json:"node"`
	At   int64  `json:"at"`
}

func (e *CancelRequested) Kind() EventKind { return KindCancelRequested }
func (e *CancelRequested) TaskID() string  { return e.ID }
func (e *CancelRequested) Time() int64     { return e.At }

// Completed is a terminal event.
type Completed struct {
	ID     string `json:"task_id"`
	Result string `json:"result"`
	Info   []byte `json:"info,omitempty"`
	At     int64  `json:"at"`
}

func (e *Completed) Kind() EventKind { return KindCompleted }
func (e *Completed) TaskID() string  { return e.ID }
func (e *Completed) Time() int64     { return e.At }

// Failed is a terminal event.
type Failed struct {
	ID      string `json:"task_id"`
	Message string `json:"message"`
	Info    []byte `json:"info,omitempty"`
	At      int64  `json:"at"`
}

func (e *Failed) Kind() EventKind { return KindFailed }
func (e *Failed) TaskID() string  { return e.ID }
func (e *Failed) Time() int64     { return e.At }

// Cancelled is a terminal event.
type Cancelled struct {
	ID   string `json:"task_id"`
	Info []byte `json:"info,omitempty"`
	At   int64  `json:"at"`
}

func (e *Cancelled) Kind() EventKind { return KindCancelled }
func (e *Cancelled) TaskID() string  { return e.ID }
func (e *Cancelled) Time() int64     { return e.At }
