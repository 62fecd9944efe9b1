package queue

import (
	"encoding/json"
	"fmt"

	"github.com/ketrez/steward/pkg/errors"
)

// Ref is the wire form of a submitted task: enough for any node to load the
// history, decode the task and execute it.
type Ref struct {
	TaskID   string `json:"task_id"`
	TaskType string `json:"task_type"`

	// Args is the serialized task payload, decoded via the task registry
	// on whichever node dequeues it.
	Args []byte `json:"args"`
}

// Encode serializes the ref for the transport.
func (r *Ref) Encode() ([]byte, error) {
	if r.TaskID == "" || r.TaskType == "" {
		return nil, fmt.Errorf("%w ref requires task id and type", errors.ErrInvalidArg)
	}
	return json.Marshal(r)
}

// DecodeRef parses a ref off the transport.
func DecodeRef(payload []byte) (*Ref, error) {
	r := &Ref{}
	if err := json.Unmarshal(payload, r); err != nil {
		return nil, fmt.Errorf("%w bad ref payload: %v", errors.ErrInvalidArg, err)
	}
	if r.TaskID == "" || r.TaskType == "" {
		return nil, fmt.Errorf("%w ref requires task id and type", errors.ErrInvalidArg)
	}
	return r, nil
}
