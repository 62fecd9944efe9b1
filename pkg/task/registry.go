package task

import (
	"encoding/json"
	"fmt"

	"github.com/ketrez/steward/pkg/errors"
)

// DecodeFunc rebuilds a task of one registered type from its serialized args.
type DecodeFunc func(args []byte) (Task, error)

// Registry maps type discriminators to task codecs. It is built once at
// startup and passed by reference to whatever needs to (de)serialize tasks;
// there is no ambient global registry.
type Registry struct {
	decoders map[string]DecodeFunc
}

func NewRegistry() *Registry {
	return &Registry{decoders: map[string]DecodeFunc{}}
}

// Register adds a codec for the given task type. Registering the same
// discriminator twice is a configuration bug and is rejected.
func (r *Registry) Register(taskType string, decode DecodeFunc) error {
	if taskType == "" || decode == nil {
		return fmt.Errorf("%w task type and decoder are required", errors.ErrInvalidTask)
	}
	if _, ok := r.decoders[taskType]; ok {
		return fmt.Errorf("%w %s registered twice", errors.ErrInvalidTask, taskType)
	}
	r.decoders[taskType] = decode
	return nil
}

// Types returns the registered type discriminators.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		out = append(out, k)
	}
	return out
}

// Encode serializes a task for the queue / event log. Only registered types
// may be encoded, so that whichever node dequeues the task can decode it.
func (r *Registry) Encode(t Task) (string, []byte, error) {
	if _, ok := r.decoders[t.Type()]; !ok {
		return "", nil, fmt.Errorf("%w %s", errors.ErrUnknownTaskType, t.Type())
	}
	args, err := json.Marshal(t)
	if err != nil {
		return "", nil, fmt.Errorf("%w failed to encode %s: %v", errors.ErrInvalidTask, t.Type(), err)
	}
	return t.Type(), args, nil
}

// Decode rebuilds a task from its type discriminator and args.
func (r *Registry) Decode(taskType string, args []byte) (Task, error) {
	decode, ok := r.decoders[taskType]
	if !ok {
		return nil, fmt.Errorf("%w %s", errors.ErrUnknownTaskType, taskType)
	}
	t, err := decode(args)
	if err != nil {
		return nil, fmt.Errorf("%w failed to decode %s: %v", errors.ErrInvalidTask, taskType, err)
	}
	return t, nil
}
