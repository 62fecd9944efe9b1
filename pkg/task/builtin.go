package task

import (
	"context"
	"encoding/json"
	"time"
)

const (
	TypeSleep = "sleep"
	TypeNoop  = "noop"
)

// SleepTask sleeps for the configured duration, honouring cancellation.
// Useful for smoke tests and demos of the full submit / await / cancel loop.
type SleepTask struct {
	Seconds int64 `json:"seconds"`
}

func (t *SleepTask) Type() string { return TypeSleep }

func (t *SleepTask) Run(ctx context.Context) (Result, error) {
	select {
	case <-time.After(time.Duration(t.Seconds) * time.Second):
		return Done, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// NoopTask completes immediately.
type NoopTask struct{}

func (t *NoopTask) Type() string { return TypeNoop }

func (t *NoopTask) Run(ctx context.Context) (Result, error) {
	return Done, nil
}

// RegisterBuiltins adds the built-in task codecs to the given registry.
func RegisterBuiltins(r *Registry) error {
	err := r.Register(TypeSleep, func(args []byte) (Task, error) {
		t := &SleepTask{}
		return t, json.Unmarshal(args, t)
	})
	if err != nil {
		return err
	}
	return r.Register(TypeNoop, func(args []byte) (Task, error) {
		return &NoopTask{}, nil
	})
}
