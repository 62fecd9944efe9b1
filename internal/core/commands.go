package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ketrez/steward/pkg/database"
	se "github.com/ketrez/steward/pkg/errors"
	"github.com/ketrez/steward/pkg/structs"
)

// swapped out in tests
var timeNow = func() int64 { return time.Now().Unix() }

const maxAppendRetries = 5

// command computes the event to append given the latest history, or nil when
// there is nothing to do (the aggregate absorbed a duplicate).
type command func(h structs.History) structs.Event

// appendCommand runs the optimistic-concurrency loop: read history, compute,
// append at the read version; on a concurrent write re-read and recompute.
// The recomputed command usually turns into a no-op, which ends the loop.
func appendCommand(ctx context.Context, db database.Database, taskID string, cmd command) (structs.Event, error) {
	for i := 0; i < maxAppendRetries; i++ {
		h, err := db.History(ctx, taskID)
		if err != nil {
			return nil, err
		}
		evt := cmd(h)
		if evt == nil {
			return nil, nil
		}
		err = db.AppendEvents(ctx, taskID, h.Version(), []structs.Event{evt})
		if err == nil {
			return evt, nil
		}
		if !errors.Is(err, se.ErrConcurrentWrite) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w gave up appending to %s after %d conflicts", se.ErrConcurrentWrite, taskID, maxAppendRetries)
}

// The wrappers below exist because a typed nil (*structs.Started)(nil) stuffed
// into the Event interface would not compare equal to nil.

func startCommand(node string) command {
	return func(h structs.History) structs.Event {
		if evt := h.Start(node, timeNow()); evt != nil {
			return evt
		}
		return nil
	}
}

func requestCancelCommand(node string) command {
	return func(h structs.History) structs.Event {
		if evt := h.RequestCancel(node, timeNow()); evt != nil {
			return evt
		}
		return nil
	}
}

func updateInfoCommand(info []byte) command {
	return func(h structs.History) structs.Event {
		if evt := h.UpdateInfo(info, timeNow()); evt != nil {
			return evt
		}
		return nil
	}
}

func completeCommand(result string, info []byte) command {
	return func(h structs.History) structs.Event {
		if evt := h.Complete(result, info, timeNow()); evt != nil {
			return evt
		}
		return nil
	}
}

func failCommand(message string, info []byte) command {
	return func(h structs.History) structs.Event {
		if evt := h.Fail(message, info, timeNow()); evt != nil {
			return evt
		}
		return nil
	}
}

func cancelCommand(info []byte) command {
	return func(h structs.History) structs.Event {
		if evt := h.Cancel(info, timeNow()); evt != nil {
			return evt
		}
		return nil
	}
}

// project refolds the task's history into the details store. The projection is
// derived state; callers decide whether a failure here blocks (worker ack
// paths) or is merely logged (best-effort refreshes).
func project(ctx context.Context, db database.Database, taskID string) error {
	h, err := db.History(ctx, taskID)
	if err != nil {
		return err
	}
	d := structs.FoldDetails(h)
	if d == nil {
		return nil
	}
	return db.UpsertDetails(ctx, d)
}
