package core

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ketrez/steward/pkg/broadcast"
	"github.com/ketrez/steward/pkg/database"
	"github.com/ketrez/steward/pkg/queue"
	"github.com/ketrez/steward/pkg/structs"
	"github.com/ketrez/steward/pkg/task"
)

// execution tracks one in-flight task on this node so a broadcast
// cancellation can abort it.
type execution struct {
	cancel    context.CancelFunc
	requested bool
}

// Worker executes tasks delivered by the queue, one at a time, and records
// every state change as events.
type Worker struct {
	db   database.Database
	bus  broadcast.Broadcaster
	reg  *task.Registry
	opts *Options
	errs chan error

	mu      sync.Mutex
	current map[string]*execution
}

func newWorker(db database.Database, bus broadcast.Broadcaster, reg *task.Registry, opts *Options, errs chan error) (*Worker, error) {
	return &Worker{
		db:      db,
		bus:     bus,
		reg:     reg,
		opts:    opts,
		errs:    errs,
		current: map[string]*execution{},
	}, nil
}

// listen aborts in-flight executions when their cancellation is broadcast.
func (w *Worker) listen(ctx context.Context) error {
	reqs, err := w.bus.SubscribeCancel(ctx)
	if err != nil {
		return err
	}
	go func() {
		for r := range reqs {
			w.abort(r.TaskID)
		}
	}()
	return nil
}

func (w *Worker) abort(taskID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.current[taskID]
	if !ok {
		return
	}
	e.requested = true
	e.cancel()
}

func (w *Worker) track(taskID string, cancel context.CancelFunc, requested bool) *execution {
	w.mu.Lock()
	defer w.mu.Unlock()
	e := &execution{cancel: cancel, requested: requested}
	w.current[taskID] = e
	return e
}

func (w *Worker) untrack(taskID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.current, taskID)
}

func (w *Worker) cancelRequested(taskID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	e, ok := w.current[taskID]
	return ok && e.requested
}

// handle is the queue callback. Returning an error leaves the message on the
// queue for redelivery; returning nil acks it. Since messages can arrive more
// than once, every step here must tolerate a replay.
func (w *Worker) handle(ctx context.Context, ref *queue.Ref) error {
	h, err := w.db.History(ctx, ref.TaskID)
	if err != nil {
		return err
	}
	if h.Created() == nil {
		// events are written before the enqueue, so this is a message
		// that raced ahead of the store; redeliver
		return fmt.Errorf("no recorded events for task %s", ref.TaskID)
	}
	if h.Terminal() != nil {
		// replay of a finished task; make sure the projection caught up
		return project(ctx, w.db, ref.TaskID)
	}
	if h.CancelRequestedEvent() != nil && h.StartedEvent() == nil {
		// cancelled before any node picked it up; it is never started
		return w.finish(ref.TaskID, cancelCommand(nil), structs.CANCELLED)
	}

	if _, err := appendCommand(ctx, w.db, ref.TaskID, startCommand(w.opts.Node)); err != nil {
		return err
	}
	if err := project(ctx, w.db, ref.TaskID); err != nil {
		w.errs <- err
	}

	t, err := w.reg.Decode(ref.TaskType, ref.Args)
	if err != nil {
		// nothing this node or any other can do with the payload
		w.errs <- fmt.Errorf("cannot decode task %s: %w", ref.TaskID, err)
		return w.finish(ref.TaskID, failCommand(err.Error(), nil), structs.FAILED)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w.track(ref.TaskID, cancel, h.CancelRequestedEvent() != nil)
	defer w.untrack(ref.TaskID)

	// a cancellation broadcast between the history read and track() above
	// would have been missed; re-read to close the window
	h2, err := w.db.History(ctx, ref.TaskID)
	if err == nil && h2.CancelRequestedEvent() != nil {
		w.abort(ref.TaskID)
	}

	if informer, ok := t.(task.Informer); ok {
		go w.pollInfo(runCtx, ref.TaskID, informer)
	}

	result, runErr := runTask(runCtx, t)

	var info []byte
	if informer, ok := t.(task.Informer); ok {
		info = informer.Info()
	}

	switch {
	case runErr == nil:
		return w.finish(ref.TaskID, completeCommand(string(result), info), structs.COMPLETED)
	case w.cancelRequested(ref.TaskID):
		return w.finish(ref.TaskID, cancelCommand(info), structs.CANCELLED)
	default:
		log.Println("[Worker] task", ref.TaskID, "failed:", runErr)
		return w.finish(ref.TaskID, failCommand(runErr.Error(), info), structs.FAILED)
	}
}

// finish appends the terminal event, refreshes the projection and broadcasts
// the termination. It deliberately ignores the delivery context: a task that
// ran to its deadline must still have its outcome recorded.
func (w *Worker) finish(taskID string, cmd command, status structs.Status) error {
	ctx := context.Background()
	if _, err := appendCommand(ctx, w.db, taskID, cmd); err != nil {
		w.errs <- err
		return err
	}
	if err := project(ctx, w.db, taskID); err != nil {
		// no ack; the replay path repairs the projection
		w.errs <- err
		return err
	}
	err := w.bus.PublishTermination(ctx, &broadcast.Termination{TaskID: taskID, Status: status})
	if err != nil {
		// awaiters on other nodes fall back to their timeout
		w.errs <- err
	}
	return nil
}

func (w *Worker) pollInfo(ctx context.Context, taskID string, informer task.Informer) {
	tick := time.NewTicker(w.opts.InfoUpdateInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			info := informer.Info()
			if info == nil {
				continue
			}
			if _, err := appendCommand(ctx, w.db, taskID, updateInfoCommand(info)); err != nil {
				w.errs <- err
				continue
			}
			if err := project(ctx, w.db, taskID); err != nil {
				w.errs <- err
			}
		}
	}
}

// runTask shields the worker from tasks that panic.
func runTask(ctx context.Context, t task.Task) (result task.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return t.Run(ctx)
}
