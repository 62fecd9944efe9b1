package core

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ketrez/steward/internal/utils"
	"github.com/ketrez/steward/pkg/broadcast"
	"github.com/ketrez/steward/pkg/database"
	se "github.com/ketrez/steward/pkg/errors"
	"github.com/ketrez/steward/pkg/queue"
	"github.com/ketrez/steward/pkg/structs"
	"github.com/ketrez/steward/pkg/task"
)

var (
	// statuses the reconciler cares about
	unstartedStates = []structs.Status{
		structs.WAITING,
		structs.CANCEL_REQUESTED,
	}
	runningStates = []structs.Status{
		structs.IN_PROGRESS,
		structs.CANCEL_REQUESTED,
	}
)

// Service is the task manager: it records commands as events, keeps the
// details projection current and hands execution to whichever node's worker
// pulls the task off the queue.
type Service struct {
	db   database.Database
	qu   queue.Queue
	bus  broadcast.Broadcaster
	reg  *task.Registry
	opts *Options

	worker *Worker

	errs chan error

	wmu     sync.Mutex
	waiters map[string][]chan structs.Status

	stop context.CancelFunc
}

func NewService(db database.Database, qu queue.Queue, bus broadcast.Broadcaster, reg *task.Registry, opts *Options) (*Service, error) {
	if opts == nil {
		opts = &Options{ReconcileRoutines: defaultReconcileRoutines}
	}
	opts.SetDefaults()

	ctx, stop := context.WithCancel(context.Background())
	me := &Service{
		db:      db,
		qu:      qu,
		bus:     bus,
		reg:     reg,
		opts:    opts,
		errs:    make(chan error, 8),
		waiters: map[string][]chan structs.Status{},
		stop:    stop,
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-me.errs:
				if err != nil {
					log.Println("[Service]", err)
				}
			}
		}
	}()

	// every node listens for terminations so local Await calls wake up
	terms, err := bus.SubscribeTermination(ctx)
	if err != nil {
		stop()
		return nil, err
	}
	go func() {
		for t := range terms {
			me.resolveWaiters(t.TaskID, t.Status)
		}
	}()

	if opts.ReconcileRoutines > 0 {
		// Reconcile routines work in batches, periodically rechecking tasks
		// that look stuck in case some message was dropped / a node died.

		requeueWork := make(chan []*structs.TaskExecutionDetails)
		reapWork := make(chan []*structs.TaskExecutionDetails)
		go func() {
			defer close(requeueWork)
			defer close(reapWork)

			tick := time.NewTicker(opts.ReconcileFrequency)
			defer tick.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-tick.C:
					me.queueRequeueWork(requeueWork)
					me.queueReapWork(reapWork)
				}
			}
		}()

		for i := 0; i < opts.ReconcileRoutines; i++ {
			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case details := <-requeueWork:
						me.handleRequeue(details)
					case details := <-reapWork:
						me.handleReap(details)
					}
				}
			}()
		}
	}

	if opts.RunWorker {
		w, err := newWorker(db, bus, reg, opts, me.errs)
		if err != nil {
			stop()
			return nil, err
		}
		if err := w.listen(ctx); err != nil {
			stop()
			return nil, err
		}
		if err := qu.Register(w.handle); err != nil {
			stop()
			return nil, err
		}
		me.worker = w
		go func() {
			if err := qu.Run(); err != nil {
				me.errs <- err
			}
		}()
	}

	return me, nil
}

func (c *Service) Close() error {
	c.stop()
	c.qu.Close()
	c.bus.Close()
	c.db.Close()
	return nil
}

// Submit records the task and publishes it to the work queue. The returned ID
// is valid even when an error is returned after the events were written; the
// reconciler re-publishes tasks whose enqueue was lost.
func (c *Service) Submit(ctx context.Context, t task.Task) (string, error) {
	taskType, args, err := c.reg.Encode(t)
	if err != nil {
		return "", err
	}

	id := utils.NewRandomID()
	created := structs.NewCreated(id, taskType, args, c.opts.Node, timeNow())
	if err := c.db.AppendEvents(ctx, id, 0, []structs.Event{created}); err != nil {
		return "", err
	}
	if err := project(ctx, c.db, id); err != nil {
		return id, err
	}
	if _, err := c.qu.Enqueue(&queue.Ref{TaskID: id, TaskType: taskType, Args: args}); err != nil {
		return id, err
	}
	return id, nil
}

// Cancel records a cancellation request and broadcasts it so that a node
// currently running the task aborts it. Cancelling an already finished or
// already cancel-requested task is a no-op.
func (c *Service) Cancel(ctx context.Context, taskID string) error {
	if !utils.IsValidID(taskID) {
		return fmt.Errorf("%w task id %s", se.ErrInvalidArg, taskID)
	}

	evt, err := appendCommand(ctx, c.db, taskID, requestCancelCommand(c.opts.Node))
	if err != nil {
		return err
	}
	if evt == nil {
		// duplicate request, or the task already reached a final status
		return nil
	}
	if err := project(ctx, c.db, taskID); err != nil {
		c.errs <- err
	}
	err = c.bus.PublishCancel(ctx, &broadcast.CancelRequest{TaskID: taskID, Node: c.opts.Node})
	if err != nil {
		// the durable request is recorded; a running worker that misses
		// the broadcast is reaped once it exceeds the max runtime
		c.errs <- err
	}
	return nil
}

// Details returns the current projection of a single task.
func (c *Service) Details(ctx context.Context, taskID string) (*structs.TaskExecutionDetails, error) {
	if !utils.IsValidID(taskID) {
		return nil, fmt.Errorf("%w task id %s", se.ErrInvalidArg, taskID)
	}
	return c.db.Details(ctx, taskID)
}

// List returns task details matching the query.
func (c *Service) List(ctx context.Context, q *structs.Query) ([]*structs.TaskExecutionDetails, error) {
	if q == nil {
		q = &structs.Query{}
	}
	q.Sanitize()
	return c.db.ListDetails(ctx, q)
}

// Await blocks until the task reaches a final status, then returns its
// details. It returns ErrReachedTimeout if that doesn't happen in time.
func (c *Service) Await(ctx context.Context, taskID string, timeout time.Duration) (*structs.TaskExecutionDetails, error) {
	d, err := c.Details(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if structs.IsFinalStatus(d.Status) {
		return d, nil
	}

	ch := c.addWaiter(taskID)
	defer c.removeWaiter(taskID, ch)

	// the task may have finished between the read above and the waiter
	// registration, in which case no termination will arrive for us
	d, err = c.Details(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if structs.IsFinalStatus(d.Status) {
		return d, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s awaiting task %s", se.ErrReachedTimeout, timeout, taskID)
	case <-ch:
		return c.Details(ctx, taskID)
	}
}

func (c *Service) addWaiter(taskID string) chan structs.Status {
	ch := make(chan structs.Status, 1)
	c.wmu.Lock()
	defer c.wmu.Unlock()
	c.waiters[taskID] = append(c.waiters[taskID], ch)
	return ch
}

func (c *Service) removeWaiter(taskID string, ch chan structs.Status) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	remaining := []chan structs.Status{}
	for _, w := range c.waiters[taskID] {
		if w != ch {
			remaining = append(remaining, w)
		}
	}
	if len(remaining) == 0 {
		delete(c.waiters, taskID)
	} else {
		c.waiters[taskID] = remaining
	}
}

func (c *Service) resolveWaiters(taskID string, status structs.Status) {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	for _, ch := range c.waiters[taskID] {
		select {
		case ch <- status:
		default:
		}
	}
	delete(c.waiters, taskID)
}

// queueRequeueWork finds tasks that were submitted but never started and sends
// batches over for re-publishing. We do this periodically in case an enqueue
// failed or the queue lost the message.
func (c *Service) queueRequeueWork(work chan<- []*structs.TaskExecutionDetails) {
	q := &structs.Query{Limit: defaultReconcilePageSize, Offset: 0, Statuses: unstartedStates}
	for {
		details, err := c.db.ListDetails(context.Background(), q)
		if err != nil {
			c.errs <- err
			return
		}
		if len(details) > 0 {
			work <- details
		}
		if len(details) < q.Limit {
			return
		}
		q.Offset += q.Limit
	}
}

func (c *Service) queueReapWork(work chan<- []*structs.TaskExecutionDetails) {
	q := &structs.Query{Limit: defaultReconcilePageSize, Offset: 0, Statuses: runningStates}
	for {
		details, err := c.db.ListDetails(context.Background(), q)
		if err != nil {
			c.errs <- err
			return
		}
		if len(details) > 0 {
			work <- details
		}
		if len(details) < q.Limit {
			return
		}
		q.Offset += q.Limit
	}
}

func (c *Service) handleRequeue(details []*structs.TaskExecutionDetails) {
	threshold := int64(c.opts.RequeueThreshold.Seconds())
	for _, d := range details {
		if d.StartedAt > 0 {
			// CANCEL_REQUESTED on a task that is actually running;
			// the reap sweep owns that case
			continue
		}
		if timeNow()-d.SubmittedAt < threshold {
			continue
		}
		h, err := c.db.History(context.Background(), d.TaskID)
		if err != nil {
			c.errs <- err
			continue
		}
		created := h.Created()
		if created == nil || h.Terminal() != nil || h.StartedEvent() != nil {
			continue
		}
		ref := &queue.Ref{TaskID: created.ID, TaskType: created.TaskType, Args: created.Args}
		if _, err := c.qu.Enqueue(ref); err != nil {
			c.errs <- err
		}
	}
}

func (c *Service) handleReap(details []*structs.TaskExecutionDetails) {
	limit := int64(c.opts.MaxTaskRuntime.Seconds())
	for _, d := range details {
		if d.StartedAt <= 0 || timeNow() <= d.StartedAt+limit {
			continue
		}
		// probably the running node died; fail the task so awaiters return
		msg := fmt.Sprintf("exceeded max runtime of %s", c.opts.MaxTaskRuntime)
		evt, err := appendCommand(context.Background(), c.db, d.TaskID, failCommand(msg, nil))
		if err != nil {
			c.errs <- err
			continue
		}
		if evt == nil {
			// the history already holds a terminal event; the row we
			// listed is a stale projection, so refold it
			if err := project(context.Background(), c.db, d.TaskID); err != nil {
				c.errs <- err
			}
			continue
		}
		if err := project(context.Background(), c.db, d.TaskID); err != nil {
			c.errs <- err
			continue
		}
		err = c.bus.PublishTermination(context.Background(), &broadcast.Termination{TaskID: d.TaskID, Status: structs.FAILED})
		if err != nil {
			c.errs <- err
		}
	}
}
