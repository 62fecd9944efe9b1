package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/ketrez/steward/pkg/errors"
)

const (
	asynqWorkQueue = "steward:work"
	asynqTaskKind  = "steward:execute"

	// one task in flight cluster-wide; the work queue is the single
	// serialization point of the whole system
	asynqConcurrency = 1
)

// Asynq is a Queue implementation on hibiken/asynq (Redis).
type Asynq struct {
	opts *Options

	// the asynq client & inspector
	ins *asynq.Inspector
	cli *asynq.Client

	handler Handler

	// if Register is called we're intended to start a server
	lock sync.Mutex
	mux  *asynq.ServeMux
	srv  *asynq.Server
}

// NewAsynqQueue connects to the queue's Redis backend.
func NewAsynqQueue(opts *Options) (*Asynq, error) {
	opts.SetDefaults()
	conn, err := asynq.ParseRedisURI(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("%w bad queue url: %v", errors.ErrInvalidArg, err)
	}
	rcopt, ok := conn.(asynq.RedisClientOpt)
	if !ok {
		return nil, fmt.Errorf("%w queue url must point at a single redis node", errors.ErrNotSupported)
	}
	rcopt.TLSConfig = opts.TLSConfig
	return &Asynq{
		opts: opts,
		ins:  asynq.NewInspector(rcopt),
		cli:  asynq.NewClient(rcopt),
	}, nil
}

func (a *Asynq) Close() error {
	if a.srv == nil {
		return a.cli.Close()
	}
	a.srv.Stop()
	a.srv.Shutdown()
	return a.cli.Close()
}

// Enqueue publishes the ref; the returned id is asynq's message id.
func (a *Asynq) Enqueue(ref *Ref) (string, error) {
	payload, err := ref.Encode()
	if err != nil {
		return "", err
	}
	info, err := a.cli.Enqueue(
		asynq.NewTask(asynqTaskKind, payload),
		asynq.Queue(asynqWorkQueue),
		asynq.Timeout(a.opts.TaskTimeout),
		asynq.MaxRetry(a.opts.MaxRetry),
	)
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// Register sets the handler for dequeued tasks.
func (a *Asynq) Register(handler Handler) error {
	if a.mux == nil {
		a.buildServer()
	}
	a.handler = handler
	a.mux.HandleFunc(asynqTaskKind, func(ctx context.Context, t *asynq.Task) error {
		ref, err := DecodeRef(t.Payload())
		if err != nil {
			// malformed payload can never succeed; don't retry forever
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return a.handler(ctx, ref)
	})
	return nil
}

// Run consumes until Close is called.
func (a *Asynq) Run() error {
	if a.srv == nil || a.handler == nil {
		return fmt.Errorf("%w no handler registered", errors.ErrInvalidState)
	}
	return a.srv.Run(a.mux)
}

func (a *Asynq) Kill(queuedTaskID string) error {
	// Best effort cancel; asynq can't guarantee this will kill it
	return a.ins.CancelProcessing(queuedTaskID)
}

func (a *Asynq) buildServer() {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.mux != nil {
		// someone locked and set this first
		return
	}
	conn, _ := asynq.ParseRedisURI(a.opts.URL)
	rcopt, _ := conn.(asynq.RedisClientOpt)
	rcopt.TLSConfig = a.opts.TLSConfig
	a.srv = asynq.NewServer(
		rcopt,
		asynq.Config{
			Concurrency: asynqConcurrency,
			Queues:      map[string]int{asynqWorkQueue: 1},
		},
	)
	a.mux = asynq.NewServeMux()
}
