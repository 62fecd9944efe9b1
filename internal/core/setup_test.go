package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ketrez/steward/pkg/broadcast"
	"github.com/ketrez/steward/pkg/database"
	"github.com/ketrez/steward/pkg/queue"
	"github.com/ketrez/steward/pkg/structs"
	"github.com/ketrez/steward/pkg/task"
)

func init() {
	timeNow = func() int64 { return 1000000 }
}

const (
	typeOk    = "t-ok"
	typeErr   = "t-err"
	typePanic = "t-panic"
	typeBlock = "t-block"
	typeInfo  = "t-info"
)

// gate lets a test hold a running task open until it decides otherwise.
type gate struct {
	release chan struct{}
	once    sync.Once
}

func newGate() *gate {
	return &gate{release: make(chan struct{})}
}

func (g *gate) open() {
	g.once.Do(func() { close(g.release) })
}

type okTask struct{}

func (t *okTask) Type() string { return typeOk }

func (t *okTask) Run(ctx context.Context) (task.Result, error) { return task.Done, nil }

type errTask struct{}

func (t *errTask) Type() string { return typeErr }

func (t *errTask) Run(ctx context.Context) (task.Result, error) {
	return "", fmt.Errorf("boom")
}

type panicTask struct{}

func (t *panicTask) Type() string { return typePanic }

func (t *panicTask) Run(ctx context.Context) (task.Result, error) { panic("kaboom") }

type blockTask struct {
	gate *gate
}

func (t *blockTask) Type() string { return typeBlock }

func (t *blockTask) Run(ctx context.Context) (task.Result, error) {
	select {
	case <-t.gate.release:
		return task.Done, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type infoTask struct {
	gate *gate
}

func (t *infoTask) Type() string { return typeInfo }

func (t *infoTask) Run(ctx context.Context) (task.Result, error) {
	select {
	case <-t.gate.release:
		return task.Done, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (t *infoTask) Info() []byte {
	return []byte(`{"processed":42}`)
}

// fixture is one in-process cluster node on memory backends.
type fixture struct {
	svc  *Service
	db   *database.Memory
	bus  *broadcast.Memory
	gate *gate
}

func newFixture(t *testing.T, runWorker bool) *fixture {
	t.Helper()

	g := newGate()
	reg := task.NewRegistry()
	require.Nil(t, reg.Register(typeOk, func(args []byte) (task.Task, error) { return &okTask{}, nil }))
	require.Nil(t, reg.Register(typeErr, func(args []byte) (task.Task, error) { return &errTask{}, nil }))
	require.Nil(t, reg.Register(typePanic, func(args []byte) (task.Task, error) { return &panicTask{}, nil }))
	require.Nil(t, reg.Register(typeBlock, func(args []byte) (task.Task, error) { return &blockTask{gate: g}, nil }))
	require.Nil(t, reg.Register(typeInfo, func(args []byte) (task.Task, error) { return &infoTask{gate: g}, nil }))

	db := database.NewMemory()
	qu := queue.NewMemoryQueue()
	bus := broadcast.NewMemoryBroadcaster()

	svc, err := NewService(db, qu, bus, reg, &Options{
		Node:               "test-node",
		RunWorker:          runWorker,
		InfoUpdateInterval: 10 * time.Millisecond,
	})
	require.Nil(t, err)
	t.Cleanup(func() { svc.Close() })

	return &fixture{svc: svc, db: db, bus: bus, gate: g}
}

// awaitStatus polls the details store until the task reaches the wanted
// status, failing the test after two seconds.
func awaitStatus(t *testing.T, svc *Service, taskID string, want structs.Status) *structs.TaskExecutionDetails {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		d, err := svc.Details(context.Background(), taskID)
		if err == nil && d.Status == want {
			return d
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("task %s never reached status %s", taskID, want)
	return nil
}

// marshalArgs is a convenience for seeding histories by hand.
func marshalArgs(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.Nil(t, err)
	return b
}
