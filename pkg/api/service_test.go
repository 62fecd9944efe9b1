package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	se "github.com/ketrez/steward/pkg/errors"
	"github.com/ketrez/steward/pkg/structs"
	"github.com/ketrez/steward/pkg/task"
)

func TestInMemoryRoundTrip(t *testing.T) {
	reg := task.NewRegistry()
	require.Nil(t, task.RegisterBuiltins(reg))

	svc, err := NewInMemory(reg, OptionsWorkerDefault())
	require.Nil(t, err)
	defer svc.Close()

	ctx := context.Background()
	id, err := svc.Submit(ctx, &task.SleepTask{Seconds: 0})
	require.Nil(t, err)

	d, err := svc.Await(ctx, id, 2*time.Second)

	assert.Nil(t, err)
	assert.Equal(t, structs.COMPLETED, d.Status)
	assert.Equal(t, string(task.Done), d.Result)
}

func TestInMemoryCancel(t *testing.T) {
	reg := task.NewRegistry()
	require.Nil(t, task.RegisterBuiltins(reg))

	svc, err := NewInMemory(reg, OptionsWorkerDefault())
	require.Nil(t, err)
	defer svc.Close()

	ctx := context.Background()
	id, err := svc.Submit(ctx, &task.SleepTask{Seconds: 60})
	require.Nil(t, err)

	// cancel asynchronously; the sleep honours its context
	require.Nil(t, svc.Cancel(ctx, id))

	d, err := svc.Await(ctx, id, 2*time.Second)

	assert.Nil(t, err)
	assert.Equal(t, structs.CANCELLED, d.Status)
}

func TestInMemoryDetailsUnknown(t *testing.T) {
	reg := task.NewRegistry()
	require.Nil(t, task.RegisterBuiltins(reg))

	svc, err := NewInMemory(reg, nil)
	require.Nil(t, err)
	defer svc.Close()

	_, err = svc.Details(context.Background(), "b5bfa0c3-1a9f-4a35-9d8c-4bfd5ca75a98")

	assert.ErrorIs(t, err, se.ErrNotFound)
}
