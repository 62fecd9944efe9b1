package api

import (
	"github.com/ketrez/steward/internal/core"
	"github.com/ketrez/steward/pkg/broadcast"
	"github.com/ketrez/steward/pkg/database"
	"github.com/ketrez/steward/pkg/queue"
	"github.com/ketrez/steward/pkg/task"
)

// New builds a TaskManager from already-constructed backends. Most callers
// want NewDefault or NewInMemory instead.
func New(db database.Database, qu queue.Queue, bus broadcast.Broadcaster, reg *task.Registry, opts *Options) (TaskManager, error) {
	if opts == nil {
		opts = OptionsClientDefault()
	}
	return core.NewService(db, qu, bus, reg, opts.toCore())
}

// NewDefault builds a TaskManager on postgres, an asynq work queue and redis
// pub/sub. Nil backend options get their defaults.
func NewDefault(dbOpts *database.Options, quOpts *queue.Options, busOpts *broadcast.Options, reg *task.Registry, opts *Options) (TaskManager, error) {
	db, err := database.NewPostgres(dbOpts)
	if err != nil {
		return nil, err
	}
	qu, err := queue.NewAsynqQueue(quOpts)
	if err != nil {
		db.Close()
		return nil, err
	}
	bus, err := broadcast.NewRedisBroadcaster(busOpts)
	if err != nil {
		db.Close()
		qu.Close()
		return nil, err
	}
	return New(db, qu, bus, reg, opts)
}

// NewInMemory builds a single-process TaskManager with no external backends.
// Useful for tests and local development; nothing survives a restart.
func NewInMemory(reg *task.Registry, opts *Options) (TaskManager, error) {
	db := database.NewMemory()
	qu := queue.NewMemoryQueue()
	bus := broadcast.NewMemoryBroadcaster()
	if opts == nil {
		opts = OptionsWorkerDefault()
	}
	return New(db, qu, bus, reg, opts)
}
