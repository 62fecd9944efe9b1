package api

import (
	"time"

	"github.com/ketrez/steward/internal/core"
)

// Options passed to the steward service on creation.
type Options struct {
	// Node names this process in events it writes (eg. submitted-by,
	// started-by). Defaults to the hostname.
	Node string

	// RunWorker pulls tasks off the queue and executes them on this node.
	RunWorker bool

	// ReconcileRoutines is the number of goroutines rechecking tasks that
	// look stuck (we do this in case messages were dropped / nodes died).
	// 0 disables reconciliation on this node.
	ReconcileRoutines int

	// ReconcileFrequency is how often the recheck runs.
	ReconcileFrequency time.Duration

	// RequeueThreshold is how long a submitted task may sit unstarted
	// before it is re-published to the queue.
	RequeueThreshold time.Duration

	// MaxTaskRuntime is the absolute maximum time a task is permitted to
	// run for. After this time it is failed.
	MaxTaskRuntime time.Duration

	// InfoUpdateInterval is how often a running task's progress details
	// are recorded.
	InfoUpdateInterval time.Duration
}

// OptionsClientDefault suits processes that submit, await and cancel tasks
// but never execute them or run background reconciliation.
func OptionsClientDefault() *Options {
	return &Options{}
}

// OptionsWorkerDefault suits processes that execute tasks and keep the
// cluster's records consistent.
func OptionsWorkerDefault() *Options {
	return &Options{
		RunWorker:          true,
		ReconcileRoutines:  2,
		ReconcileFrequency: 2 * time.Minute,
		RequeueThreshold:   5 * time.Minute,
		MaxTaskRuntime:     24 * time.Hour,
		InfoUpdateInterval: 2 * time.Second,
	}
}

func (o *Options) toCore() *core.Options {
	return &core.Options{
		Node:               o.Node,
		RunWorker:          o.RunWorker,
		ReconcileRoutines:  o.ReconcileRoutines,
		ReconcileFrequency: o.ReconcileFrequency,
		RequeueThreshold:   o.RequeueThreshold,
		MaxTaskRuntime:     o.MaxTaskRuntime,
		InfoUpdateInterval: o.InfoUpdateInterval,
	}
}
