package core

import (
	"time"

	"github.com/ketrez/steward/internal/utils"
)

const (
	defaultReconcileRoutines  = 2
	defaultReconcileFrequency = 2 * time.Minute
	defaultRequeueThreshold   = 5 * time.Minute
	defaultMaxTaskRuntime     = 24 * time.Hour
	defaultInfoUpdateInterval = 2 * time.Second
	defaultReconcilePageSize  = 500
)

// Options tunes a Service. The zero value plus SetDefaults yields a worker
// node that also reconciles; clients that only submit and await should zero
// out RunWorker and ReconcileRoutines.
type Options struct {
	// Node names this process in events it writes. Defaults to hostname.
	Node string

	// RunWorker pulls work off the queue and executes it.
	RunWorker bool

	// ReconcileRoutines is the number of goroutines sweeping for stale
	// tasks. 0 disables reconciliation on this node.
	ReconcileRoutines int

	// ReconcileFrequency is how often a sweep starts.
	ReconcileFrequency time.Duration

	// RequeueThreshold is how long a task may sit unstarted before the
	// reconciler re-publishes it to the queue.
	RequeueThreshold time.Duration

	// MaxTaskRuntime bounds a single execution. Tasks running longer are
	// failed by the reconciler (and their queue context expires).
	MaxTaskRuntime time.Duration

	// InfoUpdateInterval is how often a running task's progress details
	// are snapshotted into the event log.
	InfoUpdateInterval time.Duration
}

func (o *Options) SetDefaults() {
	if o.Node == "" {
		o.Node = utils.NodeName()
	}
	if o.ReconcileFrequency <= 0 {
		o.ReconcileFrequency = defaultReconcileFrequency
	}
	if o.RequeueThreshold <= 0 {
		o.RequeueThreshold = defaultRequeueThreshold
	}
	if o.MaxTaskRuntime <= 0 {
		o.MaxTaskRuntime = defaultMaxTaskRuntime
	}
	if o.InfoUpdateInterval <= 0 {
		o.InfoUpdateInterval = defaultInfoUpdateInterval
	}
}
