package queue

import (
	"crypto/tls"
	"time"
)

const (
	defaultTaskTimeout = 24 * time.Hour
	defaultMaxRetry    = 20
)

// Options are options for the queue.
type Options struct {
	// URL encodes how we'll connect to the queue.
	URL string

	// TLSConfig needed to connect to the queue (optional).
	TLSConfig *tls.Config

	// TaskTimeout is the transport-level deadline per delivery; after this
	// the message is considered failed and redelivered.
	TaskTimeout time.Duration

	// MaxRetry caps transport redeliveries of a single message.
	MaxRetry int
}

func (o *Options) SetDefaults() {
	if o.TaskTimeout <= 0 {
		o.TaskTimeout = defaultTaskTimeout
	}
	if o.MaxRetry <= 0 {
		o.MaxRetry = defaultMaxRetry
	}
}
