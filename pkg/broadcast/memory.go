package broadcast

import (
	"context"
	"sync"
)

// Memory is an in-process Broadcaster used by single-node deployments and
// tests. Delivery is fan-out to every subscriber, like the real topics.
type Memory struct {
	mu     sync.Mutex
	cancel []chan *CancelRequest
	term   []chan *Termination
	closed bool
}

func NewMemoryBroadcaster() *Memory {
	return &Memory{}
}

func (m *Memory) PublishCancel(ctx context.Context, req *CancelRequest) error {
	m.mu.Lock()
	subs := append([]chan *CancelRequest{}, m.cancel...)
	m.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- req:
		default: // slow subscriber; it falls back to polling the details store
		}
	}
	return nil
}

func (m *Memory) PublishTermination(ctx context.Context, t *Termination) error {
	m.mu.Lock()
	subs := append([]chan *Termination{}, m.term...)
	m.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- t:
		default:
		}
	}
	return nil
}

func (m *Memory) SubscribeCancel(ctx context.Context) (<-chan *CancelRequest, error) {
	ch := make(chan *CancelRequest, subscribeBuffer)
	m.mu.Lock()
	m.cancel = append(m.cancel, ch)
	m.mu.Unlock()
	return ch, nil
}

func (m *Memory) SubscribeTermination(ctx context.Context) (<-chan *Termination, error) {
	ch := make(chan *Termination, subscribeBuffer)
	m.mu.Lock()
	m.term = append(m.term, ch)
	m.mu.Unlock()
	return ch, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, ch := range m.cancel {
		close(ch)
	}
	for _, ch := range m.term {
		close(ch)
	}
	m.cancel = nil
	m.term = nil
	return nil
}
