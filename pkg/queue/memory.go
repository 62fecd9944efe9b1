package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/ketrez/steward/pkg/errors"
)

const memoryBuffer = 1024

// Memory is an in-process Queue used by single-node deployments and tests.
// Like the real queue it runs one handler at a time and redelivers on handler
// error, up to the configured retry cap.
type Memory struct {
	mu      sync.Mutex
	work    chan *Ref
	handler Handler
	done    chan struct{}
	closed  bool
	retries int
}

func NewMemoryQueue() *Memory {
	return &Memory{
		work:    make(chan *Ref, memoryBuffer),
		done:    make(chan struct{}),
		retries: defaultMaxRetry,
	}
}

func (m *Memory) Enqueue(ref *Ref) (string, error) {
	if _, err := ref.Encode(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", fmt.Errorf("%w queue closed", errors.ErrInvalidState)
	}
	m.work <- ref
	return ref.TaskID, nil
}

func (m *Memory) Register(handler Handler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
	return nil
}

func (m *Memory) Run() error {
	m.mu.Lock()
	handler := m.handler
	m.mu.Unlock()
	if handler == nil {
		return fmt.Errorf("%w no handler registered", errors.ErrInvalidState)
	}
	for {
		select {
		case <-m.done:
			return nil
		case ref := <-m.work:
			for attempt := 0; attempt <= m.retries; attempt++ {
				if err := handler(context.Background(), ref); err == nil {
					break
				}
			}
		}
	}
}

func (m *Memory) Kill(queuedTaskID string) error {
	return fmt.Errorf("%w memory queue cannot kill in-flight work", errors.ErrNotSupported)
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}
