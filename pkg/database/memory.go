package database

import (
	"context"
	"fmt"
	"sync"

	se "github.com/ketrez/steward/pkg/errors"
	"github.com/ketrez/steward/pkg/structs"
)

// Memory is an in-process Database used by single-node deployments and tests.
// It honours the same append / version semantics as Postgres.
type Memory struct {
	mu      sync.Mutex
	events  map[string]structs.History
	details map[string]*structs.TaskExecutionDetails
	order   []string // insertion order of detail upserts, for deterministic lists
}

func NewMemory() *Memory {
	return &Memory{
		events:  map[string]structs.History{},
		details: map[string]*structs.TaskExecutionDetails{},
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) AppendEvents(ctx context.Context, taskID string, expectedVersion int, events []structs.Event) error {
	if len(events) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.events[taskID]
	if len(stored) != expectedVersion {
		return fmt.Errorf("%w expected version %d, stored %d", se.ErrConcurrentWrite, expectedVersion, len(stored))
	}
	m.events[taskID] = append(stored, events...)
	return nil
}

func (m *Memory) History(ctx context.Context, taskID string) (structs.History, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.events[taskID]
	out := make(structs.History, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *Memory) UpsertDetails(ctx context.Context, d *structs.TaskExecutionDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.details[d.TaskID]; !ok {
		m.order = append(m.order, d.TaskID)
	} else if structs.IsFinalStatus(prev.Status) {
		// final rows are frozen; the incoming write folded a stale prefix
		return nil
	}
	cp := *d
	m.details[d.TaskID] = &cp
	return nil
}

func (m *Memory) Details(ctx context.Context, taskID string) (*structs.TaskExecutionDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.details[taskID]
	if !ok {
		return nil, fmt.Errorf("%w %s", se.ErrNotFound, taskID)
	}
	cp := *d
	return &cp, nil
}

func (m *Memory) ListDetails(ctx context.Context, q *structs.Query) ([]*structs.TaskExecutionDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wantID := map[string]bool{}
	for _, id := range q.TaskIDs {
		wantID[id] = true
	}
	wantStatus := map[structs.Status]bool{}
	for _, s := range q.Statuses {
		wantStatus[s] = true
	}

	out := []*structs.TaskExecutionDetails{}
	skipped := 0
	for _, id := range m.order {
		d := m.details[id]
		if len(wantID) > 0 && !wantID[d.TaskID] {
			continue
		}
		if len(wantStatus) > 0 && !wantStatus[d.Status] {
			continue
		}
		if skipped < q.Offset {
			skipped++
			continue
		}
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}
