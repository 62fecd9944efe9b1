package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldDetails(t *testing.T) {
	cases := []struct {
		Name   string
		Given  History
		Expect *TaskExecutionDetails
	}{
		{
			Name:   "EmptyHistory",
			Given:  historyOf(),
			Expect: nil,
		},
		{
			Name:  "Submitted",
			Given: historyOf(created()),
			Expect: &TaskExecutionDetails{
				TaskID: testID, TaskType: "sleep", Status: WAITING,
				SubmittedNode: "node-a", SubmittedAt: 100,
			},
		},
		{
			Name:  "Running",
			Given: historyOf(created(), &Started{ID: testID, Node: "node-b", At: 150}),
			Expect: &TaskExecutionDetails{
				TaskID: testID, TaskType: "sleep", Status: IN_PROGRESS,
				SubmittedNode: "node-a", SubmittedAt: 100,
				StartedNode: "node-b", StartedAt: 150,
			},
		},
		{
			Name: "RunningWithInfo",
			Given: historyOf(
				created(),
				&Started{ID: testID, Node: "node-b", At: 150},
				&InfoUpdated{ID: testID, Info: []byte(`{"n":1}`), At: 160},
				&InfoUpdated{ID: testID, Info: []byte(`{"n":2}`), At: 170},
			),
			Expect: &TaskExecutionDetails{
				TaskID: testID, TaskType: "sleep", Status: IN_PROGRESS,
				SubmittedNode: "node-a", SubmittedAt: 100,
				StartedNode: "node-b", StartedAt: 150,
				Info: []byte(`{"n":2}`),
			},
		},
		{
			Name: "CancelRequestedWhileRunning",
			Given: historyOf(
				created(),
				&Started{ID: testID, Node: "node-b", At: 150},
				&CancelRequested{ID: testID, Node: "node-c", At: 160},
			),
			Expect: &TaskExecutionDetails{
				TaskID: testID, TaskType: "sleep", Status: CANCEL_REQUESTED,
				SubmittedNode: "node-a", SubmittedAt: 100,
				StartedNode: "node-b", StartedAt: 150,
			},
		},
		{
			// cancel won before any node started the task; it never runs
			Name: "CancelledWithoutStarting",
			Given: historyOf(
				created(),
				&CancelRequested{ID: testID, Node: "node-c", At: 160},
				&Cancelled{ID: testID, At: 170},
			),
			Expect: &TaskExecutionDetails{
				TaskID: testID, TaskType: "sleep", Status: CANCELLED,
				SubmittedNode: "node-a", SubmittedAt: 100,
				CancelledAt: 170,
			},
		},
		{
			Name: "Completed",
			Given: historyOf(
				created(),
				&Started{ID: testID, Node: "node-b", At: 150},
				&Completed{ID: testID, Result: "done", Info: []byte(`{"n":9}`), At: 180},
			),
			Expect: &TaskExecutionDetails{
				TaskID: testID, TaskType: "sleep", Status: COMPLETED,
				SubmittedNode: "node-a", SubmittedAt: 100,
				StartedNode: "node-b", StartedAt: 150,
				CompletedAt: 180, Result: "done", Info: []byte(`{"n":9}`),
			},
		},
		{
			Name: "Failed",
			Given: historyOf(
				created(),
				&Started{ID: testID, Node: "node-b", At: 150},
				&Failed{ID: testID, Message: "boom", At: 180},
			),
			Expect: &TaskExecutionDetails{
				TaskID: testID, TaskType: "sleep", Status: FAILED,
				SubmittedNode: "node-a", SubmittedAt: 100,
				StartedNode: "node-b", StartedAt: 150,
				CompletedAt: 180, Message: "boom",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, FoldDetails(c.Given))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	// replaying any prefix event into an already-folded snapshot changes nothing
	h := historyOf(
		created(),
		&Started{ID: testID, Node: "node-b", At: 150},
		&Completed{ID: testID, Result: "done", At: 180},
	)
	d := FoldDetails(h)

	for _, e := range h {
		replayed := FoldDetails(h)
		replayed.Apply(e)
		assert.Equal(t, d, replayed)
	}
}

func TestApplyFrozenOnceTerminal(t *testing.T) {
	d := FoldDetails(historyOf(created(), &Cancelled{ID: testID, At: 170}))

	d.Apply(&Started{ID: testID, Node: "node-b", At: 180})
	d.Apply(&InfoUpdated{ID: testID, Info: []byte(`{"n":1}`), At: 190})
	d.Apply(&Completed{ID: testID, Result: "done", At: 200})
	d.Apply(&Failed{ID: testID, Message: "boom", At: 210})

	assert.Equal(t, CANCELLED, d.Status)
	assert.Equal(t, int64(0), d.StartedAt)
	assert.Equal(t, int64(0), d.CompletedAt)
	assert.Equal(t, "", d.Result)
	assert.Equal(t, "", d.Message)
	assert.Nil(t, d.Info)
}
