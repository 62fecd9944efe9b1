package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/ketrez/steward/internal/mocks/pkg/database_mock"
	se "github.com/ketrez/steward/pkg/errors"
	"github.com/ketrez/steward/pkg/structs"
	"github.com/ketrez/steward/pkg/task"
)

const cmdTaskID = "7f3c2c86-0b5c-4a6f-9f1e-2f64cb7e4a11"

func cmdCreated() *structs.Created {
	return structs.NewCreated(cmdTaskID, task.TypeNoop, []byte(`{}`), "test-node", timeNow()-60)
}

func conflictErr() error {
	return fmt.Errorf("%w expected version 1, stored 2", se.ErrConcurrentWrite)
}

func TestAppendCommandRetriesAfterConflict(t *testing.T) {
	// someone slips an event in between our read and our append; the loop
	// re-reads, recomputes at the new version and succeeds
	db := database_mock.NewMockDatabase(gomock.NewController(t))

	created := cmdCreated()
	h1 := structs.History{created}
	h2 := structs.History{created, &structs.InfoUpdated{ID: cmdTaskID, Info: []byte(`{}`), At: timeNow() - 30}}

	gomock.InOrder(
		db.EXPECT().History(gomock.Any(), cmdTaskID).Return(h1, nil),
		db.EXPECT().AppendEvents(gomock.Any(), cmdTaskID, 1, gomock.Any()).Return(conflictErr()),
		db.EXPECT().History(gomock.Any(), cmdTaskID).Return(h2, nil),
		db.EXPECT().AppendEvents(gomock.Any(), cmdTaskID, 2, gomock.Any()).Return(nil),
	)

	evt, err := appendCommand(context.Background(), db, cmdTaskID, startCommand("test-node"))

	assert.Nil(t, err)
	require.NotNil(t, evt)
	assert.Equal(t, structs.KindStarted, evt.Kind())
}

func TestAppendCommandConflictRecomputesToNoop(t *testing.T) {
	// two nodes request cancellation at once; the loser re-reads, finds the
	// request already recorded and ends with nothing left to append
	db := database_mock.NewMockDatabase(gomock.NewController(t))

	created := cmdCreated()
	h1 := structs.History{created}
	h2 := structs.History{created, &structs.CancelRequested{ID: cmdTaskID, Node: "other-node", At: timeNow() - 30}}

	gomock.InOrder(
		db.EXPECT().History(gomock.Any(), cmdTaskID).Return(h1, nil),
		db.EXPECT().AppendEvents(gomock.Any(), cmdTaskID, 1, gomock.Any()).Return(conflictErr()),
		db.EXPECT().History(gomock.Any(), cmdTaskID).Return(h2, nil),
	)

	evt, err := appendCommand(context.Background(), db, cmdTaskID, requestCancelCommand("test-node"))

	assert.Nil(t, err)
	assert.Nil(t, evt)
}

func TestAppendCommandGivesUpAfterRepeatedConflicts(t *testing.T) {
	db := database_mock.NewMockDatabase(gomock.NewController(t))

	h := structs.History{cmdCreated()}
	db.EXPECT().History(gomock.Any(), cmdTaskID).Return(h, nil).Times(maxAppendRetries)
	db.EXPECT().AppendEvents(gomock.Any(), cmdTaskID, 1, gomock.Any()).Return(conflictErr()).Times(maxAppendRetries)

	evt, err := appendCommand(context.Background(), db, cmdTaskID, startCommand("test-node"))

	assert.Nil(t, evt)
	assert.ErrorIs(t, err, se.ErrConcurrentWrite)
	assert.Contains(t, err.Error(), "gave up")
}

func TestAppendCommandPassesThroughOtherErrors(t *testing.T) {
	db := database_mock.NewMockDatabase(gomock.NewController(t))

	boom := fmt.Errorf("connection refused")
	db.EXPECT().History(gomock.Any(), cmdTaskID).Return(structs.History{cmdCreated()}, nil)
	db.EXPECT().AppendEvents(gomock.Any(), cmdTaskID, 1, gomock.Any()).Return(boom)

	evt, err := appendCommand(context.Background(), db, cmdTaskID, startCommand("test-node"))

	assert.Nil(t, evt)
	assert.ErrorIs(t, err, boom)
}
