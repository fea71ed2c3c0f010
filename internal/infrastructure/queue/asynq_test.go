package queue

import (
	"context"
	"errors"
	"testing"

	"blood-donation-api/internal/testutil"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
)

type fakeSyncer struct {
	calls int
	err   error
}

func (f *fakeSyncer) Perform(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestHandleSheetSyncRunsSyncer(t *testing.T) {
	syncer := &fakeSyncer{}
	w := &Worker{syncer: syncer, log: testutil.NewLogger()}

	err := w.HandleSheetSync(context.Background(), asynq.NewTask(TypeSheetSync, nil))
	assert.NoError(t, err)
	assert.Equal(t, 1, syncer.calls)
}

func TestHandleSheetSyncReturnsError(t *testing.T) {
	boom := errors.New("sheets down")
	w := &Worker{syncer: &fakeSyncer{err: boom}, log: testutil.NewLogger()}

	err := w.HandleSheetSync(context.Background(), asynq.NewTask(TypeSheetSync, nil))
	assert.ErrorIs(t, err, boom)
}
