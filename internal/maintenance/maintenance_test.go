package maintenance

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	count           int
	countCalls      int
	checkpointCalls int
	checkpointErr   error
}

func (f *fakeStore) Count(ctx context.Context) (int, error) {
	f.countCalls++
	return f.count, nil
}

func (f *fakeStore) Checkpoint(ctx context.Context) error {
	f.checkpointCalls++
	return f.checkpointErr
}

func TestRunCheckpointsAndCounts(t *testing.T) {
	st := &fakeStore{count: 3}
	runner, err := New(st, "@hourly", zerolog.Nop())
	require.NoError(t, err)

	runner.run()

	assert.Equal(t, 1, st.checkpointCalls)
	assert.Equal(t, 1, st.countCalls)
}

func TestRunStopsAfterCheckpointFailure(t *testing.T) {
	st := &fakeStore{checkpointErr: errors.New("database is locked")}
	runner, err := New(st, "@hourly", zerolog.Nop())
	require.NoError(t, err)

	runner.run()

	assert.Equal(t, 1, st.checkpointCalls)
	assert.Equal(t, 0, st.countCalls)
}

func TestNewRejectsBadSchedule(t *testing.T) {
	_, err := New(&fakeStore{}, "whenever", zerolog.Nop())
	assert.Error(t, err)
}
