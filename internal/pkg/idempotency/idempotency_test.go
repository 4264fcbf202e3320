package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T) (*StateTracker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, Options{LockDuration: time.Minute, CompletedTTL: time.Hour}), mr
}

func TestStateTracker_Exec_CompletesOnce(t *testing.T) {
	t.Parallel()

	// Arrange
	tr, mr := newTracker(t)
	calls := 0
	fn := func(context.Context) error {
		calls++
		return nil
	}

	// Act
	first := tr.Exec(context.Background(), "k1", fn)
	second := tr.Exec(context.Background(), "k1", fn)

	// Assert
	require.NoError(t, first)
	assert.ErrorIs(t, second, ErrAlreadyCompleted)
	assert.Equal(t, 1, calls)

	val, err := mr.Get("idempotency:k1")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted.String(), val)
	assert.Equal(t, time.Hour, mr.TTL("idempotency:k1"))
}

func TestStateTracker_Exec_FailureReleasesKey(t *testing.T) {
	t.Parallel()

	tr, mr := newTracker(t)
	boom := errors.New("smtp down")

	err := tr.Exec(context.Background(), "k2", func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("idempotency:k2"))

	err = tr.Exec(context.Background(), "k2", func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestStateTracker_Exec_InProgress(t *testing.T) {
	t.Parallel()

	tr, _ := newTracker(t)

	err := tr.Exec(context.Background(), "k3", func(ctx context.Context) error {
		return tr.Exec(ctx, "k3", func(context.Context) error { return nil })
	})

	assert.ErrorIs(t, err, ErrAlreadyInProgress)
}

func TestStateTracker_Acquire_InvalidState(t *testing.T) {
	t.Parallel()

	tr, mr := newTracker(t)
	require.NoError(t, mr.Set("idempotency:k4", "garbage"))

	_, err := tr.Acquire(context.Background(), "k4")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestStateTracker_RedisDown(t *testing.T) {
	t.Parallel()

	tr, mr := newTracker(t)
	mr.Close()

	err := tr.Exec(context.Background(), "k5", func(context.Context) error { return nil })
	assert.Error(t, err)
}
