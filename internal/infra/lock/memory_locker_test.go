package lock

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_AcquireRelease(t *testing.T) {
	locker := NewMemoryLocker(time.Minute)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "checkout:user-1")
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "checkout:user-1")
	assert.ErrorIs(t, err, service.ErrLockHeld)

	other, err := locker.Acquire(ctx, "checkout:user-2")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := locker.Acquire(ctx, "checkout:user-1")
	require.NoError(t, err)
	again()
}

func TestMemoryLocker_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	locker := newMemoryLocker(time.Second, func() time.Time { return now })
	ctx := context.Background()

	staleRelease, err := locker.Acquire(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Second)

	freshRelease, err := locker.Acquire(ctx, "k")
	require.NoError(t, err)

	// The stale holder must not unlock the new holder.
	staleRelease()
	_, err = locker.Acquire(ctx, "k")
	assert.ErrorIs(t, err, service.ErrLockHeld)

	freshRelease()
	_, err = locker.Acquire(ctx, "k")
	assert.NoError(t, err)
}

func TestMemoryLocker_ReleaseForgetsKey(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	locker := newMemoryLocker(time.Second, func() time.Time { return now })
	ctx := context.Background()

	for i := range 50 {
		release, err := locker.Acquire(ctx, fmt.Sprintf("checkout:user-%d", i))
		require.NoError(t, err)
		release()
	}
	assert.Empty(t, locker.held)

	// A holder from before the key was forgotten must not free its successor.
	staleRelease, err := locker.Acquire(ctx, "k")
	require.NoError(t, err)
	now = now.Add(2 * time.Second)

	middleRelease, err := locker.Acquire(ctx, "k")
	require.NoError(t, err)
	middleRelease()

	current, err := locker.Acquire(ctx, "k")
	require.NoError(t, err)

	staleRelease()
	_, err = locker.Acquire(ctx, "k")
	assert.ErrorIs(t, err, service.ErrLockHeld)

	current()
	assert.Empty(t, locker.held)
}
