package apredis

import (
	"context"
	"testing"
	"time"

	"github.com/rmorlok/connlifecycle/internal/aplog"
	"github.com/stretchr/testify/require"
)

func TestMutex(t *testing.T) {
	r, server := NewTestMiniredis(t)
	ctx := context.Background()

	m1 := NewMutex(
		r,
		"catalog-reconcile-lock",
		MutexOptionLockFor(250*time.Millisecond),
		MutexOptionRetryFor(100*time.Millisecond),
		MutexOptionRetryExponentialBackoff(30*time.Millisecond, 400*time.Millisecond),
		MutexOptionDetailedLockMetadata(),
	)

	m2 := NewMutex(
		r,
		"catalog-reconcile-lock",
		MutexOptionLockFor(250*time.Millisecond),
		MutexOptionNoRetry(),
	)

	require.NoError(t, m1.Lock(ctx))
	require.Error(t, m1.Lock(ctx))
	require.True(t, server.Exists("catalog-reconcile-lock"))

	err := m2.Lock(ctx)
	require.True(t, MutexIsErrNotObtained(err))

	require.NoError(t, m1.Extend(ctx, time.Second))
	require.NoError(t, m1.Unlock(ctx))
	require.Error(t, m1.Unlock(ctx))

	require.NoError(t, m2.Lock(ctx))
	require.NoError(t, m2.Unlock(ctx))
}

func TestMutexExpires(t *testing.T) {
	r, server := NewTestMiniredis(t)
	ctx := context.Background()

	m1 := NewMutex(r, "expiring", MutexOptionLockFor(time.Second))
	m2 := NewMutex(r, "expiring", MutexOptionNoRetry())

	require.NoError(t, m1.Lock(ctx))
	require.True(t, MutexIsErrNotObtained(m2.Lock(ctx)))

	server.FastForward(2 * time.Second)
	require.NoError(t, m2.Lock(ctx))
}

func TestPing(t *testing.T) {
	r, _ := NewTestMiniredis(t)
	require.True(t, Ping(context.Background(), r, aplog.NewNoopLogger()))
}
