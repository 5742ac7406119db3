package lock

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockLease is a testify mock of a held redislock lock.
type mockLease struct {
	mock.Mock
	refreshes atomic.Int32
}

func (m *mockLease) Refresh(ctx context.Context, ttl time.Duration, opt *redislock.Options) error {
	m.refreshes.Add(1)
	return m.Called(ctx, ttl, opt).Error(0)
}

func (m *mockLease) Release(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}


func TestNew_DisabledIsNoop(t *testing.T) {
	l := New(Config{})
	_, ok := l.(noop)
	assert.True(t, ok)

	release, err := l.Obtain(context.Background())
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
	assert.NoError(t, l.Close())
}

func TestNew_Redis(t *testing.T) {
	l := New(Config{RedisAddr: "localhost:6379", Key: "k", TTLSeconds: 0})
	rl, ok := l.(*redisLocker)
	require.True(t, ok)
	assert.Equal(t, "k", rl.key)
	assert.Equal(t, 15*time.Minute, rl.ttl)
	assert.NoError(t, l.Close())
}

func TestRedisLocker_Unreachable(t *testing.T) {
	l := New(Config{RedisAddr: "127.0.0.1:1", Key: "k", TTLSeconds: 5})
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	release, err := l.Obtain(ctx)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrLocked))
	assert.Nil(t, release)
}

func TestHold_RefreshesUntilReleased(t *testing.T) {
	l := new(mockLease)
	l.On("Refresh", mock.Anything, 30*time.Millisecond, mock.Anything).Return(nil)
	l.On("Release", mock.Anything).Return(nil)

	release := hold(l, "k", 30*time.Millisecond, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return l.refreshes.Load() >= 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, release(context.Background()))

	after := l.refreshes.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, l.refreshes.Load(), "no refresh after release")

	assert.NoError(t, release(context.Background()), "second release is harmless")
}

func TestHold_LostLock(t *testing.T) {
	l := new(mockLease)
	l.On("Refresh", mock.Anything, mock.Anything, mock.Anything).Return(redislock.ErrNotObtained)
	l.On("Release", mock.Anything).Return(redislock.ErrLockNotHeld)

	release := hold(l, "mango-sync:run", time.Minute, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return l.refreshes.Load() == 1 }, time.Second, 5*time.Millisecond)

	err := release(context.Background())
	assert.ErrorIs(t, err, ErrLockLost)
	assert.ErrorContains(t, err, "mango-sync:run")
	l.AssertNumberOfCalls(t, "Refresh", 1)
}

func TestHold_ReleaseError(t *testing.T) {
	l := new(mockLease)
	l.On("Release", mock.Anything).Return(errors.New("connection reset"))

	release := hold(l, "k", time.Minute, time.Minute)

	err := release(context.Background())
	assert.ErrorContains(t, err, "failed to release lock k: connection reset")
	assert.False(t, errors.Is(err, ErrLockLost))
	l.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything, mock.Anything)
}
