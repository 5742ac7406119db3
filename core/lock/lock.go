package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when another run holds the lock.
var ErrLocked = errors.New("another sync run holds the lock")

// ErrLockLost is returned by a Releaser when the lock expired or was taken
// over before the run released it.
var ErrLockLost = errors.New("run lock was lost before release")

// Releaser ends a held lock.
type Releaser func(ctx context.Context) error

// Locker guards a sync pass so only one runs against a store at a time.
type Locker interface {
	// Obtain takes the lock or returns ErrLocked.
	Obtain(ctx context.Context) (Releaser, error)
	// Close frees the underlying connection.
	Close() error
}

// New returns a Redis backed locker, or a no-op locker when cfg has no address.
func New(cfg Config) Locker {
	if !cfg.Enabled() {
		return noop{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &redisLocker{
		rdb:    rdb,
		client: redislock.New(rdb),
		key:    cfg.Key,
		ttl:    ttl,
	}
}

type redisLocker struct {
	rdb    *redis.Client
	client *redislock.Client
	key    string
	ttl    time.Duration
}

func (l *redisLocker) Obtain(ctx context.Context) (Releaser, error) {
	held, err := l.client.Obtain(ctx, l.key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLocked
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", l.key, err)
	}

	return hold(held, l.key, l.ttl, l.ttl/3), nil
}

// lease is the part of *redislock.Lock a held run lock uses.
type lease interface {
	Refresh(ctx context.Context, ttl time.Duration, opt *redislock.Options) error
	Release(ctx context.Context) error
}

// hold refreshes l on every tick of every until the returned Releaser is called.
// Refreshing stops early once Redis reports the lock is gone.
func hold(l lease, key string, ttl, every time.Duration) Releaser {
	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), every)
				err := l.Refresh(ctx, ttl, nil)
				cancel()
				if errors.Is(err, redislock.ErrNotObtained) {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func(ctx context.Context) error {
		once.Do(func() { close(done) })
		<-stopped

		err := l.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("%w: %s", ErrLockLost, key)
		}
		if err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}
}

func (l *redisLocker) Close() error {
	return l.rdb.Close()
}

type noop struct{}

func (noop) Obtain(context.Context) (Releaser, error) {
	return func(context.Context) error { return nil }, nil
}

func (noop) Close() error { return nil }
