package gate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/domain"
)

func newTestGate(poolSize, queueSize int) Gate {
	return New(config.WorkerConfig{PoolSize: poolSize, QueueSize: queueSize})
}

func TestTryAcquireRelease(t *testing.T) {
	g := newTestGate(2, 8)
	defer g.Stop()

	t.Run("second acquire for same item fails", func(t *testing.T) {
		require.True(t, g.TryAcquire("item-1"))
		assert.False(t, g.TryAcquire("item-1"))
		g.Release("item-1")
	})

	t.Run("release makes the item acquirable again", func(t *testing.T) {
		require.True(t, g.TryAcquire("item-2"))
		g.Release("item-2")
		assert.True(t, g.TryAcquire("item-2"))
		g.Release("item-2")
	})

	t.Run("different items do not block each other", func(t *testing.T) {
		require.True(t, g.TryAcquire("item-3"))
		assert.True(t, g.TryAcquire("item-4"))
		g.Release("item-3")
		g.Release("item-4")
	})

	t.Run("release of unknown item is a no-op", func(t *testing.T) {
		g.Release("never-acquired")
		assert.Equal(t, 0, g.Active())
	})
}

func TestTryAcquireConcurrent(t *testing.T) {
	g := newTestGate(4, 16)
	defer g.Stop()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire("contended") {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, 1, g.Active())
	g.Release("contended")
	assert.Equal(t, 0, g.Active())
}

func TestActive(t *testing.T) {
	g := newTestGate(2, 8)
	defer g.Stop()

	assert.Equal(t, 0, g.Active())
	g.TryAcquire("a")
	g.TryAcquire("b")
	assert.Equal(t, 2, g.Active())
	g.Release("a")
	assert.Equal(t, 1, g.Active())
	g.Release("b")
	assert.Equal(t, 0, g.Active())
}

func TestRun(t *testing.T) {
	t.Run("returns the worker result", func(t *testing.T) {
		g := newTestGate(2, 8)
		defer g.Stop()

		result, err := g.Run(context.Background(), func(ctx context.Context) (*domain.FetchResult, error) {
			return &domain.FetchResult{ItemID: "r1", FilePath: "/tmp/r1.cbz"}, nil
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "r1", result.ItemID)
	})

	t.Run("returns the worker error", func(t *testing.T) {
		g := newTestGate(2, 8)
		defer g.Stop()

		_, err := g.Run(context.Background(), func(ctx context.Context) (*domain.FetchResult, error) {
			return nil, domain.NewFetchError(domain.KindNetwork, "mirror-a", "connection reset")
		})
		require.Error(t, err)
		assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
	})

	t.Run("canceled context short-circuits the worker", func(t *testing.T) {
		g := newTestGate(1, 8)
		defer g.Stop()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var ran atomic.Bool
		_, err := g.Run(ctx, func(ctx context.Context) (*domain.FetchResult, error) {
			ran.Store(true)
			return &domain.FetchResult{}, nil
		})
		require.Error(t, err)
		assert.False(t, ran.Load())
	})

	t.Run("bounds concurrency to the pool size", func(t *testing.T) {
		g := newTestGate(2, 16)
		defer g.Stop()

		var current, peak atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = g.Run(context.Background(), func(ctx context.Context) (*domain.FetchResult, error) {
					n := current.Add(1)
					for {
						p := peak.Load()
						if n <= p || peak.CompareAndSwap(p, n) {
							break
						}
					}
					time.Sleep(20 * time.Millisecond)
					current.Add(-1)
					return &domain.FetchResult{}, nil
				})
			}()
		}
		wg.Wait()

		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("rejects submissions after stop", func(t *testing.T) {
		g := newTestGate(1, 8)
		g.Stop()

		_, err := g.Run(context.Background(), func(ctx context.Context) (*domain.FetchResult, error) {
			return &domain.FetchResult{}, nil
		})
		assert.Error(t, err)
	})
}

func TestPoolSizeClamp(t *testing.T) {
	// A pool created with an oversized configuration must still work;
	// the clamp is observable through bounded concurrency.
	g := New(config.WorkerConfig{PoolSize: 100, QueueSize: 200})
	defer g.Stop()

	result, err := g.Run(context.Background(), func(ctx context.Context) (*domain.FetchResult, error) {
		return &domain.FetchResult{ItemID: "clamped"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "clamped", result.ItemID)
}
