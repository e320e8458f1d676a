package gate

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/albumvault/fetchd/internal/config"
	"github.com/albumvault/fetchd/internal/domain"
	"github.com/albumvault/fetchd/internal/logger"
)

// MaxPoolSize is the hard ceiling on concurrent download workers.
// Configured pool sizes above this value are clamped, never honored.
const MaxPoolSize = 20

// Gate serializes downloads per item and bounds total concurrency
//
//go:generate mockgen -source=gate.go -destination=../mocks/gate.go -package=mocks
type Gate interface {
	// TryAcquire claims the in-flight slot for an item. It returns false
	// without blocking when the item is already being downloaded.
	TryAcquire(itemID string) bool

	// Release frees the in-flight slot for an item. Releasing an item
	// that was never acquired is a no-op.
	Release(itemID string)

	// Active returns the number of items currently holding a slot
	Active() int

	// Run executes fn on the bounded worker pool and blocks until it
	// completes or the pool rejects the submission.
	Run(ctx context.Context, fn func(ctx context.Context) (*domain.FetchResult, error)) (*domain.FetchResult, error)

	// Stop drains the pool and rejects further submissions
	Stop()
}

// runResult carries a worker outcome through the result pool
type runResult struct {
	value *domain.FetchResult
	err   error
}

type gate struct {
	pool     pond.ResultPool[*runResult]
	mu       sync.Mutex
	inFlight map[string]struct{}
	closed   atomic.Bool
}

// New creates a gate backed by a bounded worker pool. The pool size is
// clamped to MaxPoolSize regardless of configuration.
func New(cfg config.WorkerConfig) Gate {
	size := cfg.PoolSize
	if size <= 0 {
		size = 1
	}
	if size > MaxPoolSize {
		logger.Warn("Clamping worker pool size",
			zap.Int("configured", size),
			zap.Int("max", MaxPoolSize),
		)
		size = MaxPoolSize
	}

	pool := pond.NewResultPool[*runResult](
		size,
		pond.WithQueueSize(cfg.QueueSize),
	)

	return &gate{
		pool:     pool,
		inFlight: make(map[string]struct{}),
	}
}

func (g *gate) TryAcquire(itemID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.inFlight[itemID]; ok {
		return false
	}
	g.inFlight[itemID] = struct{}{}
	return true
}

func (g *gate) Release(itemID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.inFlight, itemID)
}

func (g *gate) Active() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.inFlight)
}

func (g *gate) Run(ctx context.Context, fn func(ctx context.Context) (*domain.FetchResult, error)) (*domain.FetchResult, error) {
	if g.closed.Load() {
		return nil, fmt.Errorf("gate is stopped")
	}

	task := g.pool.Submit(func() *runResult {
		if err := ctx.Err(); err != nil {
			return &runResult{err: err}
		}
		value, err := fn(ctx)
		return &runResult{value: value, err: err}
	})

	result, err := task.Wait()
	if err != nil {
		return nil, err
	}
	if result.err != nil {
		return nil, result.err
	}
	return result.value, nil
}

func (g *gate) Stop() {
	if g.closed.CompareAndSwap(false, true) {
		g.pool.StopAndWait()
	}
}
