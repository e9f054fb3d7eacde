package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewExecutor_Default(t *testing.T) {
	assert.Equal(t, DefaultConcurrency, NewExecutor(0).MaxConcurrency())
	assert.Equal(t, DefaultConcurrency, NewExecutor(-3).MaxConcurrency())
	assert.Equal(t, 2, NewExecutor(2).MaxConcurrency())
}

func TestRun_AllTasks(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[int]bool{}
	)

	NewExecutor(3).Run(context.Background(), 10,
		func(_ context.Context, i int) {
			mu.Lock()
			defer mu.Unlock()
			seen[i] = true
		},
		func(i int, err error) {
			t.Errorf("task %d skipped: %v", i, err)
		},
	)

	assert.Len(t, seen, 10)
}

func TestRun_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32

	NewExecutor(2).Run(context.Background(), 8,
		func(_ context.Context, _ int) {
			cur := inFlight.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
		},
		func(int, error) {},
	)

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.Equal(t, int32(0), inFlight.Load())
}

func TestRun_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran, skipped atomic.Int32
	NewExecutor(2).Run(ctx, 4,
		func(context.Context, int) { ran.Add(1) },
		func(_ int, err error) {
			assert.ErrorIs(t, err, context.Canceled)
			skipped.Add(1)
		},
	)

	assert.Equal(t, int32(0), ran.Load())
	assert.Equal(t, int32(4), skipped.Load())
}

func TestRun_CancelledMidway(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})

	var ran, skipped atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		NewExecutor(1).Run(ctx, 5,
			func(context.Context, int) {
				ran.Add(1)
				<-release
			},
			func(int, error) { skipped.Add(1) },
		)
	}()

	// first task holds the only slot; cancel while the rest wait for it
	assert.Eventually(t, func() bool { return ran.Load() == 1 }, time.Second, time.Millisecond)
	cancel()
	assert.Eventually(t, func() bool { return skipped.Load() == 4 }, time.Second, time.Millisecond)
	close(release)
	<-done

	assert.Equal(t, int32(1), ran.Load())
	assert.Equal(t, int32(4), skipped.Load())
}
