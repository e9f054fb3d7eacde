// Package executor runs per-item work with bounded concurrency.
//
// Every task reaches exactly one of its run or skip callbacks, so callers can
// rely on every item becoming terminal even when the context is cancelled
// part-way through.
package executor

import (
	"context"
	"sync"
)

// DefaultConcurrency is used when a non-positive limit is given.
const DefaultConcurrency = 5

// Executor bounds the number of tasks in flight.
type Executor struct {
	maxConcurrency int
	semaphore      chan struct{}
}

// NewExecutor creates a new executor with the specified concurrency limit.
func NewExecutor(maxConcurrency int) *Executor {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultConcurrency
	}

	return &Executor{
		maxConcurrency: maxConcurrency,
		semaphore:      make(chan struct{}, maxConcurrency),
	}
}

// MaxConcurrency returns the concurrency limit.
func (e *Executor) MaxConcurrency() int {
	return e.maxConcurrency
}

// Run calls run(ctx, i) for each i in [0, n) with at most MaxConcurrency
// calls in flight. Once ctx is done no further calls start; skip(i, ctx.Err())
// is called instead for every index that never ran. Run returns after every
// started call has returned.
func (e *Executor) Run(
	ctx context.Context,
	n int,
	run func(ctx context.Context, i int),
	skip func(i int, err error),
) {
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		// A done context must win over a free slot.
		if err := ctx.Err(); err != nil {
			skipFrom(i, n, err, skip)
			break
		}

		acquired := false
		select {
		case e.semaphore <- struct{}{}:
			acquired = true
		case <-ctx.Done():
		}
		// select picks at random when a slot frees as ctx ends.
		if err := ctx.Err(); err != nil {
			if acquired {
				<-e.semaphore
			}
			skipFrom(i, n, err, skip)
			break
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-e.semaphore }()
			run(ctx, i)
		}(i)
	}

	wg.Wait()
}

func skipFrom(from, n int, err error, skip func(int, error)) {
	for i := from; i < n; i++ {
		skip(i, err)
	}
}
