// Package workerpool fans a fixed set of tasks out over a bounded number
// of goroutines.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// Run executes every task with at most workers running concurrently.
// The first task error cancels the context seen by the remaining tasks
// and is returned once all workers have exited.
func Run(ctx context.Context, workers int, tasks []func(context.Context) error) error {
	if len(tasks) == 0 {
		return ctx.Err()
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		next     atomic.Int64
		once     sync.Once
		firstErr error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				n := next.Add(1) - 1
				if n >= int64(len(tasks)) {
					return
				}
				if ctx.Err() != nil {
					return
				}
				if err := tasks[n](ctx); err != nil {
					once.Do(func() { firstErr = err })
					cancel()
					return
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
