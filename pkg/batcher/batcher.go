// Package batcher buffers items and hands them to a sink in rate-limited
// batches.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Options tunes a Batcher. Size triggers a flush when the buffer fills;
// Interval flushes whatever is buffered; RPS caps sink calls per second.
type Options struct {
	Size     int
	Interval time.Duration
	RPS      int
}

// Batcher collects items and flushes them to the sink either when the
// buffer reaches Size or when Interval elapses.
type Batcher[T any] struct {
	sink     func(context.Context, []T) error
	queue    chan T
	opts     Options
	limiter  ratelimit.Limiter
	logger   *zap.Logger
	done     chan struct{}
	finished sync.WaitGroup
}

// Start constructs a Batcher and begins its flush loop. Stop must be
// called to flush what remains and release the loop.
func Start[T any](ctx context.Context, logger *zap.Logger, sink func(context.Context, []T) error, opts Options) *Batcher[T] {
	b := &Batcher[T]{
		sink:    sink,
		queue:   make(chan T, opts.Size*2),
		opts:    opts,
		limiter: ratelimit.New(opts.RPS),
		logger:  logger,
		done:    make(chan struct{}),
	}
	b.finished.Add(1)
	go b.loop(ctx)
	return b
}

// Add queues an item, blocking while the queue is full. It fails once the
// Batcher is stopped or the context is canceled.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.done:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.queue <- item:
		return nil
	}
}

// Stop drains queued items, flushes them, and waits for the loop to exit.
func (b *Batcher[T]) Stop() {
	close(b.done)
	b.finished.Wait()
}

func (b *Batcher[T]) loop(ctx context.Context) {
	defer b.finished.Done()

	ticker := time.NewTicker(b.opts.Interval)
	defer ticker.Stop()

	buf := make([]T, 0, b.opts.Size)
	flush := func() {
		if len(buf) == 0 {
			return
		}
		b.limiter.Take()
		if err := b.sink(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case <-b.done:
			// Drain items already queued so Stop never drops them.
			for {
				select {
				case item := <-b.queue:
					buf = append(buf, item)
					if len(buf) >= b.opts.Size {
						flush()
					}
				default:
					flush()
					return
				}
			}

		case item := <-b.queue:
			buf = append(buf, item)
			if len(buf) >= b.opts.Size {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}
