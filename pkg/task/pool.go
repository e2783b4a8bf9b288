// Package task runs blocking work on a bounded worker pool and delivers
// results on the UI thread.
//
// Submit is the only way UI code starts a command:
//
//	task.Submit(pool, func(ctx context.Context) ([]wifi.Network, error) {
//	    return client.List(ctx)
//	}, func(networks []wifi.Network, err error) {
//	    // runs on the UI thread
//	})
//
// The completion callback never runs off the UI thread, and never runs at
// all once the task is cancelled or the pool is closed.
package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/ravenlinux/raven-settings/pkg/logging"
	"github.com/ravenlinux/raven-settings/pkg/mainloop"
)

// ErrClosed is delivered to tasks submitted after Close.
var ErrClosed = errors.New("task: pool closed")

// DefaultWorkers is used when NewPool is given a non-positive size.
const DefaultWorkers = 4

// Pool bounds the number of concurrently running tasks.
type Pool struct {
	loop   mainloop.Loop
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *zap.Logger

	running atomic.Int64
	closed  atomic.Bool
}

// NewPool creates a pool running at most workers tasks at once and
// posting completions to loop.
func NewPool(loop mainloop.Loop, workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		loop:   loop,
		sem:    semaphore.NewWeighted(int64(workers)),
		ctx:    ctx,
		cancel: cancel,
		logger: logging.OrNop(logger),
	}
}

// Loop returns the loop completions are delivered on.
func (p *Pool) Loop() mainloop.Loop {
	return p.loop
}

// Running returns the number of submitted tasks that have not finished.
func (p *Pool) Running() int {
	return int(p.running.Load())
}

// Close cancels every task and waits for the workers to exit.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}
	p.cancel()
	p.wg.Wait()
}

// Task is a handle on submitted work.
type Task struct {
	cancel    context.CancelFunc
	done      chan struct{}
	cancelled atomic.Bool
}

// Cancel stops the task. Its context is cancelled and its completion
// callback will not run.
func (t *Task) Cancel() {
	t.cancelled.Store(true)
	t.cancel()
}

// Cancelled reports whether Cancel was called.
func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}

// Done is closed once the work function has returned and its completion,
// if any, has been posted.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Submit runs work on the pool and posts done(result, err) to the pool's
// loop. done may be nil.
func Submit[T any](p *Pool, work func(ctx context.Context) (T, error), done func(T, error)) *Task {
	ctx, cancel := context.WithCancel(p.ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}

	if p.closed.Load() {
		cancel()
		close(t.done)
		if done != nil {
			p.loop.Post(func() {
				var zero T
				done(zero, ErrClosed)
			})
		}
		return t
	}

	p.wg.Add(1)
	p.running.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(t.done)
		defer p.running.Add(-1)
		defer cancel()

		if err := p.sem.Acquire(ctx, 1); err != nil {
			return
		}
		v, err := run(ctx, work)
		p.sem.Release(1)

		if err != nil && ctx.Err() == nil {
			p.logger.Debug("task failed", zap.Error(err))
		}
		if done == nil || t.cancelled.Load() {
			return
		}
		p.loop.Post(func() {
			if t.cancelled.Load() || p.closed.Load() {
				return
			}
			done(v, err)
		})
	}()
	return t
}

// Do is Submit for work without a result value.
func Do(p *Pool, work func(ctx context.Context) error, done func(error)) *Task {
	var cb func(struct{}, error)
	if done != nil {
		cb = func(_ struct{}, err error) { done(err) }
	}
	return Submit(p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	}, cb)
}

func run[T any](ctx context.Context, work func(ctx context.Context) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return work(ctx)
}
