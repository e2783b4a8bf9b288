package mainloop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Queue is a Loop whose UI thread is whichever goroutine calls Run or
// RunPending.
type Queue struct {
	mu     sync.Mutex
	items  []func()
	notify chan struct{}
	closed bool
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Post implements Loop. Posts after Close are dropped.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, fn)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Every implements Loop with a ticker goroutine that posts fn.
func (q *Queue) Every(interval time.Duration, fn func() bool) Timer {
	t := &queueTimer{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				q.Post(func() {
					if t.stopped.Load() {
						return
					}
					if !fn() {
						t.Stop()
					}
				})
			}
		}
	}()
	return t
}

// RunPending runs every queued callback, including ones queued while
// running, and returns how many ran.
func (q *Queue) RunPending() int {
	n := 0
	for {
		fn := q.next()
		if fn == nil {
			return n
		}
		fn()
		n++
	}
}

// Run processes callbacks until ctx is done or the queue is closed.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.RunPending()

		q.mu.Lock()
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.notify:
		}
	}
}

// Close stops accepting posts and wakes Run so it can return. Callbacks
// already queued are discarded.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.items = nil
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Len returns the number of queued callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) next() func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	fn := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return fn
}

type queueTimer struct {
	once    sync.Once
	stopped atomic.Bool
	stop    chan struct{}
}

func (t *queueTimer) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		close(t.stop)
	})
}
