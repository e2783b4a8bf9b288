package page

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/logging"
	"github.com/ravenlinux/raven-settings/pkg/mainloop"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

// ListSpec configures a ListController for one record type.
type ListSpec[T any] struct {
	Category Category

	// Interval between background refreshes. Zero disables the timer.
	Interval time.Duration

	// Scan produces a fresh set of records. It runs on a worker.
	Scan func(ctx context.Context) ([]T, error)

	// Replace clears the page's list and re-adds every record.
	Replace func(records []T)

	// OnError is called when a scan fails; the list is left as it was.
	OnError func(err error)

	// OnScan is called when a scan starts.
	OnScan func()
}

// ListController keeps a page's record list fresh.
type ListController[T any] struct {
	spec   ListSpec[T]
	pool   *task.Pool
	loop   mainloop.Loop
	logger *zap.Logger

	inflight *task.Task
	gen      uint64
	timer    mainloop.Timer
	records  []T
	last     time.Time
}

// NewListController creates a stopped controller.
func NewListController[T any](spec ListSpec[T], pool *task.Pool, logger *zap.Logger) *ListController[T] {
	return &ListController[T]{
		spec:   spec,
		pool:   pool,
		loop:   pool.Loop(),
		logger: logging.OrNop(logger).With(zap.String("category", string(spec.Category))),
	}
}

// Start runs an initial refresh and starts the recurring timer. Calling
// Start on a running controller does nothing.
func (c *ListController[T]) Start() {
	if c.timer != nil {
		return
	}
	c.Refresh()
	if c.spec.Interval <= 0 {
		// Mark as started so a second Start does not rescan.
		c.timer = mainloop.TimerFunc(func() {})
		return
	}
	c.timer = c.loop.Every(c.spec.Interval, func() bool {
		c.Refresh()
		return true
	})
}

// Stop cancels the timer and any scan in flight. Results of that scan are
// discarded even if it already finished.
func (c *ListController[T]) Stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.inflight != nil {
		c.inflight.Cancel()
		c.inflight = nil
	}
	c.gen++
}

// Running reports whether the recurring timer is active.
func (c *ListController[T]) Running() bool {
	return c.timer != nil
}

// Scanning reports whether a scan is in flight.
func (c *ListController[T]) Scanning() bool {
	return c.inflight != nil
}

// Refresh starts a scan unless one is already in flight, in which case the
// request is dropped and Refresh returns false.
func (c *ListController[T]) Refresh() bool {
	if c.inflight != nil {
		c.logger.Debug("scan already in flight, dropping refresh")
		return false
	}

	gen := c.gen
	if c.spec.OnScan != nil {
		c.spec.OnScan()
	}
	c.inflight = task.Submit(c.pool, c.spec.Scan, func(records []T, err error) {
		if gen != c.gen {
			return
		}
		c.inflight = nil
		if err != nil {
			c.logger.Warn("scan failed", zap.Error(err))
			if c.spec.OnError != nil {
				c.spec.OnError(err)
			}
			return
		}
		c.records = records
		c.last = time.Now()
		c.spec.Replace(records)
	})
	return true
}

// Records returns the records of the last successful scan.
func (c *ListController[T]) Records() []T {
	return c.records
}

// LastRefresh returns when the last successful scan completed.
func (c *ListController[T]) LastRefresh() time.Time {
	return c.last
}
