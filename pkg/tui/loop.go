package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravenlinux/raven-settings/pkg/mainloop"
)

// postMsg carries a closure to the bubbletea update loop.
type postMsg struct {
	fn func()
}

// Sender delivers messages to a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Loop implements mainloop.Loop on top of bubbletea's update loop: posted
// closures arrive as messages, in order, and run inside Model.Update.
// Closures posted before Attach are held until a program is attached.
type Loop struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
}

var _ mainloop.Loop = (*Loop)(nil)

// NewLoop creates a detached loop.
func NewLoop() *Loop {
	l := &Loop{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Attach starts delivering posted closures to s.
func (l *Loop) Attach(s Sender) {
	go l.pump(s)
}

// pump forwards the queue one message at a time. Send blocks until the
// program reads the message, so it never runs with the lock held.
func (l *Loop) pump(s Sender) {
	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.closed {
			l.cond.Wait()
		}
		if l.closed {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		s.Send(postMsg{fn: fn})
	}
}

// Post queues fn for the update loop. Posts after Close are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
}

// Close stops delivery.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()
	l.cond.Broadcast()
}

// Every posts fn each interval until it returns false or the timer is
// stopped.
func (l *Loop) Every(interval time.Duration, fn func() bool) mainloop.Timer {
	var stopped atomic.Bool
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		stopped.Store(true)
		once.Do(func() { close(done) })
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				l.Post(func() {
					if stopped.Load() {
						return
					}
					if !fn() {
						stop()
					}
				})
			}
		}
	}()
	return mainloop.TimerFunc(stop)
}
