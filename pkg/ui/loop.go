package ui

import (
	"sync/atomic"
	"time"

	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/ravenlinux/raven-settings/pkg/mainloop"
)

// Loop runs callbacks on the GLib main context.
type Loop struct{}

var _ mainloop.Loop = Loop{}

// Post queues fn as an idle callback.
func (Loop) Post(fn func()) {
	glib.IdleAdd(fn)
}

// Every schedules fn with glib.TimeoutAdd. A stopped timer removes itself
// the next time it fires.
func (Loop) Every(interval time.Duration, fn func() bool) mainloop.Timer {
	var stopped atomic.Bool
	ms := uint(interval / time.Millisecond)
	if ms == 0 {
		ms = 1
	}
	glib.TimeoutAdd(ms, func() bool {
		if stopped.Load() {
			return false
		}
		if !fn() {
			stopped.Store(true)
			return false
		}
		return true
	})
	return mainloop.TimerFunc(func() { stopped.Store(true) })
}
