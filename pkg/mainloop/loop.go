// Package mainloop abstracts the single UI thread that owns every widget.
//
// Worker goroutines never touch UI state directly. They hand closures to a
// Loop, which runs them one at a time on the UI thread. The GTK frontend
// implements Loop on top of the GLib main context (glib.IdleAdd and
// glib.TimeoutAdd), the terminal frontend on bubbletea's update loop, and
// Queue serves the CLI and tests.
package mainloop

import "time"

// Loop schedules work on the UI thread.
type Loop interface {
	// Post queues fn to run on the UI thread. It is safe to call from any
	// goroutine, including the UI thread itself.
	Post(fn func())

	// Every runs fn on the UI thread each interval until fn returns false
	// or the returned Timer is stopped.
	Every(interval time.Duration, fn func() bool) Timer
}

// Timer is a recurring callback registration.
type Timer interface {
	// Stop cancels future runs. It is idempotent.
	Stop()
}

// TimerFunc adapts a function to the Timer interface.
type TimerFunc func()

// Stop calls f.
func (f TimerFunc) Stop() { f() }
