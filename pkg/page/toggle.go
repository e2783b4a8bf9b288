package page

import (
	"context"

	"github.com/ravenlinux/raven-settings/pkg/task"
)

// Toggle backs a switch whose change runs a command that may fail.
//
// Request is called when the user flips the control. The command runs on
// the pool; on failure the control is set back to its prior position and
// the logical state is unchanged. While a command is in flight further
// requests are refused.
type Toggle struct {
	pool     *task.Pool
	set      func(ctx context.Context, on bool) error
	display  func(on bool)
	onError  func(err error)
	onChange func(on bool)

	state   bool
	pending bool
	target  bool
}

// NewToggle creates a Toggle. set performs the change; display moves the
// control without triggering another Request.
func NewToggle(pool *task.Pool, set func(ctx context.Context, on bool) error, display func(on bool)) *Toggle {
	return &Toggle{pool: pool, set: set, display: display}
}

// OnError registers a callback for failed changes.
func (t *Toggle) OnError(fn func(err error)) *Toggle {
	t.onError = fn
	return t
}

// OnChange registers a callback for confirmed changes.
func (t *Toggle) OnChange(fn func(on bool)) *Toggle {
	t.onChange = fn
	return t
}

// Init sets the logical state without running a command and updates the
// control.
func (t *Toggle) Init(on bool) {
	t.state = on
	t.display(on)
}

// Load reads the initial state on the pool and applies it with Init.
// A failed query leaves the control off and reports the error.
func (t *Toggle) Load(query func(ctx context.Context) (bool, error)) *task.Task {
	return task.Submit(t.pool, query, func(on bool, err error) {
		if err != nil {
			if t.onError != nil {
				t.onError(err)
			}
			return
		}
		if !t.pending {
			t.Init(on)
		}
	})
}

// State returns the last confirmed state.
func (t *Toggle) State() bool {
	return t.state
}

// Pending reports whether a change is in flight.
func (t *Toggle) Pending() bool {
	return t.pending
}

// Request asks for the switch to become on. It returns false if the
// request was refused or is a no-op.
func (t *Toggle) Request(on bool) bool {
	if t.pending {
		if on != t.target {
			t.display(t.target)
		}
		return false
	}
	if on == t.state {
		return false
	}

	prior := t.state
	t.pending = true
	t.target = on
	task.Do(t.pool, func(ctx context.Context) error {
		return t.set(ctx, on)
	}, func(err error) {
		t.pending = false
		if err != nil {
			t.display(prior)
			if t.onError != nil {
				t.onError(err)
			}
			return
		}
		t.state = on
		if t.onChange != nil {
			t.onChange(on)
		}
	})
	return true
}
