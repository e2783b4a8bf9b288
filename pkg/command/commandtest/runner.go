// Package commandtest provides a scripted command.Runner for tests.
package commandtest

import (
	"context"
	"os/exec"
	"sync"

	"github.com/ravenlinux/raven-settings/pkg/command"
)

type response struct {
	res command.Result
	err error
}

// Runner answers commands from a script keyed by the rendered command
// line. Responses for the same command are consumed in order and the last
// one repeats. Unscripted commands fail as if the tool were not installed.
type Runner struct {
	mu        sync.Mutex
	responses map[string][]response
	holds     map[string]chan struct{}
	calls     []command.Cmd
}

// New returns an empty Runner.
func New() *Runner {
	return &Runner{
		responses: make(map[string][]response),
		holds:     make(map[string]chan struct{}),
	}
}

// On scripts a command that exits 0 printing stdout.
func (r *Runner) On(cmdline, stdout string) *Runner {
	return r.OnResult(cmdline, command.Result{Stdout: stdout}, nil)
}

// Fail scripts a command that exits with code and prints stderr.
func (r *Runner) Fail(cmdline string, code int, stderr string) *Runner {
	return r.OnResult(cmdline, command.Result{ExitCode: code, Stderr: stderr}, nil)
}

// OnResult scripts an exact result. When err is nil the command's success
// policy is applied to res at run time.
func (r *Runner) OnResult(cmdline string, res command.Result, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[cmdline] = append(r.responses[cmdline], response{res: res, err: err})
	return r
}

// Hold makes every run of cmdline block until the returned release func is
// called or the run's context ends.
func (r *Runner) Hold(cmdline string) (release func()) {
	ch := make(chan struct{})
	r.mu.Lock()
	r.holds[cmdline] = ch
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.holds, cmdline)
			r.mu.Unlock()
			close(ch)
		})
	}
}

// Run implements command.Runner.
func (r *Runner) Run(ctx context.Context, cmd command.Cmd) (command.Result, error) {
	key := cmd.String()

	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	hold := r.holds[key]
	r.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return command.Result{ExitCode: -1}, &command.ExitError{Cmd: key, ExitCode: -1, Err: ctx.Err()}
		}
	}

	r.mu.Lock()
	queue := r.responses[key]
	if len(queue) == 0 {
		r.mu.Unlock()
		return command.Result{}, &command.SpawnError{Cmd: key, Program: cmd.Name, Err: exec.ErrNotFound}
	}
	resp := queue[0]
	if len(queue) > 1 {
		r.responses[key] = queue[1:]
	}
	r.mu.Unlock()

	if resp.err != nil {
		return resp.res, resp.err
	}
	return resp.res, command.Check(cmd, resp.res, nil)
}

// Calls returns the rendered command lines run so far, in order.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.String()
	}
	return out
}

// Commands returns the commands run so far, in order.
func (r *Runner) Commands() []command.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]command.Cmd(nil), r.calls...)
}

// Count returns how many times cmdline was run.
func (r *Runner) Count(cmdline string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == cmdline {
			n++
		}
	}
	return n
}
