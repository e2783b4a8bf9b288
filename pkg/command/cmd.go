package command

import (
	"context"
	"strings"
	"time"
)

// Cmd describes one external command invocation.
type Cmd struct {
	Name string
	Args []string

	// Stdin is written to the process's standard input when non-empty.
	Stdin string

	// Expect is a phrase that must appear in stdout or stderr for the
	// command to count as successful.
	Expect string

	// TolerateExit accepts a non-zero exit status when Expect is present
	// in the output.
	TolerateExit bool

	// Privileged commands are prefixed with the runner's privilege
	// command (pkexec by default).
	Privileged bool

	// Secrets are argument values masked in String.
	Secrets []string
}

// New returns a Cmd for name with args.
func New(name string, args ...string) Cmd {
	return Cmd{Name: name, Args: args}
}

// WithExpect returns a copy of c that requires phrase in its output.
func (c Cmd) WithExpect(phrase string) Cmd {
	c.Expect = phrase
	return c
}

// WithStdin returns a copy of c that feeds s on standard input.
func (c Cmd) WithStdin(s string) Cmd {
	c.Stdin = s
	return c
}

// Tolerant returns a copy of c that ignores a non-zero exit status when
// the expected phrase is found.
func (c Cmd) Tolerant() Cmd {
	c.TolerateExit = true
	return c
}

// AsRoot returns a copy of c marked as privileged.
func (c Cmd) AsRoot() Cmd {
	c.Privileged = true
	return c
}

// WithSecret returns a copy of c whose String masks value.
func (c Cmd) WithSecret(value string) Cmd {
	if value == "" {
		return c
	}
	c.Secrets = append(append([]string(nil), c.Secrets...), value)
	return c
}

// Argv returns the full argument vector, name first.
func (c Cmd) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line for logs and error messages.
func (c Cmd) String() string {
	argv := c.Argv()
	for i, arg := range argv {
		for _, secret := range c.Secrets {
			if arg == secret {
				argv[i] = "******"
			}
		}
	}
	return strings.Join(argv, " ")
}

// Result is the captured outcome of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Output returns stdout followed by stderr.
func (r Result) Output() string {
	if r.Stderr == "" {
		return r.Stdout
	}
	if r.Stdout == "" {
		return r.Stderr
	}
	return r.Stdout + "\n" + r.Stderr
}

// Runner executes commands and blocks until they finish.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Cmd) (Result, error)

// Run calls f(ctx, cmd).
func (f RunnerFunc) Run(ctx context.Context, cmd Cmd) (Result, error) {
	return f(ctx, cmd)
}

// Check applies the success policy to a finished command. exitErr is the
// error returned by the process wait, if any.
func Check(cmd Cmd, res Result, exitErr error) error {
	found := cmd.Expect == "" || strings.Contains(res.Output(), cmd.Expect)

	if res.ExitCode != 0 || exitErr != nil {
		if cmd.TolerateExit && cmd.Expect != "" && found && exitErr == nil {
			return nil
		}
		return &ExitError{
			Cmd:      cmd.String(),
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
			Err:      exitErr,
		}
	}

	if !found {
		return &PhraseError{
			Cmd:    cmd.String(),
			Want:   cmd.Expect,
			Output: res.Output(),
		}
	}
	return nil
}
