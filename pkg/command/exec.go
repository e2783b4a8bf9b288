package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/logging"
)

// DefaultTimeout bounds a single command when the runner has none set.
const DefaultTimeout = 15 * time.Second

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Timeout is applied per command on top of the caller's context.
	Timeout time.Duration

	// PrivilegeCommand prefixes privileged commands, e.g. "pkexec" or
	// "sudo -n". Empty runs them unprefixed.
	PrivilegeCommand string

	// Env entries are appended to the inherited environment.
	Env []string

	logger *zap.Logger
}

// NewExecRunner creates an ExecRunner.
func NewExecRunner(timeout time.Duration, privilegeCommand string, logger *zap.Logger) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ExecRunner{
		Timeout:          timeout,
		PrivilegeCommand: privilegeCommand,
		logger:           logging.OrNop(logger),
	}
}

// Run executes cmd and applies the success policy described by Check.
func (r *ExecRunner) Run(ctx context.Context, cmd Cmd) (Result, error) {
	argv := r.argv(cmd)

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// Tools such as nmcli and bluetoothctl localize their output.
	c.Env = append(c.Environ(), "LC_ALL=C")
	c.Env = append(c.Env, r.Env...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}

	start := time.Now()
	err := c.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	var waitErr error
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, &ExitError{Cmd: cmd.String(), ExitCode: -1, Err: ctxErr}
			}
			r.logger.Warn("command failed to start",
				zap.String("cmd", cmd.String()),
				zap.Error(err),
			)
			return res, &SpawnError{Cmd: cmd.String(), Program: argv[0], Err: err}
		}
		res.ExitCode = exitErr.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			waitErr = ctxErr
		}
	}

	err = Check(cmd, res, waitErr)

	fields := []zap.Field{
		zap.String("cmd", cmd.String()),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", res.Duration),
	}
	if err != nil {
		r.logger.Warn("command failed", append(fields, zap.Error(err))...)
	} else {
		r.logger.Debug("command finished", fields...)
	}
	return res, err
}

func (r *ExecRunner) argv(cmd Cmd) []string {
	argv := cmd.Argv()
	if cmd.Privileged && r.PrivilegeCommand != "" {
		argv = append(strings.Fields(r.PrivilegeCommand), argv...)
	}
	return argv
}
