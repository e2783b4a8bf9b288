package command

import (
	"errors"
	"fmt"
	"strings"
)

// SpawnError means the process could not be started at all, typically
// because the tool is not installed.
type SpawnError struct {
	Cmd string
	// Program is the executable that failed to start.
	Program string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to start %q: %v", e.Cmd, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// ExitError is returned when a command exits non-zero or is killed.
type ExitError struct {
	Cmd      string
	ExitCode int
	Stdout   string
	Stderr   string
	// Err is set when the process was killed, e.g. by a timeout.
	Err error
}

func (e *ExitError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(e.Stdout)
	}
	if e.Err != nil {
		return fmt.Sprintf("%q failed (exit code %d): %v", e.Cmd, e.ExitCode, e.Err)
	}
	if msg == "" {
		return fmt.Sprintf("%q failed (exit code %d)", e.Cmd, e.ExitCode)
	}
	return fmt.Sprintf("%q failed (exit code %d): %s", e.Cmd, e.ExitCode, firstLine(msg))
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// PhraseError is returned when a command exited 0 but did not print the
// phrase that confirms success.
type PhraseError struct {
	Cmd    string
	Want   string
	Output string
}

func (e *PhraseError) Error() string {
	out := firstLine(strings.TrimSpace(e.Output))
	if out == "" {
		return fmt.Sprintf("%q did not report %q", e.Cmd, e.Want)
	}
	return fmt.Sprintf("%q did not report %q: %s", e.Cmd, e.Want, out)
}

// IsNotInstalled reports whether err means the tool is missing.
func IsNotInstalled(err error) bool {
	var spawn *SpawnError
	return errors.As(err, &spawn)
}

// Message returns a short, single-line description of err suitable for a
// status label.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var spawn *SpawnError
	if errors.As(err, &spawn) {
		return fmt.Sprintf("%s is not available", spawn.Program)
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		if msg := firstLine(strings.TrimSpace(exit.Stderr)); msg != "" {
			return msg
		}
		if msg := firstLine(strings.TrimSpace(exit.Stdout)); msg != "" {
			return msg
		}
	}
	return firstLine(err.Error())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
