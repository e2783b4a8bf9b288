package command

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdString(t *testing.T) {
	cmd := New("nmcli", "radio", "wifi", "on")
	assert.Equal(t, "nmcli radio wifi on", cmd.String())
	assert.Equal(t, []string{"nmcli", "radio", "wifi", "on"}, cmd.Argv())
}

func TestCmdStringMasksSecrets(t *testing.T) {
	cmd := New("nmcli", "device", "wifi", "connect", "Home", "password", "hunter2").WithSecret("hunter2")
	assert.Equal(t, "nmcli device wifi connect Home password ******", cmd.String())
	assert.Equal(t, "hunter2", cmd.Argv()[6])
}

func TestCmdBuildersCopy(t *testing.T) {
	base := New("bluetoothctl", "connect", "AA:BB:CC:DD:EE:FF")
	derived := base.WithExpect("Connection successful").Tolerant().AsRoot()

	assert.Empty(t, base.Expect)
	assert.False(t, base.TolerateExit)
	assert.False(t, base.Privileged)
	assert.Equal(t, "Connection successful", derived.Expect)
	assert.True(t, derived.TolerateExit)
	assert.True(t, derived.Privileged)
}

func TestCheck(t *testing.T) {
	plain := New("pactl", "set-sink-volume", "@DEFAULT_SINK@", "50%")
	phrase := New("bluetoothctl", "pair", "AA").WithExpect("Pairing successful")
	tolerant := phrase.Tolerant()

	tests := []struct {
		name    string
		cmd     Cmd
		res     Result
		wantErr any
	}{
		{"exit zero", plain, Result{}, nil},
		{"exit non-zero", plain, Result{ExitCode: 1, Stderr: "No such entity"}, &ExitError{}},
		{"phrase present", phrase, Result{Stdout: "Attempting to pair\nPairing successful\n"}, nil},
		{"phrase missing with exit zero", phrase, Result{Stdout: "Failed to pair: org.bluez.Error"}, &PhraseError{}},
		{"phrase present but exit non-zero", phrase, Result{ExitCode: 1, Stdout: "Pairing successful"}, &ExitError{}},
		{"tolerant with phrase", tolerant, Result{ExitCode: 1, Stdout: "Pairing successful"}, nil},
		{"tolerant without phrase", tolerant, Result{ExitCode: 1, Stdout: "Failed"}, &ExitError{}},
		{"phrase in stderr", phrase, Result{Stderr: "Pairing successful"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.cmd, tt.res, nil)
			switch want := tt.wantErr.(type) {
			case nil:
				assert.NoError(t, err)
			case *ExitError:
				assert.ErrorAs(t, err, &want)
			case *PhraseError:
				assert.ErrorAs(t, err, &want)
			}
		})
	}
}

func TestCheckKilledIsNeverTolerated(t *testing.T) {
	cmd := New("bluetoothctl", "connect", "AA").WithExpect("Connection successful").Tolerant()
	err := Check(cmd, Result{ExitCode: -1, Stdout: "Connection successful"}, context.DeadlineExceeded)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResultOutput(t *testing.T) {
	assert.Equal(t, "out", Result{Stdout: "out"}.Output())
	assert.Equal(t, "err", Result{Stderr: "err"}.Output())
	assert.Equal(t, "out\nerr", Result{Stdout: "out", Stderr: "err"}.Output())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "nmcli is not available",
		Message(&SpawnError{Cmd: "nmcli radio wifi", Program: "nmcli", Err: exec.ErrNotFound}))
	assert.Equal(t, "Error: No network with SSID 'x' found.",
		Message(&ExitError{Cmd: "nmcli", ExitCode: 10, Stderr: "Error: No network with SSID 'x' found.\nmore"}))
	assert.Equal(t, "plain", Message(errors.New("plain\nsecond")))
}

func TestIsNotInstalled(t *testing.T) {
	assert.True(t, IsNotInstalled(&SpawnError{Cmd: "x", Program: "x", Err: exec.ErrNotFound}))
	assert.False(t, IsNotInstalled(&ExitError{Cmd: "x", ExitCode: 1}))
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	r := NewExecRunner(5*time.Second, "", nil)
	ctx := context.Background()

	t.Run("captures stdout", func(t *testing.T) {
		res, err := r.Run(ctx, New("sh", "-c", "echo hello"))
		require.NoError(t, err)
		assert.Equal(t, "hello\n", res.Stdout)
		assert.Equal(t, 0, res.ExitCode)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		res, err := r.Run(ctx, New("sh", "-c", "echo oops >&2; exit 3"))
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 3, exitErr.ExitCode)
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, "oops\n", exitErr.Stderr)
	})

	t.Run("stdin", func(t *testing.T) {
		res, err := r.Run(ctx, New("sh", "-c", "cat").WithStdin("piped"))
		require.NoError(t, err)
		assert.Equal(t, "piped", res.Stdout)
	})

	t.Run("missing program", func(t *testing.T) {
		_, err := r.Run(ctx, New("raven-settings-no-such-tool"))
		assert.True(t, IsNotInstalled(err))
	})

	t.Run("privilege prefix", func(t *testing.T) {
		pr := NewExecRunner(5*time.Second, "env", nil)
		res, err := pr.Run(ctx, New("sh", "-c", "echo root").AsRoot())
		require.NoError(t, err)
		assert.Equal(t, "root\n", res.Stdout)
	})
}

func TestExecRunnerTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	r := NewExecRunner(50*time.Millisecond, "", nil)

	_, err := r.Run(context.Background(), New("sleep", "5"))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
