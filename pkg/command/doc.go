// Package command runs the external CLI tools that query and change system
// state (pactl, nmcli, bluetoothctl, xrandr, ufw and friends).
//
// Commands are always executed as an argv vector, never through a shell.
// Success is decided by the exit status first. A Cmd may also carry an
// expected output phrase for tools that report failure on stdout while
// exiting 0, and may tolerate a non-zero exit when the phrase is present:
//
//	cmd := command.New("bluetoothctl", "connect", addr).
//	    WithExpect("Connection successful").
//	    Tolerant()
//	res, err := runner.Run(ctx, cmd)
//
// Failures are typed: *SpawnError when the process could not start,
// *ExitError for a non-zero status or timeout, *PhraseError when the
// expected phrase is missing.
//
// Run blocks. UI code goes through package task, which runs commands on a
// bounded worker pool and delivers results on the UI thread.
package command
