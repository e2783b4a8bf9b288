// Package autostart manages the shell script the compositor runs at login.
//
// The script holds one "command &" line per entry under a fixed header.
// The compositor config gets a marker block that executes the script:
//
//	# Autostart script managed by autostart manager
//	exec = ~/.config/hypr/autostart.sh
package autostart

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/logging"
)

const (
	// ScriptHeader starts every new autostart script.
	ScriptHeader = "#!/bin/bash\n\n# Autostart entries will be added here\n"

	// Marker identifies the block added to the compositor config.
	Marker = "# Autostart script managed by autostart manager"
)

var (
	// ErrEmptyCommand is returned when adding a blank command.
	ErrEmptyCommand = errors.New("autostart: empty command")

	// ErrMultiline is returned for commands spanning several lines.
	ErrMultiline = errors.New("autostart: command must be a single line")

	// ErrComment is returned for commands the script would read as a
	// comment.
	ErrComment = errors.New("autostart: command must not start with #")

	// ErrExists is returned when adding a command that is already an entry.
	ErrExists = errors.New("autostart: command is already an entry")
)

// Entry is one autostart command.
type Entry struct {
	Command string
	Name    string
}

// ParseEntries returns the commands in script, skipping blank lines and
// comments and stripping the trailing "&".
func ParseEntries(script string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(script, "\n") {
		cmd, ok := entryCommand(line)
		if !ok {
			continue
		}
		entries = append(entries, Entry{Command: cmd, Name: DisplayName(cmd)})
	}
	return entries
}

func entryCommand(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", false
	}
	cmd := strings.TrimSpace(strings.TrimSuffix(line, "&"))
	return cmd, cmd != ""
}

// DisplayName derives a short name from a command: the base name of its
// program, honoring single and double quotes.
func DisplayName(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	var prog string
	if cmd != "" && (cmd[0] == '\'' || cmd[0] == '"') {
		if end := strings.IndexByte(cmd[1:], cmd[0]); end >= 0 {
			prog = cmd[1 : end+1]
		}
	}
	if prog == "" {
		if fields := strings.Fields(cmd); len(fields) > 0 {
			prog = fields[0]
		}
	}
	if prog == "" {
		return ""
	}
	return filepath.Base(prog)
}

// QuotePath returns path quoted for the script when it contains spaces or
// shell metacharacters.
func QuotePath(path string) string {
	if !strings.ContainsAny(path, " \t'\"$`\\&;|<>()*?") {
		return path
	}
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}

// Manager edits the autostart script and the compositor config.
type Manager struct {
	script           string
	compositorConfig string
	logger           *zap.Logger
}

// NewManager creates a Manager for the given script and compositor config
// paths.
func NewManager(script, compositorConfig string, logger *zap.Logger) *Manager {
	return &Manager{
		script:           script,
		compositorConfig: compositorConfig,
		logger:           logging.OrNop(logger),
	}
}

// ScriptPath returns the autostart script location.
func (m *Manager) ScriptPath() string {
	return m.script
}

// Ensure creates the script with its header if missing and adds the
// marker block to the compositor config if absent.
func (m *Manager) Ensure() error {
	if err := m.ensureScript(); err != nil {
		return err
	}
	return m.ensureHook()
}

func (m *Manager) ensureScript() error {
	if _, err := os.Stat(m.script); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", m.script, err)
	}
	if err := os.MkdirAll(filepath.Dir(m.script), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(m.script), err)
	}
	if err := os.WriteFile(m.script, []byte(ScriptHeader), 0o755); err != nil {
		return fmt.Errorf("failed to create autostart script: %w", err)
	}
	// WriteFile's mode is filtered by the umask.
	if err := os.Chmod(m.script, 0o755); err != nil {
		return fmt.Errorf("failed to make autostart script executable: %w", err)
	}
	m.logger.Info("created autostart script", zap.String("path", m.script))
	return nil
}

// HookBlock returns the lines appended to the compositor config.
func (m *Manager) HookBlock() string {
	return fmt.Sprintf("\n%s\nexec = %s\n", Marker, tildePath(m.script))
}

func tildePath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if rel, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~/" + rel
	}
	return path
}

func (m *Manager) ensureHook() error {
	data, err := os.ReadFile(m.compositorConfig)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", m.compositorConfig, err)
	}
	if bytes.Contains(data, []byte(Marker)) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.compositorConfig), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(m.compositorConfig), err)
	}

	f, err := os.OpenFile(m.compositorConfig, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", m.compositorConfig, err)
	}
	defer f.Close()
	if _, err := f.WriteString(m.HookBlock()); err != nil {
		return fmt.Errorf("failed to write autostart hook: %w", err)
	}
	m.logger.Info("added autostart hook", zap.String("path", m.compositorConfig))
	return nil
}

// Entries lists the commands in the script. A missing script has no
// entries.
func (m *Manager) Entries() ([]Entry, error) {
	data, err := os.ReadFile(m.script)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read autostart script: %w", err)
	}
	return ParseEntries(string(data)), nil
}

// Contains reports whether cmd is an entry.
func (m *Manager) Contains(cmd string) (bool, error) {
	entries, err := m.Entries()
	if err != nil {
		return false, err
	}
	cmd = strings.TrimSpace(cmd)
	for _, e := range entries {
		if e.Command == cmd {
			return true, nil
		}
	}
	return false, nil
}

func validate(cmd string) (string, error) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return "", ErrEmptyCommand
	}
	if strings.ContainsAny(cmd, "\r\n") {
		return "", ErrMultiline
	}
	if strings.HasPrefix(cmd, "#") {
		return "", ErrComment
	}
	return cmd, nil
}

// Add appends cmd as a background job, creating the script and the
// compositor hook on first use. A command that is already an entry is
// refused with ErrExists.
func (m *Manager) Add(cmd string) error {
	cmd, err := validate(cmd)
	if err != nil {
		return err
	}
	if err := m.Ensure(); err != nil {
		return err
	}
	present, err := m.Contains(cmd)
	if err != nil {
		return err
	}
	if present {
		return fmt.Errorf("%w: %s", ErrExists, cmd)
	}

	data, err := os.ReadFile(m.script)
	if err != nil {
		return fmt.Errorf("failed to read autostart script: %w", err)
	}
	line := cmd + " &\n"
	if len(data) > 0 && data[len(data)-1] != '\n' {
		line = "\n" + line
	}

	f, err := os.OpenFile(m.script, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open autostart script: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append autostart entry: %w", err)
	}
	m.logger.Info("added autostart entry", zap.String("command", cmd))
	return nil
}

// Remove deletes every entry line whose command is exactly cmd and
// reports whether any was found. Other lines are kept byte for byte.
func (m *Manager) Remove(cmd string) (bool, error) {
	cmd, err := validate(cmd)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(m.script)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read autostart script: %w", err)
	}

	var kept strings.Builder
	removed := false
	for _, line := range strings.SplitAfter(string(data), "\n") {
		if got, ok := entryCommand(line); ok && got == cmd {
			removed = true
			continue
		}
		kept.WriteString(line)
	}
	if !removed {
		return false, nil
	}

	if err := writeAtomic(m.script, []byte(kept.String()), 0o755); err != nil {
		return false, err
	}
	m.logger.Info("removed autostart entry", zap.String("command", cmd))
	return true, nil
}

// SetEnabled adds or removes cmd.
func (m *Manager) SetEnabled(cmd string, enabled bool) error {
	if enabled {
		if err := m.Add(cmd); err != nil && !errors.Is(err, ErrExists) {
			return err
		}
		return nil
	}
	_, err := m.Remove(cmd)
	return err
}

func writeAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
