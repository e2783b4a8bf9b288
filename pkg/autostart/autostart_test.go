package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*Manager, string, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "hypr")
	script := filepath.Join(dir, "autostart.sh")
	conf := filepath.Join(dir, "hyprland.conf")
	return NewManager(script, conf, nil), script, conf
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEnsureCreatesScriptAndHook(t *testing.T) {
	m, script, conf := newManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(conf), 0o755))
	require.NoError(t, os.WriteFile(conf, []byte("monitor=,preferred,auto,1\n"), 0o644))

	require.NoError(t, m.Ensure())

	assert.Equal(t, ScriptHeader, read(t, script))
	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	got := read(t, conf)
	assert.True(t, strings.HasPrefix(got, "monitor=,preferred,auto,1\n"))
	assert.Contains(t, got, "\n"+Marker+"\nexec = ")
	assert.True(t, strings.HasSuffix(got, "autostart.sh\n"))

	require.NoError(t, m.Ensure())
	assert.Equal(t, got, read(t, conf), "hook must be added once")
	assert.Equal(t, 1, strings.Count(read(t, conf), Marker))
}

func TestEnsureCreatesMissingConfig(t *testing.T) {
	m, _, conf := newManager(t)

	require.NoError(t, m.Ensure())
	assert.Contains(t, read(t, conf), Marker)
}

func TestAddAppendsBackgroundJob(t *testing.T) {
	m, script, _ := newManager(t)

	require.NoError(t, m.Add("  waybar  "))
	require.NoError(t, m.Add("nm-applet --indicator"))

	assert.Equal(t, ScriptHeader+"waybar &\nnm-applet --indicator &\n", read(t, script))

	entries, err := m.Entries()
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Command: "waybar", Name: "waybar"},
		{Command: "nm-applet --indicator", Name: "nm-applet"},
	}, entries)
}

func TestAddThenRemoveRoundTrips(t *testing.T) {
	m, script, _ := newManager(t)
	require.NoError(t, m.Add("waybar"))
	before := read(t, script)

	require.NoError(t, m.Add("/usr/bin/foo --bar"))
	removed, err := m.Remove("/usr/bin/foo --bar")
	require.NoError(t, err)

	assert.True(t, removed)
	assert.Equal(t, before, read(t, script))
	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestRemoveKeepsSubstringMatches(t *testing.T) {
	m, script, _ := newManager(t)
	require.NoError(t, m.Add("foo"))
	require.NoError(t, m.Add("foobar"))
	f, err := os.OpenFile(script, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("# foo comment is not an entry\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	removed, err := m.Remove("foo")
	require.NoError(t, err)
	assert.True(t, removed)

	content := read(t, script)
	assert.NotContains(t, content, "\nfoo &\n")
	assert.Contains(t, content, "foobar &\n")
	assert.Contains(t, content, "# foo comment is not an entry\n")
}

func TestAddExistingKeepsOriginalEntry(t *testing.T) {
	m, script, _ := newManager(t)
	require.NoError(t, m.Add("waybar"))
	before := read(t, script)

	assert.ErrorIs(t, m.Add("  waybar "), ErrExists)
	assert.Equal(t, before, read(t, script))

	require.NoError(t, m.SetEnabled("waybar", true))
	assert.Equal(t, before, read(t, script))
}

func TestRemoveMissing(t *testing.T) {
	m, _, _ := newManager(t)

	removed, err := m.Remove("nothing")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, m.Add("waybar"))
	removed, err = m.Remove("nothing")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAddToScriptWithoutTrailingNewline(t *testing.T) {
	m, script, _ := newManager(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0o755))
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\nmako &"), 0o755))

	require.NoError(t, m.Add("waybar"))
	assert.Equal(t, "#!/bin/bash\nmako &\nwaybar &\n", read(t, script))
}

func TestAddRejectsInvalid(t *testing.T) {
	m, _, _ := newManager(t)

	assert.ErrorIs(t, m.Add("   "), ErrEmptyCommand)
	assert.ErrorIs(t, m.Add("a\nb"), ErrMultiline)
	assert.ErrorIs(t, m.Add("  #disabled-thing"), ErrComment)
}

func TestAddCommentLeavesScriptUntouched(t *testing.T) {
	m, script, _ := newManager(t)
	require.NoError(t, m.Ensure())
	before := read(t, script)

	assert.ErrorIs(t, m.Add("#disabled-thing"), ErrComment)
	assert.Equal(t, before, read(t, script))
}

func TestSetEnabled(t *testing.T) {
	m, _, _ := newManager(t)

	require.NoError(t, m.SetEnabled("waybar", true))
	require.NoError(t, m.SetEnabled("waybar", true))
	entries, err := m.Entries()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, m.SetEnabled("waybar", false))
	ok, err := m.Contains("waybar")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntriesMissingScript(t *testing.T) {
	m, _, _ := newManager(t)
	entries, err := m.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "firefox", DisplayName("/usr/bin/firefox --new-window"))
	assert.Equal(t, "My App", DisplayName("'/opt/My App/My App' --flag"))
	assert.Equal(t, "", DisplayName(""))
}

func TestQuotePath(t *testing.T) {
	assert.Equal(t, "/usr/bin/waybar", QuotePath("/usr/bin/waybar"))
	assert.Equal(t, "'/opt/My App/run'", QuotePath("/opt/My App/run"))
	assert.Equal(t, `'/opt/it'\''s'`, QuotePath("/opt/it's"))
}
