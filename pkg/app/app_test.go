package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenlinux/raven-settings/pkg/command/commandtest"
	"github.com/ravenlinux/raven-settings/pkg/config"
	"github.com/ravenlinux/raven-settings/pkg/display"
	"github.com/ravenlinux/raven-settings/pkg/mainloop"
	"github.com/ravenlinux/raven-settings/pkg/page"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Workers:   2,
		PrefsPath: filepath.Join(dir, "settings.json"),
		Autostart: config.AutostartConfig{
			Script:           filepath.Join(dir, "hypr", "autostart.sh"),
			CompositorConfig: filepath.Join(dir, "hypr", "hyprland.conf"),
		},
	}
}

func TestNewRequiresConfigAndLoop(t *testing.T) {
	_, err := New(Options{Loop: mainloop.NewQueue()})
	assert.Error(t, err)
	_, err = New(Options{Config: testConfig(t)})
	assert.Error(t, err)
}

func TestNewWiresDispatcherToRegistry(t *testing.T) {
	a, err := New(Options{Config: testConfig(t), Loop: mainloop.NewQueue(), Runner: commandtest.New()})
	require.NoError(t, err)
	defer a.Close()

	built := 0
	a.Registry.Register(page.WiFi, page.BuilderFunc(func(*page.BuildContext) (page.View, error) {
		built++
		return "wifi", nil
	}))

	assert.True(t, a.Nav.Select("wifi"))
	assert.True(t, a.Nav.Select("wifi"))
	assert.False(t, a.Nav.Select("bluetooth"), "no builder registered")
	assert.Equal(t, 1, built)
}

func TestSystemInfo(t *testing.T) {
	release := filepath.Join(t.TempDir(), "os-release")
	require.NoError(t, os.WriteFile(release, []byte("NAME=Raven\nPRETTY_NAME=\"Raven Linux 1.0\"\n"), 0o644))
	old := OSReleasePath
	OSReleasePath = release
	t.Cleanup(func() { OSReleasePath = old })

	runner := commandtest.New().On("uname -r", "6.18.0-raven\n")
	env := display.Environment{SessionType: "wayland"}
	a, err := New(Options{Config: testConfig(t), Loop: mainloop.NewQueue(), Runner: runner, Env: &env})
	require.NoError(t, err)
	defer a.Close()

	info := a.SystemInfo(context.Background())
	assert.Equal(t, "6.18.0-raven", info.Kernel)
	assert.Equal(t, "Raven Linux 1.0", info.OS)
	assert.Equal(t, "wayland", info.Session)
	assert.NotEmpty(t, info.Desktop)
}
