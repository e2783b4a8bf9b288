package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingUsesDefaults(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "settings.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s.Get())
}

func TestOpenMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"light","font_size":16,"unknown_key":1}`), 0o644))

	s, err := Open(path, nil)
	require.NoError(t, err)

	got := s.Get()
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, 16, got.FontSize)
	assert.Equal(t, "#009688", got.AccentColor)
	assert.Equal(t, 300, got.ScreenTimeout)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":`), 0o644))

	s, err := Open(path, nil)
	assert.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, Defaults(), s.Get())
}

func TestUpdateSavesDebounced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raven", "settings.json")
	s, err := Open(path, nil)
	require.NoError(t, err)

	s.Update(func(st *Settings) { st.Theme = "light" })
	s.Update(func(st *Settings) { st.FontSize = 18 })

	var reloaded *Store
	require.Eventually(t, func() bool {
		r, err := Open(path, nil)
		if err != nil || r.Get().FontSize != 18 {
			return false
		}
		reloaded = r
		return true
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "light", reloaded.Get().Theme)
}

func TestFlushWritesImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(path, nil)
	require.NoError(t, err)

	s.Update(func(st *Settings) { st.LidCloseAction = "lock" })
	s.Flush()

	reloaded, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "lock", reloaded.Get().LidCloseAction)
}

func TestChoices(t *testing.T) {
	assert.Equal(t, 2, Index(ScreenTimeouts, 300))
	assert.Equal(t, 0, Index(ScreenTimeouts, 42))
	assert.Equal(t, []string{"Dark", "Light", "System"}, Labels(Themes))
	assert.Equal(t, "poweroff", LidCloseActions[Index(LidCloseActions, "poweroff")].Value)
}
