// Package prefs stores the desktop preferences edited on the appearance,
// desktop and power pages in ~/.config/raven/settings.json, the file the
// rest of the Raven desktop reads.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/logging"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

// SaveDelay is how long edits are batched before the file is written.
const SaveDelay = 500 * time.Millisecond

// Settings holds the desktop preferences.
type Settings struct {
	// Appearance
	Theme            string  `json:"theme"`
	AccentColor      string  `json:"accent_color"`
	FontSize         int     `json:"font_size"`
	IconTheme        string  `json:"icon_theme"`
	PanelOpacity     float64 `json:"panel_opacity"`
	EnableAnimations bool    `json:"enable_animations"`

	// Desktop
	WallpaperPath    string `json:"wallpaper_path"`
	WallpaperMode    string `json:"wallpaper_mode"`
	ShowDesktopIcons bool   `json:"show_desktop_icons"`

	// Power
	ScreenTimeout  int    `json:"screen_timeout"`
	SuspendTimeout int    `json:"suspend_timeout"`
	LidCloseAction string `json:"lid_close_action"`

	// Sound
	MasterVolume int  `json:"master_volume"`
	MuteOnLock   bool `json:"mute_on_lock"`
}

// Defaults returns the preferences used when no file exists.
func Defaults() Settings {
	return Settings{
		Theme:            "dark",
		AccentColor:      "#009688",
		FontSize:         14,
		IconTheme:        "Papirus-Dark",
		PanelOpacity:     0.95,
		EnableAnimations: true,
		WallpaperMode:    "fill",
		ScreenTimeout:    300,
		SuspendTimeout:   900,
		LidCloseAction:   "suspend",
		MasterVolume:     80,
	}
}

// Choice is one option of a preference selector.
type Choice[T comparable] struct {
	Label string
	Value T
}

// Index returns the position of v in choices, or 0 when absent.
func Index[T comparable](choices []Choice[T], v T) int {
	for i, c := range choices {
		if c.Value == v {
			return i
		}
	}
	return 0
}

// Labels returns the labels of choices in order.
func Labels[T comparable](choices []Choice[T]) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Label
	}
	return out
}

// Choices offered by the preference pages.
var (
	Themes = []Choice[string]{{"Dark", "dark"}, {"Light", "light"}, {"System", "system"}}

	AccentColors = []Choice[string]{
		{"Teal", "#009688"}, {"Blue", "#2196F3"}, {"Purple", "#9C27B0"},
		{"Pink", "#E91E63"}, {"Orange", "#FF9800"}, {"Green", "#4CAF50"},
	}

	WallpaperModes = []Choice[string]{
		{"Fill", "fill"}, {"Fit", "fit"}, {"Stretch", "stretch"}, {"Center", "center"}, {"Tile", "tile"},
	}

	ScreenTimeouts = []Choice[int]{
		{"Never", 0}, {"1 minute", 60}, {"5 minutes", 300}, {"10 minutes", 600}, {"15 minutes", 900}, {"30 minutes", 1800},
	}

	SuspendTimeouts = []Choice[int]{
		{"Never", 0}, {"5 minutes", 300}, {"15 minutes", 900}, {"30 minutes", 1800}, {"1 hour", 3600}, {"2 hours", 7200},
	}

	LidCloseActions = []Choice[string]{
		{"Suspend", "suspend"}, {"Hibernate", "hibernate"}, {"Power Off", "poweroff"}, {"Do Nothing", "nothing"},
	}
)

// Store loads, edits and persists Settings. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	path     string
	settings Settings
	saver    *task.Debouncer
	logger   *zap.Logger
}

// Open reads path over the defaults. A missing file yields the defaults; a
// corrupt one is reported and the defaults are used.
func Open(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{
		path:     path,
		settings: Defaults(),
		saver:    task.NewDebouncer(SaveDelay),
		logger:   logging.OrNop(logger),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.settings); err != nil {
		s.settings = Defaults()
		return s, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Update applies fn to the settings and schedules a debounced save.
func (s *Store) Update(fn func(*Settings)) {
	s.mu.Lock()
	fn(&s.settings)
	s.mu.Unlock()

	s.saver.Trigger(func() {
		if err := s.Save(); err != nil {
			s.logger.Warn("failed to save settings", zap.String("path", s.path), zap.Error(err))
		}
	})
}

// Flush writes any pending change immediately.
func (s *Store) Flush() {
	s.saver.Flush()
}

// Save writes the settings file.
func (s *Store) Save() error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.settings, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
