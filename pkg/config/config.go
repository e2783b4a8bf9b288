// Package config loads the raven-settings application configuration.
//
// Values come from built-in defaults, an optional YAML file and
// RAVEN_SETTINGS_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// RAVEN_SETTINGS_REFRESH_WIFI=1m.
const EnvPrefix = "RAVEN_SETTINGS"

// Config holds application configuration.
type Config struct {
	LogLevel         string          `mapstructure:"log_level" yaml:"log_level"`
	Workers          int             `mapstructure:"workers" yaml:"workers"`
	CommandTimeout   time.Duration   `mapstructure:"command_timeout" yaml:"command_timeout"`
	PrivilegeCommand string          `mapstructure:"privilege_command" yaml:"privilege_command"`
	UIDirs           []string        `mapstructure:"ui_dirs" yaml:"ui_dirs"`
	PrefsPath        string          `mapstructure:"prefs_path" yaml:"prefs_path"`
	Refresh          RefreshConfig   `mapstructure:"refresh" yaml:"refresh"`
	Bluetooth        BluetoothConfig `mapstructure:"bluetooth" yaml:"bluetooth"`
	Autostart        AutostartConfig `mapstructure:"autostart" yaml:"autostart"`
	Window           WindowConfig    `mapstructure:"window" yaml:"window"`
}

// RefreshConfig holds the background refresh intervals per category.
type RefreshConfig struct {
	WiFi      time.Duration `mapstructure:"wifi" yaml:"wifi"`
	Bluetooth time.Duration `mapstructure:"bluetooth" yaml:"bluetooth"`
}

// BluetoothConfig tunes device discovery.
type BluetoothConfig struct {
	ScanTimeout time.Duration `mapstructure:"scan_timeout" yaml:"scan_timeout"`
}

// AutostartConfig locates the autostart script and the compositor config
// that launches it.
type AutostartConfig struct {
	Script           string `mapstructure:"script" yaml:"script"`
	CompositorConfig string `mapstructure:"compositor_config" yaml:"compositor_config"`
}

// WindowConfig stores main window geometry.
type WindowConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`

	// LayerShell places the window on the wlr-layer-shell overlay layer
	// instead of opening a normal toplevel.
	LayerShell bool `mapstructure:"layer_shell" yaml:"layer_shell"`
}

// DefaultPath returns ~/.config/raven/raven-settings.yaml, honoring
// XDG_CONFIG_HOME.
func DefaultPath() string {
	return filepath.Join(configHome(), "raven", "raven-settings.yaml")
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp"
	}
	return filepath.Join(home, ".config")
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp"
	}
	return filepath.Join(home, ".local", "share")
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "")
	v.SetDefault("workers", 4)
	v.SetDefault("command_timeout", 15*time.Second)
	v.SetDefault("privilege_command", "pkexec")
	v.SetDefault("ui_dirs", []string{
		"ui",
		filepath.Join(dataHome(), "raven-settings", "ui"),
		"/usr/local/share/raven-settings/ui",
		"/usr/share/raven-settings/ui",
	})
	v.SetDefault("prefs_path", filepath.Join(configHome(), "raven", "settings.json"))
	v.SetDefault("refresh.wifi", 30*time.Second)
	v.SetDefault("refresh.bluetooth", 10*time.Second)
	v.SetDefault("bluetooth.scan_timeout", 5*time.Second)
	v.SetDefault("autostart.script", "~/.config/hypr/autostart.sh")
	v.SetDefault("autostart.compositor_config", "~/.config/hypr/hyprland.conf")
	v.SetDefault("window.width", 900)
	v.SetDefault("window.height", 640)
	v.SetDefault("window.layer_shell", false)
}

// Load reads configuration from path. An empty path uses DefaultPath, and a
// missing file at the default location is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	return FromViper(v)
}

// FromViper decodes and normalizes the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.CommandTimeout <= 0 {
		c.CommandTimeout = 15 * time.Second
	}
	if c.Refresh.WiFi <= 0 {
		c.Refresh.WiFi = 30 * time.Second
	}
	if c.Refresh.Bluetooth <= 0 {
		c.Refresh.Bluetooth = 10 * time.Second
	}
	if c.Window.Width < 600 {
		c.Window.Width = 900
	}
	if c.Window.Height < 400 {
		c.Window.Height = 640
	}
	for i, dir := range c.UIDirs {
		c.UIDirs[i] = ExpandHome(dir)
	}
	c.PrefsPath = ExpandHome(c.PrefsPath)
	c.Autostart.Script = ExpandHome(c.Autostart.Script)
	c.Autostart.CompositorConfig = ExpandHome(c.Autostart.CompositorConfig)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
