package display

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/logging"
)

// Session is the graphical session type.
type Session string

const (
	X11     Session = "x11"
	Wayland Session = "wayland"
)

// Environment holds the variables that pick the display tools.
type Environment struct {
	SessionType string
	Hyprland    bool
}

// FromOS reads the session environment of the current process.
func FromOS() Environment {
	return Environment{
		SessionType: os.Getenv("XDG_SESSION_TYPE"),
		Hyprland:    os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "",
	}
}

// Session returns Wayland when XDG_SESSION_TYPE is "wayland" and X11
// otherwise.
func (e Environment) Session() Session {
	if strings.EqualFold(strings.TrimSpace(e.SessionType), "wayland") {
		return Wayland
	}
	return X11
}

// ErrNoWallpaper is returned when no wallpaper path is given.
var ErrNoWallpaper = errors.New("display: no wallpaper path")

// Client runs the display tools through a command.Runner.
type Client struct {
	runner command.Runner
	env    Environment
	logger *zap.Logger
}

// NewClient creates a display client for env.
func NewClient(runner command.Runner, env Environment, logger *zap.Logger) *Client {
	return &Client{runner: runner, env: env, logger: logging.OrNop(logger)}
}

// Session returns the session the client targets.
func (c *Client) Session() Session {
	return c.env.Session()
}

// Modes lists the available modes with xrandr or wlr-randr.
func (c *Client) Modes(ctx context.Context) ([]Mode, error) {
	if c.Session() == Wayland {
		res, err := c.runner.Run(ctx, command.New("wlr-randr"))
		if err != nil {
			return nil, fmt.Errorf("failed to query outputs: %w", err)
		}
		return ParseWlrRandr(res.Stdout), nil
	}
	res, err := c.runner.Run(ctx, command.New("xrandr"))
	if err != nil {
		return nil, fmt.Errorf("failed to query outputs: %w", err)
	}
	return ParseXrandr(res.Stdout), nil
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// ApplyCommand returns the command that switches an output to m.
func (c *Client) ApplyCommand(m Mode) command.Cmd {
	switch {
	case c.Session() == Wayland && c.env.Hyprland:
		spec := fmt.Sprintf("%s,%s@%s,auto,1", m.Output, m.Size(), formatRate(m.Refresh))
		return command.New("hyprctl", "keyword", "monitor", spec)
	case c.Session() == Wayland:
		return command.New("wlr-randr", "--output", m.Output, "--mode", fmt.Sprintf("%s@%sHz", m.Size(), formatRate(m.Refresh)))
	case m.Output == "":
		return command.New("xrandr", "-s", m.Resolution)
	default:
		return command.New("xrandr", "--output", m.Output, "--mode", m.Resolution, "--rate", formatRate(m.Refresh))
	}
}

// Apply switches an output to m.
func (c *Client) Apply(ctx context.Context, m Mode) error {
	if _, err := c.runner.Run(ctx, c.ApplyCommand(m)); err != nil {
		return fmt.Errorf("failed to set %s on %s: %w", m.Label(), m.Output, err)
	}
	c.logger.Info("display mode applied", zap.String("output", m.Output), zap.String("mode", m.Label()))
	return nil
}

// Brightness reads the backlight level as a percentage.
func (c *Client) Brightness(ctx context.Context) (int, error) {
	res, err := c.runner.Run(ctx, command.New("brightnessctl", "-m"))
	if err != nil {
		return 0, err
	}
	v, ok := ParseBrightness(res.Stdout)
	if !ok {
		return 0, fmt.Errorf("display: unexpected brightnessctl output %q", strings.TrimSpace(res.Stdout))
	}
	return v, nil
}

// SetBrightness sets the backlight level, clamped to 1..100 so the screen
// never goes fully dark.
func (c *Client) SetBrightness(ctx context.Context, percent int) error {
	pct := strconv.Itoa(min(max(percent, 1), 100)) + "%"
	_, err := c.runner.Run(ctx, command.New("brightnessctl", "set", pct))
	return err
}

// WallpaperCommand returns the command that sets path as the wallpaper.
func (c *Client) WallpaperCommand(path string) command.Cmd {
	if c.Session() == Wayland {
		return command.New("swww", "img", path)
	}
	return command.New("feh", "--bg-scale", path)
}

// SetWallpaper applies path as the desktop wallpaper.
func (c *Client) SetWallpaper(ctx context.Context, path string) error {
	if path == "" {
		return ErrNoWallpaper
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("wallpaper %s: %w", path, err)
	}
	if _, err := c.runner.Run(ctx, c.WallpaperCommand(path)); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w", err)
	}
	return nil
}
