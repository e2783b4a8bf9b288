package display

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenlinux/raven-settings/pkg/command/commandtest"
)

const xrandrOutput = `Screen 0: minimum 320 x 200, current 1920 x 1080, maximum 16384 x 16384
eDP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 344mm x 194mm
   1920x1080     60.02*+  59.93    48.00
   1280x720      60.00 +
   1920x1080_60.00*+
   garbage
HDMI-1 disconnected (normal left inverted right x axis y axis)
   1024x768      60.00
DP-1 connected 2560x1440+1920+0 (normal left inverted right x axis y axis) 597mm x 336mm
   2560x1440_60.00  59.96*
`

func TestParseXrandr(t *testing.T) {
	got := ParseXrandr(xrandrOutput)

	assert.Equal(t, []Mode{
		{Output: "eDP-1", Resolution: "1920x1080", Width: 1920, Height: 1080, Refresh: 60.02, Current: true, Preferred: true},
		{Output: "eDP-1", Resolution: "1920x1080", Width: 1920, Height: 1080, Refresh: 59.93},
		{Output: "eDP-1", Resolution: "1920x1080", Width: 1920, Height: 1080, Refresh: 48.00},
		{Output: "eDP-1", Resolution: "1280x720", Width: 1280, Height: 720, Refresh: 60.00, Preferred: true},
		{Output: "DP-1", Resolution: "2560x1440_60.00", Width: 2560, Height: 1440, Refresh: 59.96, Current: true},
	}, got)
}

func TestParseXrandrEmpty(t *testing.T) {
	assert.Empty(t, ParseXrandr(""))
}

func TestParseModesSkipsBlankLines(t *testing.T) {
	tests := []struct {
		name  string
		parse func(string) []Mode
		out   string
		want  []Mode
	}{
		{
			name:  "xrandr carriage return line",
			parse: ParseXrandr,
			out:   "eDP-1 connected\n\r\n   1920x1080 60.00*\n",
			want:  []Mode{{Output: "eDP-1", Resolution: "1920x1080", Width: 1920, Height: 1080, Refresh: 60, Current: true}},
		},
		{
			name:  "xrandr crlf output",
			parse: ParseXrandr,
			out:   "eDP-1 connected\r\n   1280x720 59.94*\r\n\f\r\n",
			want:  []Mode{{Output: "eDP-1", Resolution: "1280x720", Width: 1280, Height: 720, Refresh: 59.94, Current: true}},
		},
		{
			name:  "wlr-randr whitespace only",
			parse: ParseWlrRandr,
			out:   "\r\n\v\n",
		},
		{
			name:  "wlr-randr crlf output",
			parse: ParseWlrRandr,
			out:   "eDP-1 \"Panel\"\r\n\r\n  Modes:\r\n    1920x1080 px, 60.000000 Hz (current)\r\n",
			want:  []Mode{{Output: "eDP-1", Resolution: "1920x1080", Width: 1920, Height: 1080, Refresh: 60, Current: true}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Mode
			require.NotPanics(t, func() { got = tt.parse(tt.out) })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWlrRandr(t *testing.T) {
	out := `eDP-1 "Chimei Innolux Corporation 0x14D3 (eDP-1)"
  Make: Chimei Innolux Corporation
  Enabled: yes
  Modes:
    1920x1080 px, 60.049000 Hz (preferred, current)
    1280x720 px, 59.855000 Hz
  Position: 0,0
HDMI-A-1 "Dell"
  Enabled: no
  Modes:
    3840x2160 px, 30.000000 Hz (preferred)
`
	got := ParseWlrRandr(out)

	assert.Equal(t, []Mode{
		{Output: "eDP-1", Resolution: "1920x1080", Width: 1920, Height: 1080, Refresh: 60.049, Current: true, Preferred: true},
		{Output: "eDP-1", Resolution: "1280x720", Width: 1280, Height: 720, Refresh: 59.855},
	}, got)

	cur, ok := CurrentMode(got)
	assert.True(t, ok)
	assert.Equal(t, "1920x1080 @ 60.05 Hz", cur.Label())
}

func TestParseBrightness(t *testing.T) {
	v, ok := ParseBrightness("intel_backlight,backlight,19200,40%,48000\n")
	assert.True(t, ok)
	assert.Equal(t, 40, v)

	_, ok = ParseBrightness("Device 'intel_backlight' of class 'backlight':")
	assert.False(t, ok)
}

func TestEnvironmentSession(t *testing.T) {
	assert.Equal(t, Wayland, Environment{SessionType: "wayland"}.Session())
	assert.Equal(t, X11, Environment{SessionType: "x11"}.Session())
	assert.Equal(t, X11, Environment{}.Session())
}

func TestApplyCommand(t *testing.T) {
	mode := Mode{Output: "eDP-1", Resolution: "1920x1080", Width: 1920, Height: 1080, Refresh: 60}

	x11 := NewClient(nil, Environment{SessionType: "x11"}, nil)
	assert.Equal(t, "xrandr --output eDP-1 --mode 1920x1080 --rate 60", x11.ApplyCommand(mode).String())
	assert.Equal(t, "xrandr -s 1920x1080", x11.ApplyCommand(Mode{Resolution: "1920x1080"}).String())

	hypr := NewClient(nil, Environment{SessionType: "wayland", Hyprland: true}, nil)
	assert.Equal(t, "hyprctl keyword monitor eDP-1,1920x1080@60,auto,1", hypr.ApplyCommand(mode).String())

	wlr := NewClient(nil, Environment{SessionType: "wayland"}, nil)
	assert.Equal(t, "wlr-randr --output eDP-1 --mode 1920x1080@60Hz", wlr.ApplyCommand(mode).String())
}

func TestClientModesBySession(t *testing.T) {
	runner := commandtest.New().
		On("xrandr", xrandrOutput).
		On("wlr-randr", "eDP-1 \"x\"\n  Modes:\n    800x600 px, 60.000000 Hz (current)\n")

	x11, err := NewClient(runner, Environment{}, nil).Modes(context.Background())
	require.NoError(t, err)
	assert.Len(t, x11, 5)

	wl, err := NewClient(runner, Environment{SessionType: "wayland"}, nil).Modes(context.Background())
	require.NoError(t, err)
	assert.Len(t, wl, 1)
}

func TestClientBrightness(t *testing.T) {
	runner := commandtest.New().
		On("brightnessctl -m", "amdgpu_bl0,backlight,100,39%,255\n").
		On("brightnessctl set 1%", "")
	c := NewClient(runner, Environment{}, nil)

	v, err := c.Brightness(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 39, v)
	require.NoError(t, c.SetBrightness(context.Background(), 0))
}

func TestClientWallpaper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wall.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))

	runner := commandtest.New().
		On("feh --bg-scale "+path, "").
		On("swww img "+path, "")

	require.NoError(t, NewClient(runner, Environment{}, nil).SetWallpaper(context.Background(), path))
	require.NoError(t, NewClient(runner, Environment{SessionType: "wayland"}, nil).SetWallpaper(context.Background(), path))
	assert.Equal(t, []string{"feh --bg-scale " + path, "swww img " + path}, runner.Calls())

	c := NewClient(runner, Environment{}, nil)
	assert.ErrorIs(t, c.SetWallpaper(context.Background(), ""), ErrNoWallpaper)
	assert.ErrorIs(t, c.SetWallpaper(context.Background(), filepath.Join(t.TempDir(), "missing.png")), os.ErrNotExist)
}
