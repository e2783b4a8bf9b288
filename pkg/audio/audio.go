// Package audio manages PulseAudio/PipeWire devices through pactl.
package audio

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/logging"
)

// Kind distinguishes output devices from input devices.
type Kind string

const (
	Sink   Kind = "sink"
	Source Kind = "source"
)

// Device is one pactl sink or source.
type Device struct {
	Kind        Kind
	Index       uint32
	Name        string
	Description string
	Default     bool
}

// Label returns the text shown in device selectors.
func (d Device) Label() string {
	if d.Description != "" {
		return d.Description
	}
	return d.Name
}

// MaxVolume is the highest volume percentage the controls offer.
const MaxVolume = 100

var volumePattern = regexp.MustCompile(`(\d+)%`)

// ParseDevices parses `pactl list sinks` or `pactl list sources`. Blocks
// without a numeric index or a description are skipped, and monitor
// sources are left out of the source list.
func ParseDevices(kind Kind, out string) []Device {
	header := "Sink #"
	if kind == Source {
		header = "Source #"
	}

	var devices []Device
	var current *Device
	flush := func() {
		if current == nil || current.Description == "" {
			return
		}
		if kind == Source && strings.HasSuffix(current.Name, ".monitor") {
			return
		}
		devices = append(devices, *current)
	}

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, header) {
			flush()
			current = nil
			index, err := strconv.ParseUint(strings.TrimPrefix(trimmed, header), 10, 32)
			if err != nil {
				continue
			}
			current = &Device{Kind: kind, Index: uint32(index)}
			continue
		}
		if current == nil {
			continue
		}
		if v, ok := strings.CutPrefix(trimmed, "Name: "); ok && current.Name == "" {
			current.Name = strings.TrimSpace(v)
		} else if v, ok := strings.CutPrefix(trimmed, "Description: "); ok && current.Description == "" {
			current.Description = strings.TrimSpace(v)
		}
	}
	flush()
	return devices
}

// ParseVolume returns the first percentage in pactl volume output.
func ParseVolume(out string) (int, bool) {
	m := volumePattern.FindStringSubmatch(out)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// ClampVolume limits a volume percentage to 0..MaxVolume.
func ClampVolume(v int) int {
	return min(max(v, 0), MaxVolume)
}

// Client runs pactl through a command.Runner.
type Client struct {
	runner command.Runner
	logger *zap.Logger
}

// NewClient creates an audio client.
func NewClient(runner command.Runner, logger *zap.Logger) *Client {
	return &Client{runner: runner, logger: logging.OrNop(logger)}
}

func defaultTarget(kind Kind) string {
	if kind == Source {
		return "@DEFAULT_SOURCE@"
	}
	return "@DEFAULT_SINK@"
}

// Devices lists sinks or sources with the current default marked.
func (c *Client) Devices(ctx context.Context, kind Kind) ([]Device, error) {
	res, err := c.runner.Run(ctx, command.New("pactl", "list", string(kind)+"s"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", kind, err)
	}
	devices := ParseDevices(kind, res.Stdout)

	if name, err := c.Default(ctx, kind); err == nil {
		for i := range devices {
			devices[i].Default = devices[i].Name == name
		}
	} else {
		c.logger.Debug("failed to read default device", zap.String("kind", string(kind)), zap.Error(err))
	}
	return devices, nil
}

// Default returns the name of the default sink or source.
func (c *Client) Default(ctx context.Context, kind Kind) (string, error) {
	res, err := c.runner.Run(ctx, command.New("pactl", "get-default-"+string(kind)))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// SetDefault makes the named device the default sink or source.
func (c *Client) SetDefault(ctx context.Context, kind Kind, name string) error {
	if name == "" {
		return fmt.Errorf("audio: empty %s name", kind)
	}
	_, err := c.runner.Run(ctx, command.New("pactl", "set-default-"+string(kind), name))
	return err
}

// Volume reads the default device's volume percentage.
func (c *Client) Volume(ctx context.Context, kind Kind) (int, error) {
	res, err := c.runner.Run(ctx, command.New("pactl", "get-"+string(kind)+"-volume", defaultTarget(kind)))
	if err != nil {
		return 0, err
	}
	v, ok := ParseVolume(res.Stdout)
	if !ok {
		return 0, fmt.Errorf("audio: no volume in %q", strings.TrimSpace(res.Stdout))
	}
	return v, nil
}

// SetVolume sets the default device's volume percentage, clamped to
// 0..MaxVolume.
func (c *Client) SetVolume(ctx context.Context, kind Kind, percent int) error {
	pct := strconv.Itoa(ClampVolume(percent)) + "%"
	_, err := c.runner.Run(ctx, command.New("pactl", "set-"+string(kind)+"-volume", defaultTarget(kind), pct))
	return err
}

// ToggleMute flips the mute state of the default device.
func (c *Client) ToggleMute(ctx context.Context, kind Kind) error {
	_, err := c.runner.Run(ctx, command.New("pactl", "set-"+string(kind)+"-mute", defaultTarget(kind), "toggle"))
	return err
}

// TestSoundPath is the bell played by PlayTestSound.
const TestSoundPath = "/usr/share/sounds/freedesktop/stereo/audio-volume-change.oga"

// PlayTestSound plays a short sound on the default sink.
func (c *Client) PlayTestSound(ctx context.Context) error {
	_, err := c.runner.Run(ctx, command.New("paplay", TestSoundPath))
	return err
}

// Snapshot is everything the sound page shows.
type Snapshot struct {
	Sinks        []Device
	Sources      []Device
	SinkVolume   int
	SourceVolume int
}

// Snapshot reads both device lists and the default volumes. A volume that
// cannot be read is reported as 0.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	var s Snapshot
	var err error
	if s.Sinks, err = c.Devices(ctx, Sink); err != nil {
		return s, err
	}
	if s.Sources, err = c.Devices(ctx, Source); err != nil {
		return s, err
	}
	if s.SinkVolume, err = c.Volume(ctx, Sink); err != nil {
		c.logger.Debug("failed to read sink volume", zap.Error(err))
	}
	if s.SourceVolume, err = c.Volume(ctx, Source); err != nil {
		c.logger.Debug("failed to read source volume", zap.Error(err))
	}
	return s, nil
}

// DefaultIndex returns the position of the default device in devices, or
// -1 if none is marked.
func DefaultIndex(devices []Device) int {
	for i, d := range devices {
		if d.Default {
			return i
		}
	}
	return -1
}
