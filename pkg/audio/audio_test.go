package audio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenlinux/raven-settings/pkg/command/commandtest"
)

const sinksOutput = `Sink #0
	State: SUSPENDED
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo
	Description: Built-in Audio Analog Stereo
	Driver: PipeWire
	Properties:
		device.description = "Built-in Audio"

Sink #42
	State: RUNNING
	Name: bluez_output.AA_BB_CC_DD_EE_FF.1
	Description: My Headphones

Sink #x
	Name: broken
	Description: Broken Sink

Sink #7
	Name: no-description
`

const sourcesOutput = `Source #1
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo.monitor
	Description: Monitor of Built-in Audio Analog Stereo

Source #2
	Name: alsa_input.pci-0000_00_1f.3.analog-stereo
	Description: Built-in Audio Microphone
`

func TestParseDevicesSinks(t *testing.T) {
	got := ParseDevices(Sink, sinksOutput)

	assert.Equal(t, []Device{
		{Kind: Sink, Index: 0, Name: "alsa_output.pci-0000_00_1f.3.analog-stereo", Description: "Built-in Audio Analog Stereo"},
		{Kind: Sink, Index: 42, Name: "bluez_output.AA_BB_CC_DD_EE_FF.1", Description: "My Headphones"},
	}, got)
}

func TestParseDevicesSourcesSkipsMonitors(t *testing.T) {
	got := ParseDevices(Source, sourcesOutput)

	require.Len(t, got, 1)
	assert.Equal(t, uint32(2), got[0].Index)
	assert.Equal(t, "Built-in Audio Microphone", got[0].Label())
}

func TestParseDevicesEmpty(t *testing.T) {
	assert.Empty(t, ParseDevices(Sink, ""))
	assert.Empty(t, ParseDevices(Sink, sourcesOutput))
}

func TestParseVolume(t *testing.T) {
	v, ok := ParseVolume("Volume: front-left: 45875 /  70% / -9.29 dB,   front-right: 45875 /  70% / -9.29 dB\n")
	assert.True(t, ok)
	assert.Equal(t, 70, v)

	_, ok = ParseVolume("no volume here")
	assert.False(t, ok)
}

func TestClampVolume(t *testing.T) {
	assert.Equal(t, 0, ClampVolume(-5))
	assert.Equal(t, 55, ClampVolume(55))
	assert.Equal(t, 100, ClampVolume(150))
}

func TestClientDevicesMarksDefault(t *testing.T) {
	runner := commandtest.New().
		On("pactl list sinks", sinksOutput).
		On("pactl get-default-sink", "bluez_output.AA_BB_CC_DD_EE_FF.1\n")
	c := NewClient(runner, nil)

	got, err := c.Devices(context.Background(), Sink)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[0].Default)
	assert.True(t, got[1].Default)
}

func TestClientVolumeCommands(t *testing.T) {
	runner := commandtest.New().
		On("pactl set-sink-volume @DEFAULT_SINK@ 100%", "").
		On("pactl set-source-volume @DEFAULT_SOURCE@ 30%", "").
		On("pactl get-sink-volume @DEFAULT_SINK@", "Volume: front-left: 32768 /  50% / -18.06 dB\n").
		On("pactl set-default-source alsa_input.usb", "").
		On("pactl set-sink-mute @DEFAULT_SINK@ toggle", "")
	c := NewClient(runner, nil)
	ctx := context.Background()

	require.NoError(t, c.SetVolume(ctx, Sink, 130))
	require.NoError(t, c.SetVolume(ctx, Source, 30))
	v, err := c.Volume(ctx, Sink)
	require.NoError(t, err)
	assert.Equal(t, 50, v)
	require.NoError(t, c.SetDefault(ctx, Source, "alsa_input.usb"))
	require.NoError(t, c.ToggleMute(ctx, Sink))
	assert.Error(t, c.SetDefault(ctx, Sink, ""))
}

func TestClientSnapshot(t *testing.T) {
	runner := commandtest.New().
		On("pactl list sinks", sinksOutput).
		On("pactl list sources", sourcesOutput).
		On("pactl get-default-sink", "alsa_output.pci-0000_00_1f.3.analog-stereo\n").
		On("pactl get-sink-volume @DEFAULT_SINK@", "Volume: front-left: 52428 /  80% / -5.81 dB\n")
	c := NewClient(runner, nil)

	s, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.Sinks, 2)
	assert.Len(t, s.Sources, 1)
	assert.Equal(t, 0, DefaultIndex(s.Sinks))
	assert.Equal(t, -1, DefaultIndex(s.Sources), "unreadable default leaves nothing marked")
	assert.Equal(t, 80, s.SinkVolume)
	assert.Equal(t, 0, s.SourceVolume, "unreadable volume reads as zero")
}

func TestClientSnapshotListFailure(t *testing.T) {
	runner := commandtest.New().Fail("pactl list sinks", 1, "Connection failure")
	_, err := NewClient(runner, nil).Snapshot(context.Background())
	assert.Error(t, err)
}
