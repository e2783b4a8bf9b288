package bluetooth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/command/commandtest"
)

const (
	headphones = "AA:BB:CC:DD:EE:FF"
	keyboard   = "11:22:33:44:55:66"
)

func TestParseDevices(t *testing.T) {
	out := "Device AA:BB:CC:DD:EE:FF My Headphones\n" +
		"Device 11:22:33:44:55:66 Keyboard\n" +
		"Device nonsense Thing\n" +
		"Controller 00:11:22:33:44:55 host\n" +
		"Device 77:88:99:AA:BB:CC\n" +
		"\n"

	got := ParseDevices(out)

	assert.Equal(t, []Device{
		{Address: headphones, Name: "My Headphones"},
		{Address: keyboard, Name: "Keyboard"},
		{Address: "77:88:99:AA:BB:CC", Name: "77:88:99:AA:BB:CC"},
	}, got)
}

func TestParseInfo(t *testing.T) {
	out := `Device AA:BB:CC:DD:EE:FF (public)
	Name: My Headphones
	Alias: Cans
	Icon: audio-headset
	Paired: yes
	Trusted: no
	Connected: yes
	UUID: Audio Sink                (0000110b-0000-1000-8000-00805f9b34fb)
`
	info := ParseInfo(out)

	assert.Equal(t, Info{
		Name:      "My Headphones",
		Alias:     "Cans",
		Icon:      "audio-headset",
		Connected: true,
		Paired:    true,
		Trusted:   false,
	}, info)
	assert.False(t, ParseInfo("Connected: no").Connected)
}

func TestParsePowered(t *testing.T) {
	assert.True(t, ParsePowered("Controller 00:11:22:33:44:55 (public)\n\tPowered: yes\n"))
	assert.False(t, ParsePowered("\tPowered: no\n"))
}

func TestParseDiscoverable(t *testing.T) {
	assert.True(t, ParseDiscoverable("\tPowered: yes\n\tDiscoverable: yes\n"))
	assert.False(t, ParseDiscoverable("\tPowered: yes\n\tDiscoverable: no\n"))
}

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress("aa:bb:cc:dd:ee:ff"))
	assert.False(t, ValidAddress("AA:BB:CC:DD:EE"))
	assert.False(t, ValidAddress("AA:BB:CC:DD:EE:FG"))
	assert.False(t, ValidAddress("--help"))
}

func TestClientDevices(t *testing.T) {
	runner := commandtest.New().
		On("bluetoothctl devices", "Device AA:BB:CC:DD:EE:FF My Headphones\nDevice 11:22:33:44:55:66 Keyboard\n").
		On("bluetoothctl info "+headphones, "\tPaired: yes\n\tConnected: yes\n").
		Fail("bluetoothctl info "+keyboard, 1, "Device 11:22:33:44:55:66 not available")
	c := NewClient(runner, time.Second, nil)

	got, err := c.Devices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Device{
		{Address: headphones, Name: "My Headphones", Connected: true, Paired: true},
		{Address: keyboard, Name: "Keyboard"},
	}, got)
}

func TestClientActions(t *testing.T) {
	runner := commandtest.New().
		On("bluetoothctl connect "+headphones, "Attempting to connect to AA:BB:CC:DD:EE:FF\nConnection successful\n").
		OnResult("bluetoothctl disconnect "+headphones, command.Result{ExitCode: 1, Stdout: "Successful disconnected"}, nil).
		On("bluetoothctl pair "+keyboard, "Failed to pair: org.bluez.Error.AuthenticationFailed\n").
		Fail("bluetoothctl remove "+keyboard, 1, "Device 11:22:33:44:55:66 not available")
	c := NewClient(runner, time.Second, nil)
	ctx := context.Background()

	assert.NoError(t, c.Connect(ctx, headphones))
	assert.NoError(t, c.Disconnect(ctx, headphones), "phrase wins over non-zero exit")

	var phraseErr *command.PhraseError
	assert.ErrorAs(t, c.Pair(ctx, keyboard), &phraseErr)

	var exitErr *command.ExitError
	assert.ErrorAs(t, c.Remove(ctx, keyboard), &exitErr)

	assert.ErrorIs(t, c.Connect(ctx, "--help"), ErrInvalidAddress)
	assert.NotContains(t, runner.Calls(), "bluetoothctl connect --help")
}

func TestClientPowerAndDiscovery(t *testing.T) {
	runner := commandtest.New().
		On("bluetoothctl show", "\tPowered: yes\n\tDiscoverable: no\n").
		On("bluetoothctl power off", "Changing power off succeeded\n").
		On("bluetoothctl discoverable on", "").
		On("bluetoothctl --timeout 5 scan on", "Discovery started\n")
	c := NewClient(runner, 0, nil)
	ctx := context.Background()

	on, err := c.Powered(ctx)
	require.NoError(t, err)
	assert.True(t, on)
	discoverable, err := c.Discoverable(ctx)
	require.NoError(t, err)
	assert.False(t, discoverable)

	require.NoError(t, c.SetPower(ctx, false))
	require.NoError(t, c.SetDiscoverable(ctx, true))
	require.NoError(t, c.Discover(ctx))
}
