package bluetooth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/logging"
)

// bluetoothctl exits 0 on some failures and non-zero on some successes
// depending on the BlueZ release, so device actions are confirmed by the
// phrase it prints.
const (
	phraseConnected    = "Connection successful"
	phraseDisconnected = "Successful disconnected"
	phrasePaired       = "Pairing successful"
	phraseRemoved      = "Device has been removed"
)

// Client runs bluetoothctl through a command.Runner.
type Client struct {
	runner      command.Runner
	scanTimeout time.Duration
	logger      *zap.Logger
}

// NewClient creates a Bluetooth client. scanTimeout bounds discovery runs.
func NewClient(runner command.Runner, scanTimeout time.Duration, logger *zap.Logger) *Client {
	if scanTimeout <= 0 {
		scanTimeout = 5 * time.Second
	}
	return &Client{runner: runner, scanTimeout: scanTimeout, logger: logging.OrNop(logger)}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Powered reports whether the default controller is powered.
func (c *Client) Powered(ctx context.Context) (bool, error) {
	res, err := c.runner.Run(ctx, command.New("bluetoothctl", "show"))
	if err != nil {
		return false, err
	}
	return ParsePowered(res.Stdout), nil
}

// SetPower powers the controller on or off.
func (c *Client) SetPower(ctx context.Context, on bool) error {
	_, err := c.runner.Run(ctx, command.New("bluetoothctl", "power", onOff(on)))
	return err
}

// Discoverable reports whether the default controller is discoverable.
func (c *Client) Discoverable(ctx context.Context) (bool, error) {
	res, err := c.runner.Run(ctx, command.New("bluetoothctl", "show"))
	if err != nil {
		return false, err
	}
	return ParseDiscoverable(res.Stdout), nil
}

// SetDiscoverable toggles whether other devices can find this host.
func (c *Client) SetDiscoverable(ctx context.Context, on bool) error {
	_, err := c.runner.Run(ctx, command.New("bluetoothctl", "discoverable", onOff(on)))
	return err
}

// Discover runs device discovery for the configured scan timeout.
func (c *Client) Discover(ctx context.Context) error {
	secs := strconv.Itoa(int(c.scanTimeout.Round(time.Second) / time.Second))
	_, err := c.runner.Run(ctx, command.New("bluetoothctl", "--timeout", secs, "scan", "on"))
	return err
}

// StopDiscovery ends a running discovery.
func (c *Client) StopDiscovery(ctx context.Context) error {
	_, err := c.runner.Run(ctx, command.New("bluetoothctl", "scan", "off"))
	return err
}

// Devices lists known devices and resolves each one's connection state
// with a `bluetoothctl info` call. A failed info call leaves the device
// listed as disconnected.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	res, err := c.runner.Run(ctx, command.New("bluetoothctl", "devices"))
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	devices := ParseDevices(res.Stdout)
	for i := range devices {
		info, err := c.Info(ctx, devices[i].Address)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Debug("bluetooth info failed",
				zap.String("address", devices[i].Address),
				zap.Error(err),
			)
			continue
		}
		devices[i].Connected = info.Connected
		devices[i].Paired = info.Paired
		devices[i].Trusted = info.Trusted
	}
	return devices, nil
}

// Info returns the details of one device.
func (c *Client) Info(ctx context.Context, addr string) (Info, error) {
	if !ValidAddress(addr) {
		return Info{}, ErrInvalidAddress
	}
	res, err := c.runner.Run(ctx, command.New("bluetoothctl", "info", addr))
	if err != nil {
		return Info{}, err
	}
	return ParseInfo(res.Stdout), nil
}

// Connect connects to a paired device.
func (c *Client) Connect(ctx context.Context, addr string) error {
	return c.action(ctx, "connect", addr, phraseConnected)
}

// Disconnect drops the connection to a device.
func (c *Client) Disconnect(ctx context.Context, addr string) error {
	return c.action(ctx, "disconnect", addr, phraseDisconnected)
}

// Pair pairs with a discovered device.
func (c *Client) Pair(ctx context.Context, addr string) error {
	return c.action(ctx, "pair", addr, phrasePaired)
}

// Remove forgets a device.
func (c *Client) Remove(ctx context.Context, addr string) error {
	return c.action(ctx, "remove", addr, phraseRemoved)
}

// SetConnected connects or disconnects addr.
func (c *Client) SetConnected(ctx context.Context, addr string, connected bool) error {
	if connected {
		return c.Connect(ctx, addr)
	}
	return c.Disconnect(ctx, addr)
}

func (c *Client) action(ctx context.Context, verb, addr, phrase string) error {
	if !ValidAddress(addr) {
		return ErrInvalidAddress
	}
	cmd := command.New("bluetoothctl", verb, addr).WithExpect(phrase).Tolerant()
	if _, err := c.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("bluetooth %s %s: %w", verb, addr, err)
	}
	c.logger.Info("bluetooth device action", zap.String("action", verb), zap.String("address", addr))
	return nil
}
