package wifi

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/logging"
)

// Client runs nmcli through a command.Runner.
type Client struct {
	runner command.Runner
	logger *zap.Logger
}

// NewClient creates a Wi-Fi client.
func NewClient(runner command.Runner, logger *zap.Logger) *Client {
	return &Client{runner: runner, logger: logging.OrNop(logger)}
}

// Rescan asks NetworkManager to refresh its scan results.
func (c *Client) Rescan(ctx context.Context) error {
	_, err := c.runner.Run(ctx, command.New("nmcli", "device", "wifi", "rescan"))
	return err
}

// List rescans and returns the visible networks, deduplicated by SSID with
// the connected network marked active. A failed rescan is logged and the
// cached results are listed anyway; NetworkManager refuses rescans issued
// shortly after a previous one.
func (c *Client) List(ctx context.Context) ([]Network, error) {
	if err := c.Rescan(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		c.logger.Debug("wifi rescan failed", zap.Error(err))
	}

	res, err := c.runner.Run(ctx, command.New("nmcli", "-t", "-f", "SSID,SIGNAL,SECURITY", "device", "wifi", "list"))
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	networks := ParseNetworks(res.Stdout)

	if active, ok, err := c.Current(ctx); err == nil && ok {
		for i := range networks {
			if networks[i].SSID == active {
				networks[i].Active = true
			}
		}
	}
	return Dedupe(networks), nil
}

// Radio reports whether the Wi-Fi radio is enabled.
func (c *Client) Radio(ctx context.Context) (bool, error) {
	res, err := c.runner.Run(ctx, command.New("nmcli", "radio", "wifi"))
	if err != nil {
		return false, err
	}
	return ParseRadio(res.Stdout), nil
}

// SetRadio switches the Wi-Fi radio on or off.
func (c *Client) SetRadio(ctx context.Context, on bool) error {
	state := "off"
	if on {
		state = "on"
	}
	_, err := c.runner.Run(ctx, command.New("nmcli", "radio", "wifi", state))
	return err
}

// Connect joins ssid, passing password when it is non-empty.
func (c *Client) Connect(ctx context.Context, ssid, password string) error {
	if ssid == "" {
		return ErrEmptySSID
	}
	args := []string{"device", "wifi", "connect", ssid}
	if password != "" {
		args = append(args, "password", password)
	}
	cmd := command.New("nmcli", args...).WithSecret(password)
	if _, err := c.runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", ssid, err)
	}
	c.logger.Info("connected to wifi network", zap.String("ssid", ssid))
	return nil
}

// Current returns the SSID of the active connection.
func (c *Client) Current(ctx context.Context) (string, bool, error) {
	res, err := c.runner.Run(ctx, command.New("nmcli", "-t", "-f", "active,ssid", "dev", "wifi"))
	if err != nil {
		return "", false, err
	}
	ssid, ok := ParseActive(res.Stdout)
	return ssid, ok, nil
}
