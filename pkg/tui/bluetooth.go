package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/bluetooth"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

type bluetoothPage struct {
	app      *app.App
	ctrl     *page.ListController[bluetooth.Device]
	power    *page.Toggle
	powered  bool
	scanning bool
	devices  []bluetooth.Device
	cursor   cursor
	status   status
}

func buildBluetooth(a *app.App) page.Builder {
	return page.BuilderFunc(func(ctx *page.BuildContext) (page.View, error) {
		p := &bluetoothPage{app: a}
		p.ctrl = page.NewListController(page.ListSpec[bluetooth.Device]{
			Category: page.Bluetooth,
			Interval: a.Config.Refresh.Bluetooth,
			Scan:     a.Bluetooth.Devices,
			OnError:  p.status.fail,
			Replace: func(devices []bluetooth.Device) {
				p.devices = devices
				p.cursor.clamp(len(devices))
			},
		}, a.Pool, a.Logger)
		ctx.OnClose(p.ctrl.Stop)

		p.power = page.NewToggle(a.Pool, a.Bluetooth.SetPower, func(on bool) { p.powered = on }).
			OnError(p.status.fail).
			OnChange(func(bool) { p.ctrl.Refresh() })
		p.power.Load(a.Bluetooth.Powered)
		p.ctrl.Start()
		return p, nil
	})
}

func (p *bluetoothPage) Capturing() bool { return false }

func (p *bluetoothPage) Key(msg tea.KeyMsg) bool {
	key := msg.String()
	if p.cursor.move(key, len(p.devices)) {
		return true
	}
	client := p.app.Bluetooth
	switch key {
	case "b":
		on := !p.powered
		p.powered = on
		p.power.Request(on)
	case "s":
		if p.scanning {
			return true
		}
		p.scanning = true
		p.status.set("Scanning for devices...")
		task.Do(p.app.Pool, client.Discover, func(err error) {
			p.scanning = false
			if err != nil {
				p.status.fail(err)
				return
			}
			p.status.set("Scan finished")
			p.ctrl.Refresh()
		})
	case "enter":
		p.act("Toggling", func(ctx context.Context, d bluetooth.Device) error {
			return client.SetConnected(ctx, d.Address, !d.Connected)
		})
	case "p":
		p.act("Pairing", func(ctx context.Context, d bluetooth.Device) error {
			return client.Pair(ctx, d.Address)
		})
	case "x":
		p.act("Removing", func(ctx context.Context, d bluetooth.Device) error {
			return client.Remove(ctx, d.Address)
		})
	default:
		return false
	}
	return true
}

func (p *bluetoothPage) act(label string, fn func(context.Context, bluetooth.Device) error) {
	if len(p.devices) == 0 {
		return
	}
	d := p.devices[p.cursor.pos]
	p.status.set(label + " " + d.Name + "...")
	task.Do(p.app.Pool, func(ctx context.Context) error {
		return fn(ctx, d)
	}, func(err error) {
		if err != nil {
			p.status.fail(err)
			return
		}
		p.status.set("Done")
		p.ctrl.Refresh()
	})
}

func (p *bluetoothPage) Render(width int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Bluetooth") + "  " + onOff(p.powered) + "  " + refreshed(p.ctrl.LastRefresh()))
	b.WriteString("\n\n")

	if len(p.devices) == 0 {
		b.WriteString("No devices.\n")
	}
	for i, d := range p.devices {
		var flags []string
		if d.Connected {
			flags = append(flags, "connected")
		}
		if d.Paired {
			flags = append(flags, "paired")
		}
		line := fmt.Sprintf("%-24s %s", d.Name, d.Address)
		if len(flags) > 0 {
			line += " (" + strings.Join(flags, ", ") + ")"
		}
		renderRow(&b, i == p.cursor.pos, d.Connected, line)
	}
	b.WriteString("\n" + p.status.render())
	return b.String()
}

func (p *bluetoothPage) Help() string {
	return "↑/↓: Navigate • Enter: Connect/Disconnect • p: Pair • x: Remove • s: Scan • b: Power"
}
