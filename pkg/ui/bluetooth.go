package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/bluetooth"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

func (p *pages) buildBluetooth(ctx *page.BuildContext) (page.View, error) {
	objs, root, err := p.load(page.Bluetooth)
	if err != nil {
		return nil, err
	}
	powerSwitch := lookup[*gtk.Switch](objs, "bluetooth_switch")
	discoverableSwitch := lookup[*gtk.Switch](objs, "discoverable_switch")
	scanButton := lookup[*gtk.Button](objs, "bluetooth_scan_button")
	status := lookup[*gtk.Label](objs, "bluetooth_status")
	list := lookup[*gtk.ListBox](objs, "bluetooth_list")
	if objs.err != nil {
		return nil, objs.err
	}

	client := p.app.Bluetooth
	showErr := func(err error) { setError(status, err) }

	var ctrl *page.ListController[bluetooth.Device]
	ctrl = page.NewListController(page.ListSpec[bluetooth.Device]{
		Category: page.Bluetooth,
		Interval: p.app.Config.Refresh.Bluetooth,
		Scan:     client.Devices,
		OnError:  showErr,
		Replace: func(devices []bluetooth.Device) {
			clearList(list)
			for _, d := range devices {
				list.Append(p.deviceRow(d, status, func() { ctrl.Refresh() }))
			}
			if len(devices) == 0 {
				setStatus(status, "No devices")
				return
			}
			setStatus(status, fmt.Sprintf("%d devices", len(devices)))
		},
	}, p.app.Pool, p.logger)
	ctx.OnClose(ctrl.Stop)

	power := page.NewToggle(p.app.Pool, client.SetPower, powerSwitch.SetActive).
		OnError(showErr).
		OnChange(func(bool) { ctrl.Refresh() })
	bindSwitch(powerSwitch, power.Request)
	power.Load(client.Powered)

	discoverable := page.NewToggle(p.app.Pool, client.SetDiscoverable, discoverableSwitch.SetActive).
		OnError(showErr)
	bindSwitch(discoverableSwitch, discoverable.Request)
	discoverable.Load(client.Discoverable)

	var scan *task.Task
	scanButton.ConnectClicked(func() {
		scanButton.SetSensitive(false)
		setStatus(status, "Scanning for devices...")
		scan = task.Do(p.app.Pool, client.Discover, func(err error) {
			scan = nil
			scanButton.SetSensitive(true)
			if err != nil {
				showErr(err)
				return
			}
			ctrl.Refresh()
		})
	})
	ctx.OnClose(func() {
		if scan != nil {
			scan.Cancel()
			task.Do(p.app.Pool, client.StopDiscovery, nil)
		}
	})

	ctrl.Start()
	return root, nil
}

func (p *pages) deviceRow(d bluetooth.Device, status *gtk.Label, refresh func()) *gtk.ListBoxRow {
	var flags []string
	if d.Connected {
		flags = append(flags, "Connected")
	}
	if d.Paired {
		flags = append(flags, "Paired")
	}
	if d.Trusted {
		flags = append(flags, "Trusted")
	}
	detail := d.Address
	if len(flags) > 0 {
		detail += "  " + strings.Join(flags, ", ")
	}

	run := func(label string, action func(context.Context, string) error) func() {
		return func() {
			setStatus(status, label+" "+d.Name+"...")
			task.Do(p.app.Pool, func(ctx context.Context) error {
				return action(ctx, d.Address)
			}, func(err error) {
				if err != nil {
					setError(status, err)
					return
				}
				refresh()
			})
		}
	}

	client := p.app.Bluetooth
	var controls []gtk.Widgetter
	if d.Paired {
		connSwitch := gtk.NewSwitch()
		connSwitch.SetVAlign(gtk.AlignCenter)
		conn := page.NewToggle(p.app.Pool, func(ctx context.Context, on bool) error {
			return client.SetConnected(ctx, d.Address, on)
		}, connSwitch.SetActive).
			OnError(func(err error) { setError(status, err) }).
			OnChange(func(bool) { refresh() })
		conn.Init(d.Connected)
		bindSwitch(connSwitch, conn.Request)
		controls = append(controls, connSwitch)
	} else {
		controls = append(controls, button("Pair", run("Pairing", client.Pair)))
	}

	remove := button("Remove", run("Removing", client.Remove))
	remove.AddCSSClass("destructive")
	controls = append(controls, remove)

	return listRow(d.Icon(), d.Name, detail, d.Connected, controls...)
}
