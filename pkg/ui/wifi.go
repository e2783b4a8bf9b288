package ui

import (
	"context"
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
	"github.com/ravenlinux/raven-settings/pkg/wifi"
)

func (p *pages) buildWiFi(ctx *page.BuildContext) (page.View, error) {
	objs, root, err := p.load(page.WiFi)
	if err != nil {
		return nil, err
	}
	radioSwitch := lookup[*gtk.Switch](objs, "wifi_switch")
	status := lookup[*gtk.Label](objs, "wifi_status")
	refresh := lookup[*gtk.Button](objs, "wifi_refresh_button")
	list := lookup[*gtk.ListBox](objs, "wifi_list")
	if objs.err != nil {
		return nil, objs.err
	}

	client := p.app.WiFi
	var ctrl *page.ListController[wifi.Network]

	connect := func(n wifi.Network, password string) {
		setStatus(status, "Connecting to "+n.SSID+"...")
		task.Do(p.app.Pool, func(ctx context.Context) error {
			return client.Connect(ctx, n.SSID, password)
		}, func(err error) {
			if err != nil {
				setError(status, err)
				return
			}
			setStatus(status, "Connected to "+n.SSID)
			ctrl.Refresh()
		})
	}

	ctrl = page.NewListController(page.ListSpec[wifi.Network]{
		Category: page.WiFi,
		Interval: p.app.Config.Refresh.WiFi,
		Scan:     client.List,
		OnScan:   func() { setStatus(status, "Scanning...") },
		OnError:  func(err error) { setError(status, err) },
		Replace: func(networks []wifi.Network) {
			clearList(list)
			for _, n := range networks {
				list.Append(p.networkRow(n, connect))
			}
			if len(networks) == 0 {
				setStatus(status, "No networks found")
				return
			}
			setStatus(status, fmt.Sprintf("%d networks", len(networks)))
		},
	}, p.app.Pool, p.logger)
	ctx.OnClose(ctrl.Stop)

	radio := page.NewToggle(p.app.Pool, client.SetRadio, radioSwitch.SetActive).
		OnError(func(err error) { setError(status, err) }).
		OnChange(func(on bool) {
			if on {
				ctrl.Refresh()
				return
			}
			clearList(list)
			setStatus(status, "Wi-Fi is off")
		})
	bindSwitch(radioSwitch, radio.Request)
	radio.Load(client.Radio)

	refresh.ConnectClicked(func() {
		ctrl.Refresh()
	})

	ctrl.Start()
	return root, nil
}

func (p *pages) networkRow(n wifi.Network, connect func(wifi.Network, string)) *gtk.ListBoxRow {
	detail := fmt.Sprintf("%s  %d%%", n.SecurityLabel(), n.Signal)
	if n.Active {
		detail = "Connected  " + detail
		return listRow(wifi.SignalIcon(n.Signal), n.SSID, detail, true)
	}

	btn := button("Connect", func() {
		if n.Secured {
			p.passwordDialog(n, connect)
			return
		}
		connect(n, "")
	})
	return listRow(wifi.SignalIcon(n.Signal), n.SSID, detail, false, btn)
}

func (p *pages) passwordDialog(n wifi.Network, connect func(wifi.Network, string)) {
	dialog := gtk.NewDialog()
	dialog.SetTitle("Connect to " + n.SSID)
	dialog.SetTransientFor(p.window)
	dialog.SetModal(true)
	dialog.SetDefaultSize(400, -1)

	content := dialog.ContentArea()
	content.SetMarginTop(16)
	content.SetMarginBottom(16)
	content.SetMarginStart(16)
	content.SetMarginEnd(16)
	content.SetSpacing(12)

	label := gtk.NewLabel("Password for " + n.SSID + ":")
	label.SetHAlign(gtk.AlignStart)
	content.Append(label)

	entry := gtk.NewEntry()
	entry.SetVisibility(false)
	entry.SetPlaceholderText("Enter password...")
	content.Append(entry)

	submit := func() {
		password := entry.Text()
		dialog.Destroy()
		connect(n, password)
	}

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 8)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(16)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() { dialog.Destroy() })
	buttonBox.Append(cancelBtn)

	connectBtn := gtk.NewButtonWithLabel("Connect")
	connectBtn.AddCSSClass("primary")
	connectBtn.ConnectClicked(submit)
	buttonBox.Append(connectBtn)

	content.Append(buttonBox)
	entry.ConnectActivate(submit)

	dialog.Present()
	entry.GrabFocus()
}
