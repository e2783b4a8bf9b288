package ui

import (
	"context"
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/autostart"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

func (p *pages) buildAutostart(ctx *page.BuildContext) (page.View, error) {
	objs, root, err := p.load(page.Autostart)
	if err != nil {
		return nil, err
	}
	list := lookup[*gtk.ListBox](objs, "autostart_list")
	addApp := lookup[*gtk.Button](objs, "add_app_button")
	addCustom := lookup[*gtk.Button](objs, "add_custom_button")
	status := lookup[*gtk.Label](objs, "autostart_status")
	if objs.err != nil {
		return nil, objs.err
	}

	manager := p.app.Autostart
	pool := p.app.Pool

	var ctrl *page.ListController[autostart.Entry]
	ctrl = page.NewListController(page.ListSpec[autostart.Entry]{
		Category: page.Autostart,
		Scan: func(context.Context) ([]autostart.Entry, error) {
			if err := manager.Ensure(); err != nil {
				return nil, err
			}
			return manager.Entries()
		},
		OnError: func(err error) { setError(status, err) },
		Replace: func(entries []autostart.Entry) {
			clearList(list)
			for _, e := range entries {
				list.Append(p.autostartRow(e, status))
			}
			if len(entries) == 0 {
				setStatus(status, "No applications start automatically")
				return
			}
			setStatus(status, fmt.Sprintf("%d applications start at login", len(entries)))
		},
	}, pool, p.logger)
	ctx.OnClose(ctrl.Stop)

	add := func(cmd string) {
		task.Do(pool, func(context.Context) error {
			return manager.Add(cmd)
		}, func(err error) {
			if err != nil {
				setError(status, err)
				return
			}
			ctrl.Refresh()
		})
	}

	addApp.ConnectClicked(func() {
		p.chooseFile("Select Application", nil, func(path string) {
			add(autostart.QuotePath(path))
		})
	})
	addCustom.ConnectClicked(func() {
		p.commandDialog(add)
	})

	ctrl.Start()
	return root, nil
}

// autostartRow shows one entry with a switch. Turning it off removes the
// line from the script; turning it back on re-adds it.
func (p *pages) autostartRow(e autostart.Entry, status *gtk.Label) *gtk.ListBoxRow {
	sw := gtk.NewSwitch()
	sw.SetVAlign(gtk.AlignCenter)
	tg := page.NewToggle(p.app.Pool, func(_ context.Context, on bool) error {
		return p.app.Autostart.SetEnabled(e.Command, on)
	}, sw.SetActive).OnError(func(err error) { setError(status, err) })
	tg.Init(true)
	bindSwitch(sw, tg.Request)

	return listRow("system-run-symbolic", e.Name, e.Command, false, sw)
}

func (p *pages) commandDialog(onAdd func(cmd string)) {
	dialog := gtk.NewDialog()
	dialog.SetTitle("Add Custom Command")
	dialog.SetTransientFor(p.window)
	dialog.SetModal(true)
	dialog.SetDefaultSize(460, -1)

	content := dialog.ContentArea()
	content.SetMarginTop(16)
	content.SetMarginBottom(16)
	content.SetMarginStart(16)
	content.SetMarginEnd(16)
	content.SetSpacing(12)

	label := gtk.NewLabel("Command to run at login:")
	label.SetHAlign(gtk.AlignStart)
	content.Append(label)

	entry := gtk.NewEntry()
	entry.SetPlaceholderText("e.g. nm-applet --indicator")
	content.Append(entry)

	hint := gtk.NewLabel("The command runs in the background when the session starts.")
	hint.AddCSSClass("setting-description")
	hint.SetHAlign(gtk.AlignStart)
	content.Append(hint)

	submit := func() {
		cmd := entry.Text()
		dialog.Destroy()
		if cmd != "" {
			onAdd(cmd)
		}
	}

	buttonBox := gtk.NewBox(gtk.OrientationHorizontal, 8)
	buttonBox.SetHAlign(gtk.AlignEnd)
	buttonBox.SetMarginTop(16)

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() { dialog.Destroy() })
	buttonBox.Append(cancelBtn)

	addBtn := gtk.NewButtonWithLabel("Add")
	addBtn.AddCSSClass("primary")
	addBtn.ConnectClicked(submit)
	buttonBox.Append(addBtn)

	content.Append(buttonBox)
	entry.ConnectActivate(submit)

	dialog.Present()
	entry.GrabFocus()
}
