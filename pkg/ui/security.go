package ui

import (
	"context"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/firewall"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

func (p *pages) buildSecurity(ctx *page.BuildContext) (page.View, error) {
	objs, root, err := p.load(page.Security)
	if err != nil {
		return nil, err
	}
	firewallSwitch := lookup[*gtk.Switch](objs, "firewall_switch")
	serviceSwitches := make(map[string]*gtk.Switch, len(firewall.Services))
	for _, svc := range firewall.Services {
		serviceSwitches[svc] = lookup[*gtk.Switch](objs, svc+"_switch")
	}
	portEntry := lookup[*gtk.Entry](objs, "port_entry")
	portSwitch := lookup[*gtk.Switch](objs, "port_switch")
	status := lookup[*gtk.Label](objs, "security_status")
	rules := lookup[*gtk.ListBox](objs, "rules_list")
	if objs.err != nil {
		return nil, objs.err
	}

	client := p.app.Firewall
	pool := p.app.Pool
	showErr := func(err error) { setError(status, err) }

	var current firewall.Status
	var reload func()

	enabled := page.NewToggle(pool, client.SetEnabled, firewallSwitch.SetActive).
		OnError(showErr).
		OnChange(func(bool) { reload() })
	bindSwitch(firewallSwitch, enabled.Request)

	services := make(map[string]*page.Toggle, len(serviceSwitches))
	for svc, sw := range serviceSwitches {
		svc := svc
		services[svc] = page.NewToggle(pool, func(ctx context.Context, on bool) error {
			return client.SetAllowed(ctx, svc, on)
		}, sw.SetActive).OnError(showErr).OnChange(func(bool) { reload() })
		bindSwitch(sw, services[svc].Request)
	}

	var port string
	portToggle := page.NewToggle(pool, func(ctx context.Context, on bool) error {
		return client.SetAllowed(ctx, port, on)
	}, portSwitch.SetActive).OnError(showErr).OnChange(func(bool) { reload() })
	portSwitch.ConnectStateSet(func(state bool) bool {
		if !portToggle.Pending() {
			port = strings.TrimSpace(portEntry.Text())
		}
		portToggle.Request(state)
		return false
	})
	portEntry.ConnectChanged(func() {
		if !portToggle.Pending() {
			portToggle.Init(current.Allowed(strings.TrimSpace(portEntry.Text())))
		}
	})

	reload = func() {
		setStatus(status, "Reading firewall status...")
		task.Submit(pool, client.Status, func(st firewall.Status, err error) {
			if err != nil {
				showErr(err)
				return
			}
			current = st
			if !enabled.Pending() {
				enabled.Init(st.Active)
			}
			for svc, tg := range services {
				if !tg.Pending() {
					tg.Init(st.Allowed(svc))
				}
			}
			clearList(rules)
			for _, r := range st.Rules {
				rules.Append(listRow("", r.To, r.Action+"  from "+r.From, false))
			}
			if st.Active {
				setStatus(status, "Firewall is active")
			} else {
				setStatus(status, "Firewall is inactive")
			}
		})
	}
	reload()

	return root, nil
}
