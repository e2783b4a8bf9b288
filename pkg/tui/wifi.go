package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
	"github.com/ravenlinux/raven-settings/pkg/wifi"
)

type wifiPage struct {
	app    *app.App
	ctrl   *page.ListController[wifi.Network]
	radio  *page.Toggle
	on     bool
	cursor cursor
	status status

	networks []wifi.Network
	target   wifi.Network
	password *textinput.Model
}

func buildWiFi(a *app.App) page.Builder {
	return page.BuilderFunc(func(ctx *page.BuildContext) (page.View, error) {
		p := &wifiPage{app: a}
		p.ctrl = page.NewListController(page.ListSpec[wifi.Network]{
			Category: page.WiFi,
			Interval: a.Config.Refresh.WiFi,
			Scan:     a.WiFi.List,
			OnScan:   func() { p.status.set("Scanning...") },
			OnError:  p.status.fail,
			Replace: func(networks []wifi.Network) {
				p.networks = networks
				p.cursor.clamp(len(networks))
				p.status.set(fmt.Sprintf("%d networks", len(networks)))
			},
		}, a.Pool, a.Logger)
		ctx.OnClose(p.ctrl.Stop)

		p.radio = page.NewToggle(a.Pool, a.WiFi.SetRadio, func(on bool) { p.on = on }).
			OnError(p.status.fail).
			OnChange(func(on bool) {
				if on {
					p.ctrl.Refresh()
				}
			})
		p.radio.Load(a.WiFi.Radio)
		p.ctrl.Start()
		return p, nil
	})
}

func (p *wifiPage) Capturing() bool {
	return p.password != nil
}

// newPasswordInput returns a focused, masked single-line input.
func newPasswordInput() *textinput.Model {
	in := textinput.New()
	in.Prompt = "Password: "
	in.Placeholder = "network password"
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.CharLimit = 63
	in.Cursor.Style = activeStyle
	in.Focus()
	return &in
}

func (p *wifiPage) Key(msg tea.KeyMsg) bool {
	if p.password != nil {
		switch msg.Type {
		case tea.KeyEnter:
			pw := p.password.Value()
			p.password = nil
			if pw != "" {
				p.connect(p.target, pw)
			}
		case tea.KeyEsc:
			p.password = nil
		default:
			in, _ := p.password.Update(msg)
			p.password = &in
		}
		return true
	}

	key := msg.String()

	if p.cursor.move(key, len(p.networks)) {
		return true
	}
	switch key {
	case "r":
		p.ctrl.Refresh()
	case "w":
		on := !p.on
		p.on = on
		p.radio.Request(on)
	case "enter":
		if len(p.networks) == 0 {
			return true
		}
		n := p.networks[p.cursor.pos]
		if n.Active {
			return true
		}
		if n.Secured {
			p.target = n
			p.password = newPasswordInput()
			return true
		}
		p.connect(n, "")
	default:
		return false
	}
	return true
}

func (p *wifiPage) connect(n wifi.Network, password string) {
	p.status.set("Connecting to " + n.SSID + "...")
	task.Do(p.app.Pool, func(ctx context.Context) error {
		return p.app.WiFi.Connect(ctx, n.SSID, password)
	}, func(err error) {
		if err != nil {
			p.status.fail(err)
			return
		}
		p.status.set("Connected to " + n.SSID)
		p.ctrl.Refresh()
	})
}

func (p *wifiPage) Render(width int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Wi-Fi") + "  " + onOff(p.on) + "  " + refreshed(p.ctrl.LastRefresh()))
	b.WriteString("\n\n")

	if p.password != nil {
		b.WriteString(fmt.Sprintf("Connect to: %s\n\n", p.target.SSID))
		b.WriteString(p.password.View())
		b.WriteString("\n")
		return b.String()
	}

	if len(p.networks) == 0 {
		b.WriteString("No networks found.\n")
	}
	for i, n := range p.networks {
		lock := "🔓"
		if n.Secured {
			lock = "🔒"
		}
		line := fmt.Sprintf("%s %s %s", signalBars(n.Signal), lock, n.SSID)
		if n.Active {
			line += " (connected)"
		}
		renderRow(&b, i == p.cursor.pos, n.Active, line)
	}
	b.WriteString("\n" + p.status.render())
	return b.String()
}

func (p *wifiPage) Help() string {
	if p.password != nil {
		return "Enter: Connect • Esc: Cancel"
	}
	return "↑/↓: Navigate • Enter: Connect • r: Rescan • w: Radio on/off"
}
