package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/display"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

// brightnessStep is the change applied by one +/- key press.
const brightnessStep = 10

type displayPage struct {
	app        *app.App
	modes      []display.Mode
	brightness int
	cursor     cursor
	status     status
}

func buildDisplay(a *app.App) page.Builder {
	return page.BuilderFunc(func(ctx *page.BuildContext) (page.View, error) {
		p := &displayPage{app: a, brightness: -1}
		modes := task.Submit(a.Pool, a.Display.Modes, func(modes []display.Mode, err error) {
			if err != nil {
				p.status.fail(err)
				return
			}
			p.modes = modes
			for i, m := range modes {
				if m.Current {
					p.cursor.pos = i
				}
			}
		})
		ctx.OnClose(modes.Cancel)
		task.Submit(a.Pool, a.Display.Brightness, func(v int, err error) {
			if err == nil {
				p.brightness = v
			}
		})
		return p, nil
	})
}

func (p *displayPage) Capturing() bool { return false }

func (p *displayPage) Key(msg tea.KeyMsg) bool {
	key := msg.String()
	if p.cursor.move(key, len(p.modes)) {
		return true
	}
	client := p.app.Display
	switch key {
	case "enter":
		if len(p.modes) == 0 {
			return true
		}
		idx := p.cursor.pos
		m := p.modes[idx]
		p.status.set("Applying " + m.Label() + "...")
		task.Do(p.app.Pool, func(ctx context.Context) error {
			return client.Apply(ctx, m)
		}, func(err error) {
			if err != nil {
				p.status.fail(err)
				return
			}
			for i := range p.modes {
				if p.modes[i].Output == m.Output {
					p.modes[i].Current = i == idx
				}
			}
			p.status.set(m.Output + " set to " + m.Label())
		})
	case "+", "=", "-":
		if p.brightness < 0 {
			return true
		}
		v := p.brightness + brightnessStep
		if key == "-" {
			v = p.brightness - brightnessStep
		}
		v = min(max(v, 1), 100)
		task.Do(p.app.Pool, func(ctx context.Context) error {
			return client.SetBrightness(ctx, v)
		}, func(err error) {
			if err != nil {
				p.status.fail(err)
				return
			}
			p.brightness = v
		})
	default:
		return false
	}
	return true
}

func (p *displayPage) Render(width int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Display") + "  " + statusStyle.Render(string(p.app.Display.Session())))
	b.WriteString("\n\n")

	if p.brightness >= 0 {
		b.WriteString(fmt.Sprintf("Brightness: %d%%\n\n", p.brightness))
	}
	if len(p.modes) == 0 {
		b.WriteString("No display modes.\n")
	}
	for i, m := range p.modes {
		line := fmt.Sprintf("%-10s %s", m.Output, m.Label())
		if m.Current {
			line += " (current)"
		}
		renderRow(&b, i == p.cursor.pos, m.Current, line)
	}
	b.WriteString("\n" + p.status.render())
	return b.String()
}

func (p *displayPage) Help() string {
	return "↑/↓: Navigate • Enter: Apply mode • +/-: Brightness"
}
