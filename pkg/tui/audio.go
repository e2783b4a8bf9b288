package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/audio"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

// volumeStep is the change applied by one +/- key press.
const volumeStep = 5

type audioPage struct {
	app      *app.App
	snapshot audio.Snapshot
	devices  []audio.Device
	cursor   cursor
	status   status
	loaded   bool
}

func buildAudio(a *app.App) page.Builder {
	return page.BuilderFunc(func(ctx *page.BuildContext) (page.View, error) {
		p := &audioPage{app: a}
		p.reload()
		return p, nil
	})
}

func (p *audioPage) reload() {
	task.Submit(p.app.Pool, p.app.Audio.Snapshot, func(s audio.Snapshot, err error) {
		if err != nil {
			p.status.fail(err)
			return
		}
		p.loaded = true
		p.snapshot = s
		p.devices = append(append([]audio.Device(nil), s.Sinks...), s.Sources...)
		p.cursor.clamp(len(p.devices))
	})
}

func (p *audioPage) Capturing() bool { return false }

func (p *audioPage) Key(msg tea.KeyMsg) bool {
	key := msg.String()
	if p.cursor.move(key, len(p.devices)) {
		return true
	}
	client := p.app.Audio
	switch key {
	case "enter":
		if len(p.devices) == 0 {
			return true
		}
		d := p.devices[p.cursor.pos]
		p.run("Using "+d.Label(), func(ctx context.Context) error {
			return client.SetDefault(ctx, d.Kind, d.Name)
		})
	case "+", "=", "-":
		kind := audio.Sink
		if len(p.devices) > 0 {
			kind = p.devices[p.cursor.pos].Kind
		}
		delta := volumeStep
		if key == "-" {
			delta = -volumeStep
		}
		v := p.snapshot.SinkVolume
		if kind == audio.Source {
			v = p.snapshot.SourceVolume
		}
		v = audio.ClampVolume(v + delta)
		p.run(fmt.Sprintf("Volume %d%%", v), func(ctx context.Context) error {
			return client.SetVolume(ctx, kind, v)
		})
	case "m":
		p.run("Mute toggled", func(ctx context.Context) error {
			return client.ToggleMute(ctx, audio.Sink)
		})
	case "t":
		p.run("Played test sound", client.PlayTestSound)
	case "r":
		p.reload()
	default:
		return false
	}
	return true
}

func (p *audioPage) run(done string, fn func(context.Context) error) {
	task.Do(p.app.Pool, fn, func(err error) {
		if err != nil {
			p.status.fail(err)
			return
		}
		p.status.set(done)
		p.reload()
	})
}

func (p *audioPage) Render(width int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Sound"))
	b.WriteString("\n\n")
	if !p.loaded {
		b.WriteString("Loading devices...\n")
		b.WriteString("\n" + p.status.render())
		return b.String()
	}

	for i, d := range p.devices {
		if i == 0 || d.Kind != p.devices[i-1].Kind {
			heading := fmt.Sprintf("Output  %d%%", p.snapshot.SinkVolume)
			if d.Kind == audio.Source {
				heading = fmt.Sprintf("Input  %d%%", p.snapshot.SourceVolume)
			}
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(sectionStyle.Render(heading) + "\n")
		}
		line := d.Label()
		if d.Default {
			line += " (default)"
		}
		renderRow(&b, i == p.cursor.pos, d.Default, line)
	}
	b.WriteString("\n" + p.status.render())
	return b.String()
}

func (p *audioPage) Help() string {
	return "↑/↓: Navigate • Enter: Set default • +/-: Volume • m: Mute • t: Test sound • r: Reload"
}
