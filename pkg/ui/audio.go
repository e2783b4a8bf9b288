package ui

import (
	"context"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/audio"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

// deviceSelector keeps a dropdown in sync with a device list.
type deviceSelector struct {
	dropdown *gtk.DropDown
	devices  []audio.Device
	updating bool
}

func (s *deviceSelector) set(devices []audio.Device) {
	labels := make([]string, len(devices))
	for i, d := range devices {
		labels[i] = d.Label()
	}
	s.updating = true
	s.devices = devices
	dropdownLabels(s.dropdown, labels)
	if i := audio.DefaultIndex(devices); i >= 0 {
		s.dropdown.SetSelected(uint(i))
	}
	s.updating = false
}

func (s *deviceSelector) selected() (audio.Device, bool) {
	if s.updating {
		return audio.Device{}, false
	}
	idx := s.dropdown.Selected()
	if idx >= uint(len(s.devices)) {
		return audio.Device{}, false
	}
	return s.devices[idx], true
}

func (p *pages) buildAudio(ctx *page.BuildContext) (page.View, error) {
	objs, root, err := p.load(page.Audio)
	if err != nil {
		return nil, err
	}
	outputDropdown := lookup[*gtk.DropDown](objs, "output_dropdown")
	outputVolume := lookup[*gtk.Scale](objs, "output_volume")
	inputDropdown := lookup[*gtk.DropDown](objs, "input_dropdown")
	inputVolume := lookup[*gtk.Scale](objs, "input_volume")
	muteButton := lookup[*gtk.Button](objs, "mute_button")
	testButton := lookup[*gtk.Button](objs, "test_sound_button")
	status := lookup[*gtk.Label](objs, "audio_status")
	if objs.err != nil {
		return nil, objs.err
	}

	client := p.app.Audio
	pool := p.app.Pool
	report := func(err error) {
		if err != nil {
			setError(status, err)
		}
	}

	outputs := &deviceSelector{dropdown: outputDropdown}
	inputs := &deviceSelector{dropdown: inputDropdown}
	loading := true

	for _, sel := range []struct {
		kind audio.Kind
		s    *deviceSelector
	}{{audio.Sink, outputs}, {audio.Source, inputs}} {
		kind, s := sel.kind, sel.s
		s.dropdown.Connect("notify::selected", func() {
			d, ok := s.selected()
			if !ok {
				return
			}
			task.Do(pool, func(ctx context.Context) error {
				return client.SetDefault(ctx, kind, d.Name)
			}, func(err error) {
				if err != nil {
					setError(status, err)
					return
				}
				setStatus(status, "Using "+d.Label())
			})
		})
	}

	for _, sl := range []struct {
		kind  audio.Kind
		scale *gtk.Scale
	}{{audio.Sink, outputVolume}, {audio.Source, inputVolume}} {
		kind, scale := sl.kind, sl.scale
		scale.SetRange(0, audio.MaxVolume)
		debounce := task.NewDebouncer(sliderDelay)
		ctx.OnClose(debounce.Cancel)
		scale.ConnectValueChanged(func() {
			if loading {
				return
			}
			v := int(scale.Value())
			debounce.Trigger(func() {
				task.Do(pool, func(ctx context.Context) error {
					return client.SetVolume(ctx, kind, v)
				}, report)
			})
		})
	}

	muteButton.ConnectClicked(func() {
		task.Do(pool, func(ctx context.Context) error {
			return client.ToggleMute(ctx, audio.Sink)
		}, report)
	})
	testButton.ConnectClicked(func() {
		task.Do(pool, client.PlayTestSound, report)
	})

	setStatus(status, "Loading devices...")
	snapshot := task.Submit(pool, client.Snapshot, func(s audio.Snapshot, err error) {
		defer func() { loading = false }()
		if err != nil {
			setError(status, err)
			return
		}
		outputs.set(s.Sinks)
		inputs.set(s.Sources)
		outputVolume.SetValue(float64(s.SinkVolume))
		inputVolume.SetValue(float64(s.SourceVolume))
		setStatus(status, "")
	})
	ctx.OnClose(snapshot.Cancel)

	return root, nil
}
