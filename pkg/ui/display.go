package ui

import (
	"context"
	"path/filepath"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/display"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/prefs"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

func (p *pages) buildDisplay(ctx *page.BuildContext) (page.View, error) {
	objs, root, err := p.load(page.Display)
	if err != nil {
		return nil, err
	}
	resolutions := lookup[*gtk.DropDown](objs, "resolution_dropdown")
	applyButton := lookup[*gtk.Button](objs, "apply_resolution_button")
	brightness := lookup[*gtk.Scale](objs, "brightness_scale")
	wallpaperButton := lookup[*gtk.Button](objs, "wallpaper_button")
	wallpaperLabel := lookup[*gtk.Label](objs, "wallpaper_label")
	status := lookup[*gtk.Label](objs, "display_status")
	if objs.err != nil {
		return nil, objs.err
	}

	client := p.app.Display
	pool := p.app.Pool

	var modes []display.Mode
	applyButton.SetSensitive(false)
	modesTask := task.Submit(pool, client.Modes, func(got []display.Mode, err error) {
		if err != nil {
			setError(status, err)
			return
		}
		modes = got
		labels := make([]string, len(modes))
		for i, m := range modes {
			labels[i] = m.Output + ": " + m.Label()
		}
		dropdownLabels(resolutions, labels)
		for i, m := range modes {
			if m.Current {
				resolutions.SetSelected(uint(i))
				break
			}
		}
		applyButton.SetSensitive(len(modes) > 0)
	})
	ctx.OnClose(modesTask.Cancel)

	applyButton.ConnectClicked(func() {
		idx := resolutions.Selected()
		if idx >= uint(len(modes)) {
			return
		}
		m := modes[idx]
		setStatus(status, "Applying "+m.Label()+"...")
		task.Do(pool, func(ctx context.Context) error {
			return client.Apply(ctx, m)
		}, func(err error) {
			if err != nil {
				setError(status, err)
				return
			}
			setStatus(status, m.Output+" set to "+m.Label())
		})
	})

	loading := true
	brightness.SetRange(1, 100)
	debounce := task.NewDebouncer(sliderDelay)
	ctx.OnClose(debounce.Cancel)
	brightness.ConnectValueChanged(func() {
		if loading {
			return
		}
		v := int(brightness.Value())
		debounce.Trigger(func() {
			task.Do(pool, func(ctx context.Context) error {
				return client.SetBrightness(ctx, v)
			}, func(err error) {
				if err != nil {
					setError(status, err)
				}
			})
		})
	})
	brightnessTask := task.Submit(pool, client.Brightness, func(v int, err error) {
		if err != nil {
			brightness.SetSensitive(false)
			p.logger.Debug("brightness unavailable")
			return
		}
		brightness.SetValue(float64(v))
		loading = false
	})
	ctx.OnClose(brightnessTask.Cancel)

	if current := p.app.Prefs.Get().WallpaperPath; current != "" {
		wallpaperLabel.SetText(filepath.Base(current))
	}
	wallpaperButton.ConnectClicked(func() {
		p.chooseImage("Select Wallpaper", func(path string) {
			setStatus(status, "Setting wallpaper...")
			task.Do(pool, func(ctx context.Context) error {
				return client.SetWallpaper(ctx, path)
			}, func(err error) {
				if err != nil {
					setError(status, err)
					return
				}
				wallpaperLabel.SetText(filepath.Base(path))
				p.app.Prefs.Update(func(s *prefs.Settings) { s.WallpaperPath = path })
				setStatus(status, "Wallpaper updated")
			})
		})
	})

	return root, nil
}

// chooseImage opens a native file chooser filtered to images.
func (p *pages) chooseImage(title string, onSelect func(path string)) {
	p.chooseFile(title, []string{"image/png", "image/jpeg", "image/webp"}, onSelect)
}

func (p *pages) chooseFile(title string, mimeTypes []string, onSelect func(path string)) {
	dialog := gtk.NewFileChooserNative(
		title,
		p.window,
		gtk.FileChooserActionOpen,
		"Select",
		"Cancel",
	)

	if len(mimeTypes) > 0 {
		filter := gtk.NewFileFilter()
		filter.SetName("Images")
		for _, mt := range mimeTypes {
			filter.AddMIMEType(mt)
		}
		dialog.AddFilter(filter)
	}

	dialog.ConnectResponse(func(response int) {
		if response == int(gtk.ResponseAccept) {
			if file := dialog.File(); file != nil {
				if path := file.Path(); path != "" {
					onSelect(path)
				}
			}
		}
	})
	dialog.Show()
}
