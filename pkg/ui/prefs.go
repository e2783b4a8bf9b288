package ui

import (
	"context"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/prefs"
	"github.com/ravenlinux/raven-settings/pkg/task"
)

func choiceDropdown[T comparable](choices []prefs.Choice[T], current T, onSelect func(T)) *gtk.DropDown {
	dd := gtk.NewDropDown(gtk.NewStringList(prefs.Labels(choices)), nil)
	dd.SetVAlign(gtk.AlignCenter)
	dd.SetSelected(uint(prefs.Index(choices, current)))
	dd.Connect("notify::selected", func() {
		if idx := dd.Selected(); idx < uint(len(choices)) {
			onSelect(choices[idx].Value)
		}
	})
	return dd
}

func prefSwitch(active bool, onChange func(bool)) *gtk.Switch {
	sw := gtk.NewSwitch()
	sw.SetVAlign(gtk.AlignCenter)
	sw.SetActive(active)
	sw.ConnectStateSet(func(state bool) bool {
		onChange(state)
		return false
	})
	return sw
}

func (p *pages) buildAppearance(*page.BuildContext) (page.View, error) {
	store := p.app.Prefs
	s := store.Get()
	content := newContent("Appearance")

	content.Append(settingRow("Theme", "Choose your preferred color theme",
		choiceDropdown(prefs.Themes, s.Theme, func(v string) {
			store.Update(func(s *prefs.Settings) { s.Theme = v })
		})))

	accentBox := gtk.NewBox(gtk.OrientationHorizontal, 8)
	var swatches []*gtk.Button
	for _, c := range prefs.AccentColors {
		btn := gtk.NewButton()
		btn.SetTooltipText(c.Label)
		btn.AddCSSClass("color-button")
		btn.AddCSSClass(addColorClass(c.Value))
		if c.Value == s.AccentColor {
			btn.AddCSSClass("selected")
		}
		swatches = append(swatches, btn)

		color := c.Value
		btn.ConnectClicked(func() {
			for _, other := range swatches {
				other.RemoveCSSClass("selected")
			}
			btn.AddCSSClass("selected")
			store.Update(func(s *prefs.Settings) { s.AccentColor = color })
		})
		accentBox.Append(btn)
	}
	content.Append(settingRow("Accent Color", "Primary color for highlights and accents", accentBox))

	fontSpin := gtk.NewSpinButton(gtk.NewAdjustment(float64(s.FontSize), 10, 24, 1, 2, 0), 1, 0)
	fontSpin.SetVAlign(gtk.AlignCenter)
	fontSpin.ConnectValueChanged(func() {
		size := int(fontSpin.Value())
		store.Update(func(s *prefs.Settings) { s.FontSize = size })
	})
	content.Append(settingRow("Font Size", "Base font size in pixels", fontSpin))

	opacityScale := gtk.NewScale(gtk.OrientationHorizontal, gtk.NewAdjustment(s.PanelOpacity*100, 0, 100, 5, 10, 0))
	opacityScale.SetSizeRequest(200, -1)
	opacityScale.SetDrawValue(true)
	opacityScale.ConnectValueChanged(func() {
		opacity := opacityScale.Value() / 100
		store.Update(func(s *prefs.Settings) { s.PanelOpacity = opacity })
	})
	content.Append(settingRow("Panel Opacity", "Transparency level for panels", opacityScale))

	content.Append(settingRow("Enable Animations", "Smooth transitions and effects",
		prefSwitch(s.EnableAnimations, func(on bool) {
			store.Update(func(s *prefs.Settings) { s.EnableAnimations = on })
		})))

	content.Append(settingRow("Wallpaper Mode", "How to display the wallpaper",
		choiceDropdown(prefs.WallpaperModes, s.WallpaperMode, func(v string) {
			store.Update(func(s *prefs.Settings) { s.WallpaperMode = v })
		})))

	content.Append(settingRow("Show Desktop Icons", "Display icons on the desktop",
		prefSwitch(s.ShowDesktopIcons, func(on bool) {
			store.Update(func(s *prefs.Settings) { s.ShowDesktopIcons = on })
		})))

	return content, nil
}

func (p *pages) buildPower(*page.BuildContext) (page.View, error) {
	store := p.app.Prefs
	s := store.Get()
	content := newContent("Power")

	content.Append(settingRow("Screen Timeout", "Turn off screen after inactivity",
		choiceDropdown(prefs.ScreenTimeouts, s.ScreenTimeout, func(v int) {
			store.Update(func(s *prefs.Settings) { s.ScreenTimeout = v })
		})))

	content.Append(settingRow("Suspend Timeout", "Suspend system after inactivity",
		choiceDropdown(prefs.SuspendTimeouts, s.SuspendTimeout, func(v int) {
			store.Update(func(s *prefs.Settings) { s.SuspendTimeout = v })
		})))

	content.Append(settingRow("Lid Close Action", "Action when laptop lid is closed",
		choiceDropdown(prefs.LidCloseActions, s.LidCloseAction, func(v string) {
			store.Update(func(s *prefs.Settings) { s.LidCloseAction = v })
		})))

	content.Append(settingRow("Mute on Lock", "Silence audio when the screen locks",
		prefSwitch(s.MuteOnLock, func(on bool) {
			store.Update(func(s *prefs.Settings) { s.MuteOnLock = on })
		})))

	return content, nil
}

func (p *pages) buildAbout(ctx *page.BuildContext) (page.View, error) {
	content := gtk.NewBox(gtk.OrientationVertical, 16)
	content.SetMarginStart(40)
	content.SetMarginEnd(40)
	content.SetMarginTop(40)
	content.SetMarginBottom(40)
	content.SetHAlign(gtk.AlignCenter)

	logo := gtk.NewLabel("RAVEN")
	logo.AddCSSClass("about-logo")
	content.Append(logo)

	title := gtk.NewLabel("Raven Linux")
	title.AddCSSClass("about-title")
	title.SetMarginTop(16)
	content.Append(title)

	infoBox := gtk.NewBox(gtk.OrientationVertical, 8)
	infoBox.SetMarginTop(32)
	content.Append(infoBox)

	addInfoRow := func(label, value string) {
		if value == "" {
			return
		}
		row := gtk.NewBox(gtk.OrientationHorizontal, 12)
		row.SetHAlign(gtk.AlignCenter)

		labelWidget := gtk.NewLabel(label + ":")
		labelWidget.AddCSSClass("setting-description")
		row.Append(labelWidget)

		valueWidget := gtk.NewLabel(value)
		valueWidget.AddCSSClass("setting-label")
		row.Append(valueWidget)

		infoBox.Append(row)
	}

	info := task.Submit(p.app.Pool, func(ctx context.Context) (app.SystemInfo, error) {
		return p.app.SystemInfo(ctx), nil
	}, func(info app.SystemInfo, _ error) {
		addInfoRow("Operating System", info.OS)
		addInfoRow("Hostname", info.Hostname)
		addInfoRow("Kernel", info.Kernel)
		addInfoRow("Desktop", info.Desktop)
		addInfoRow("Session", info.Session)
	})
	ctx.OnClose(info.Cancel)

	linksBox := gtk.NewBox(gtk.OrientationHorizontal, 16)
	linksBox.SetHAlign(gtk.AlignCenter)
	linksBox.SetMarginTop(32)
	for _, link := range []struct{ label, url string }{
		{"Website", app.WebsiteURL},
		{"Documentation", app.DocsURL},
	} {
		url := link.url
		linksBox.Append(button(link.label, func() {
			task.Do(p.app.Pool, func(ctx context.Context) error {
				return p.app.OpenURL(ctx, url)
			}, nil)
		}))
	}
	content.Append(linksBox)

	return content, nil
}
