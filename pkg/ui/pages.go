package ui

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/page"
)

// sliderDelay is the quiet period before a slider change is applied.
const sliderDelay = 150 * time.Millisecond

type pages struct {
	app    *app.App
	window *gtk.Window
	logger *zap.Logger
}

func registerPages(a *app.App, window *gtk.Window, logger *zap.Logger) {
	p := &pages{app: a, window: window, logger: logger}
	reg := a.Registry

	reg.Register(page.WiFi, page.BuilderFunc(p.buildWiFi))
	reg.Register(page.Bluetooth, page.BuilderFunc(p.buildBluetooth))
	reg.Register(page.Audio, page.BuilderFunc(p.buildAudio))
	reg.Register(page.Display, page.BuilderFunc(p.buildDisplay))
	reg.Register(page.Security, page.BuilderFunc(p.buildSecurity))
	reg.Register(page.Autostart, page.BuilderFunc(p.buildAutostart))
	reg.Register(page.Appearance, page.BuilderFunc(p.buildAppearance))
	reg.Register(page.Power, page.BuilderFunc(p.buildPower))
	reg.Register(page.About, page.BuilderFunc(p.buildAbout))

	for _, cat := range []page.Category{
		page.Connectivity,
		page.ConfigFiles,
		page.UserPermissions,
		page.DefaultApps,
		page.KeyboardShortcuts,
	} {
		reg.Register(cat, page.BuilderFunc(p.buildStatic))
	}
}

// buildStatic loads a page whose content lives entirely in its UI
// description.
func (p *pages) buildStatic(ctx *page.BuildContext) (page.View, error) {
	_, root, err := loadDescription(ctx.Category, p.app.Config.UIDirs)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (p *pages) load(cat page.Category) (*objects, gtk.Widgetter, error) {
	return loadDescription(cat, p.app.Config.UIDirs)
}
