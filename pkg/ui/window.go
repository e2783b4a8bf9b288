// Package ui is the GTK 4 frontend: the main window, the page stack and
// the builders of every settings page.
package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/config"
	"github.com/ravenlinux/raven-settings/pkg/logging"
	"github.com/ravenlinux/raven-settings/pkg/nav"
)

// ApplicationID is the GTK application identifier.
const ApplicationID = "org.ravenlinux.settings"

const defaultSubtitle = "Configure your Raven desktop environment"

// Window is the settings window: a header, the category sidebar and the
// page stack.
type Window struct {
	app      *app.App
	gtkApp   *gtk.Application
	window   *gtk.Window
	host     *StackHost
	sidebar  *gtk.ListBox
	subtitle *gtk.Label
	logger   *zap.Logger

	selecting bool
}

// NewWindow creates the application context and the window for gtkApp.
func NewWindow(gtkApp *gtk.Application, cfg *config.Config, logger *zap.Logger) (*Window, error) {
	logger = logging.OrNop(logger)
	host := NewStackHost()

	a, err := app.New(app.Options{
		Config: cfg,
		Logger: logger,
		Loop:   Loop{},
		Host:   host,
	})
	if err != nil {
		return nil, err
	}

	w := &Window{
		app:    a,
		gtkApp: gtkApp,
		host:   host,
		logger: logger.Named("ui"),
	}

	w.window = gtk.NewWindow()
	w.window.SetTitle("Raven Settings")
	w.window.SetDefaultSize(cfg.Window.Width, cfg.Window.Height)
	w.window.SetDecorated(!cfg.Window.LayerShell)

	applyCSS()
	registerPages(a, w.window, w.logger)
	w.window.SetChild(w.createUI())

	if cfg.Window.LayerShell {
		initLayerShell(w.window)
	}

	keyController := gtk.NewEventControllerKey()
	keyController.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		if keyval == gdk.KEY_Escape {
			w.window.Close()
			return true
		}
		return false
	})
	w.window.AddController(keyController)

	w.window.ConnectCloseRequest(func() bool {
		w.app.Close()
		return false
	})
	w.window.SetApplication(gtkApp)
	return w, nil
}

// Present shows the window.
func (w *Window) Present() {
	w.window.Present()
}

func (w *Window) createUI() *gtk.Box {
	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)
	mainBox.Append(w.createHeader())

	contentBox := gtk.NewBox(gtk.OrientationHorizontal, 0)
	contentBox.SetVExpand(true)
	contentBox.Append(w.createSidebar())
	contentBox.Append(w.host.Stack())
	mainBox.Append(contentBox)

	glib.IdleAdd(func() {
		if firstRow := w.sidebar.RowAtIndex(0); firstRow != nil {
			w.sidebar.SelectRow(firstRow)
		}
	})
	return mainBox
}

func (w *Window) createHeader() *gtk.Box {
	header := gtk.NewBox(gtk.OrientationHorizontal, 12)
	header.AddCSSClass("settings-header")

	titleBox := gtk.NewBox(gtk.OrientationVertical, 4)
	titleBox.SetHExpand(true)

	title := gtk.NewLabel("Raven Settings")
	title.AddCSSClass("settings-title")
	title.SetHAlign(gtk.AlignStart)
	titleBox.Append(title)

	w.subtitle = gtk.NewLabel(defaultSubtitle)
	w.subtitle.AddCSSClass("settings-subtitle")
	w.subtitle.SetHAlign(gtk.AlignStart)
	titleBox.Append(w.subtitle)

	header.Append(titleBox)

	closeBtn := gtk.NewButton()
	closeBtn.SetIconName("window-close-symbolic")
	closeBtn.AddCSSClass("close-button")
	closeBtn.ConnectClicked(func() {
		w.window.Close()
	})
	header.Append(closeBtn)

	return header
}

func (w *Window) createSidebar() *gtk.Box {
	sidebar := gtk.NewBox(gtk.OrientationVertical, 0)
	sidebar.AddCSSClass("category-sidebar")
	sidebar.SetSizeRequest(220, -1)

	scroll := gtk.NewScrolledWindow()
	scroll.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scroll.SetVExpand(true)

	w.sidebar = gtk.NewListBox()
	w.sidebar.AddCSSClass("category-list")
	w.sidebar.SetSelectionMode(gtk.SelectionSingle)
	w.sidebar.ConnectRowSelected(func(row *gtk.ListBoxRow) {
		if row == nil {
			return
		}
		w.selecting = true
		w.selectRow(row.Index())
		glib.IdleAdd(func() { w.selecting = false })
	})
	// Activating the selected row again retries a page that failed to
	// build. A click that also changed the selection is handled above.
	w.sidebar.ConnectRowActivated(func(row *gtk.ListBoxRow) {
		if !w.selecting {
			w.selectRow(row.Index())
		}
	})

	for _, entry := range w.app.Nav.Entries() {
		w.sidebar.Append(categoryRow(entry))
	}

	scroll.SetChild(w.sidebar)
	sidebar.Append(scroll)
	return sidebar
}

func (w *Window) selectRow(idx int) {
	entries := w.app.Nav.Entries()
	if idx < 0 || idx >= len(entries) {
		return
	}
	if w.app.Nav.SelectIndex(idx) {
		setStatus(w.subtitle, defaultSubtitle)
		return
	}
	w.subtitle.AddCSSClass("status-error")
	w.subtitle.SetText("Could not open " + entries[idx].Title)
}

func categoryRow(entry nav.Entry) *gtk.ListBoxRow {
	row := gtk.NewListBoxRow()

	box := gtk.NewBox(gtk.OrientationHorizontal, 12)
	box.SetMarginTop(4)
	box.SetMarginBottom(4)
	box.Append(gtk.NewImageFromIconName(entry.Icon))

	labels := gtk.NewBox(gtk.OrientationVertical, 4)

	nameLabel := gtk.NewLabel(entry.Title)
	nameLabel.AddCSSClass("category-name")
	nameLabel.SetHAlign(gtk.AlignStart)
	labels.Append(nameLabel)

	descLabel := gtk.NewLabel(entry.Description)
	descLabel.AddCSSClass("category-desc")
	descLabel.SetHAlign(gtk.AlignStart)
	labels.Append(descLabel)

	box.Append(labels)
	row.SetChild(box)
	return row
}
