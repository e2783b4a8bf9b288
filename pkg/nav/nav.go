// Package nav routes sidebar selections to settings pages.
package nav

import (
	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/logging"
	"github.com/ravenlinux/raven-settings/pkg/page"
)

// Entry is one item of the settings menu.
type Entry struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Category    page.Category
}

// DefaultMenu returns the settings menu in display order.
func DefaultMenu() []Entry {
	return []Entry{
		{ID: "wifi", Title: "Wi-Fi", Description: "Wireless networks", Icon: "network-wireless-symbolic", Category: page.WiFi},
		{ID: "bluetooth", Title: "Bluetooth", Description: "Devices and pairing", Icon: "bluetooth-symbolic", Category: page.Bluetooth},
		{ID: "connectivity", Title: "Connectivity", Description: "Network connections", Icon: "network-wired-symbolic", Category: page.Connectivity},
		{ID: "audio", Title: "Sound", Description: "Output and input devices", Icon: "audio-volume-high-symbolic", Category: page.Audio},
		{ID: "display", Title: "Display", Description: "Resolution, brightness and wallpaper", Icon: "video-display-symbolic", Category: page.Display},
		{ID: "appearance", Title: "Appearance", Description: "Theme, colors and fonts", Icon: "preferences-desktop-theme-symbolic", Category: page.Appearance},
		{ID: "power", Title: "Power", Description: "Power management options", Icon: "preferences-system-power-symbolic", Category: page.Power},
		{ID: "security", Title: "Security", Description: "Firewall and services", Icon: "security-high-symbolic", Category: page.Security},
		{ID: "autostart_apps", Title: "Autostart", Description: "Applications started at login", Icon: "system-run-symbolic", Category: page.Autostart},
		{ID: "default_apps", Title: "Default Apps", Description: "Preferred applications", Icon: "starred-symbolic", Category: page.DefaultApps},
		{ID: "keyboard_shortcuts", Title: "Keyboard Shortcuts", Description: "Key bindings", Icon: "input-keyboard-symbolic", Category: page.KeyboardShortcuts},
		{ID: "user_permissions", Title: "Users", Description: "Accounts and permissions", Icon: "system-users-symbolic", Category: page.UserPermissions},
		{ID: "config_files", Title: "Config Files", Description: "Desktop configuration files", Icon: "text-x-generic-symbolic", Category: page.ConfigFiles},
		{ID: "about", Title: "About", Description: "System information", Icon: "help-about-symbolic", Category: page.About},
	}
}

// Shower displays a page.
type Shower interface {
	Show(cat page.Category) error
}

// Dispatcher maps the fixed set of menu identifiers to pages.
type Dispatcher struct {
	entries []Entry
	routes  map[string]page.Category
	shower  Shower
	logger  *zap.Logger
}

// NewDispatcher creates a dispatcher for entries.
func NewDispatcher(entries []Entry, shower Shower, logger *zap.Logger) *Dispatcher {
	routes := make(map[string]page.Category, len(entries))
	for _, e := range entries {
		routes[e.ID] = e.Category
	}
	return &Dispatcher{
		entries: entries,
		routes:  routes,
		shower:  shower,
		logger:  logging.OrNop(logger),
	}
}

// Entries returns the menu entries.
func (d *Dispatcher) Entries() []Entry {
	return d.entries
}

// Lookup returns the category for id.
func (d *Dispatcher) Lookup(id string) (page.Category, bool) {
	cat, ok := d.routes[id]
	return cat, ok
}

// Select shows the page for id and reports whether it is now visible.
// Unknown identifiers are ignored. Build failures have already been logged
// by the shower.
func (d *Dispatcher) Select(id string) bool {
	cat, ok := d.routes[id]
	if !ok {
		d.logger.Debug("ignoring unknown page identifier", zap.String("id", id))
		return false
	}
	if err := d.shower.Show(cat); err != nil {
		d.logger.Debug("page not shown", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}

// SelectIndex selects the entry at position i of the menu.
func (d *Dispatcher) SelectIndex(i int) bool {
	if i < 0 || i >= len(d.entries) {
		return false
	}
	return d.Select(d.entries[i].ID)
}

// IndexOf returns the menu position of cat, or -1.
func (d *Dispatcher) IndexOf(cat page.Category) int {
	for i, e := range d.entries {
		if e.Category == cat {
			return i
		}
	}
	return -1
}
