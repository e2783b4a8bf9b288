package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

const stylesheet = `
window {
	background-color: #0f1720;
}
.settings-header {
	background-color: #1a2332;
	padding: 16px 20px;
	border-bottom: 1px solid #333;
}
.settings-title {
	font-size: 20px;
	font-weight: bold;
	color: #00bfa5;
}
.settings-subtitle, .category-desc, .setting-description, .row-detail {
	font-size: 11px;
	color: #777;
}
.category-sidebar {
	background-color: #151d28;
	border-right: 1px solid #333;
}
.category-list {
	background-color: transparent;
}
.category-list row {
	padding: 10px 16px;
}
.category-list row:selected {
	background-color: #009688;
}
.category-list row:hover:not(:selected) {
	background-color: rgba(255, 255, 255, 0.05);
}
.category-name, .setting-label, .row-title {
	color: #e0e0e0;
	font-size: 14px;
}
.content-area {
	background-color: #0f1720;
}
.page {
	padding: 20px;
}
.section-title {
	color: #00bfa5;
	font-size: 16px;
	font-weight: bold;
	margin-bottom: 12px;
}
.setting-row, .device-list row {
	background-color: #1a2332;
	border-radius: 8px;
	padding: 12px 16px;
	margin-bottom: 8px;
}
.device-list {
	background-color: transparent;
}
.row-active {
	color: #00bfa5;
	font-weight: bold;
}
.status {
	color: #888;
	font-size: 12px;
}
.status-error {
	color: #ef5350;
}
entry, dropdown button, spinbutton {
	background-color: #0f1720;
	border: 1px solid #333;
	border-radius: 6px;
	color: #e0e0e0;
}
entry:focus {
	border-color: #009688;
}
scale trough {
	background-color: #333;
	border-radius: 4px;
	min-height: 6px;
}
scale highlight {
	background-color: #009688;
	border-radius: 4px;
}
switch {
	background-color: #333;
	border-radius: 14px;
}
switch:checked {
	background-color: #009688;
}
button {
	background-color: #1a2332;
	border: 1px solid #333;
	border-radius: 6px;
	padding: 6px 14px;
	color: #e0e0e0;
}
button:hover {
	background-color: #252f3f;
}
button.primary {
	background-color: #009688;
	border-color: #009688;
}
button.destructive {
	background-color: #b71c1c;
	border-color: #b71c1c;
}
.close-button {
	background-color: transparent;
	border: none;
	padding: 8px;
	color: #888;
}
.close-button:hover {
	color: #e0e0e0;
	background-color: rgba(255, 255, 255, 0.1);
}
.about-logo {
	font-size: 48px;
	color: #009688;
}
.about-title {
	font-size: 24px;
	font-weight: bold;
	color: #e0e0e0;
}
.color-button {
	min-width: 32px;
	min-height: 32px;
	border-radius: 6px;
	border: 2px solid #333;
}
.color-button.selected {
	border-color: #e0e0e0;
}
`

func applyCSS() {
	provider := gtk.NewCSSProvider()
	provider.LoadFromString(stylesheet)
	gtk.StyleContextAddProviderForDisplay(gdk.DisplayGetDefault(), provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}

// addColorClass registers a background rule for one accent swatch and
// returns its class name.
func addColorClass(hex string) string {
	class := "accent-" + hex[1:]
	provider := gtk.NewCSSProvider()
	provider.LoadFromString("." + class + " { background-color: " + hex + "; }")
	gtk.StyleContextAddProviderForDisplay(gdk.DisplayGetDefault(), provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	return class
}
