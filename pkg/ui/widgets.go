package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/command"
)

func newContent(title string) *gtk.Box {
	content := gtk.NewBox(gtk.OrientationVertical, 16)
	content.AddCSSClass("page")

	sectionTitle := gtk.NewLabel(title)
	sectionTitle.AddCSSClass("section-title")
	sectionTitle.SetHAlign(gtk.AlignStart)
	content.Append(sectionTitle)
	return content
}

func settingRow(title, description string, control gtk.Widgetter) *gtk.Box {
	row := gtk.NewBox(gtk.OrientationHorizontal, 12)
	row.AddCSSClass("setting-row")

	labelBox := gtk.NewBox(gtk.OrientationVertical, 4)
	labelBox.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.AddCSSClass("setting-label")
	titleLabel.SetHAlign(gtk.AlignStart)
	labelBox.Append(titleLabel)

	if description != "" {
		descLabel := gtk.NewLabel(description)
		descLabel.AddCSSClass("setting-description")
		descLabel.SetHAlign(gtk.AlignStart)
		labelBox.Append(descLabel)
	}

	row.Append(labelBox)
	row.Append(control)
	return row
}

// listRow builds a device-list row with an icon, a title, a detail line
// and trailing controls.
func listRow(icon, title, detail string, active bool, controls ...gtk.Widgetter) *gtk.ListBoxRow {
	box := gtk.NewBox(gtk.OrientationHorizontal, 12)

	if icon != "" {
		box.Append(gtk.NewImageFromIconName(icon))
	}

	labels := gtk.NewBox(gtk.OrientationVertical, 2)
	labels.SetHExpand(true)

	titleLabel := gtk.NewLabel(title)
	titleLabel.AddCSSClass("row-title")
	if active {
		titleLabel.AddCSSClass("row-active")
	}
	titleLabel.SetHAlign(gtk.AlignStart)
	labels.Append(titleLabel)

	if detail != "" {
		detailLabel := gtk.NewLabel(detail)
		detailLabel.AddCSSClass("row-detail")
		detailLabel.SetHAlign(gtk.AlignStart)
		labels.Append(detailLabel)
	}
	box.Append(labels)

	for _, c := range controls {
		box.Append(c)
	}

	row := gtk.NewListBoxRow()
	row.SetActivatable(false)
	row.SetChild(box)
	return row
}

func clearList(list *gtk.ListBox) {
	for child := list.FirstChild(); child != nil; child = list.FirstChild() {
		list.Remove(child)
	}
}

func button(label string, onClick func()) *gtk.Button {
	btn := gtk.NewButtonWithLabel(label)
	btn.SetVAlign(gtk.AlignCenter)
	btn.ConnectClicked(onClick)
	return btn
}

func setStatus(label *gtk.Label, text string) {
	label.RemoveCSSClass("status-error")
	label.SetText(text)
}

func setError(label *gtk.Label, err error) {
	label.AddCSSClass("status-error")
	label.SetText(command.Message(err))
}

// bindSwitch routes user flips of sw to request. The switch state is
// left to GTK so a refused or failed request can move it back.
func bindSwitch(sw *gtk.Switch, request func(on bool) bool) {
	sw.ConnectStateSet(func(state bool) bool {
		request(state)
		return false
	})
}

// dropdownLabels replaces the options of dd.
func dropdownLabels(dd *gtk.DropDown, labels []string) {
	dd.SetModel(gtk.NewStringList(labels))
}
