package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ravenlinux/raven-settings/pkg/page"
)

// textPage is a settings page rendered as text.
type textPage interface {
	// Render draws the page body for the given width.
	Render(width int) string

	// Help is the key legend shown under the page.
	Help() string

	// Key handles a key press and reports whether it was consumed.
	Key(msg tea.KeyMsg) bool

	// Capturing reports whether the page is reading text input and wants
	// every key.
	Capturing() bool
}

// Host keeps the built text pages and tracks the visible one.
type Host struct {
	pages   map[page.Category]textPage
	current page.Category
}

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{pages: make(map[page.Category]textPage)}
}

// Add stores view if it is a text page.
func (h *Host) Add(cat page.Category, view page.View) {
	if p, ok := view.(textPage); ok {
		h.pages[cat] = p
	}
}

// Show makes cat the visible page.
func (h *Host) Show(cat page.Category) {
	h.current = cat
}

// Current returns the visible page, or nil before the first Show.
func (h *Host) Current() textPage {
	return h.pages[h.current]
}
