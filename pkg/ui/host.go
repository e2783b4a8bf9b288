package ui

import (
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/page"
)

// StackHost shows pages as named children of a gtk.Stack.
type StackHost struct {
	stack *gtk.Stack
}

// NewStackHost creates the content stack.
func NewStackHost() *StackHost {
	stack := gtk.NewStack()
	stack.SetTransitionType(gtk.StackTransitionTypeCrossfade)
	stack.SetTransitionDuration(200)
	stack.AddCSSClass("content-area")
	stack.SetHExpand(true)
	return &StackHost{stack: stack}
}

// Stack returns the underlying widget.
func (h *StackHost) Stack() *gtk.Stack {
	return h.stack
}

func pageName(cat page.Category) string {
	return string(cat) + "_page"
}

// Add wraps view in a scrolled window and adds it to the stack.
func (h *StackHost) Add(cat page.Category, view page.View) {
	w, ok := view.(gtk.Widgetter)
	if !ok {
		return
	}
	scroll := gtk.NewScrolledWindow()
	scroll.SetPolicy(gtk.PolicyNever, gtk.PolicyAutomatic)
	scroll.SetChild(w)
	h.stack.AddNamed(scroll, pageName(cat))
}

// Show makes the page of cat visible.
func (h *StackHost) Show(cat page.Category) {
	h.stack.SetVisibleChildName(pageName(cat))
}
