package tui

import (
	"strings"

	"github.com/ravenlinux/raven-settings/pkg/command"
)

// status is a one-line message under a page.
type status struct {
	text string
	err  bool
}

func (s *status) set(text string) {
	s.text, s.err = text, false
}

func (s *status) fail(err error) {
	s.text, s.err = command.Message(err), true
}

func (s status) render() string {
	if s.text == "" {
		return ""
	}
	if s.err {
		return errorStyle.Render("✗ " + s.text)
	}
	return statusStyle.Render(s.text)
}

// cursor tracks the selected row of a list.
type cursor struct {
	pos int
}

func (c *cursor) move(key string, n int) bool {
	switch key {
	case "up", "k":
		if c.pos > 0 {
			c.pos--
		}
	case "down", "j":
		if c.pos < n-1 {
			c.pos++
		}
	default:
		return false
	}
	return true
}

func (c *cursor) clamp(n int) {
	if c.pos >= n {
		c.pos = n - 1
	}
	if c.pos < 0 {
		c.pos = 0
	}
}

func renderRow(b *strings.Builder, selected, active bool, line string) {
	switch {
	case selected:
		b.WriteString(selectedStyle.Render("> " + line))
	case active:
		b.WriteString(activeStyle.Render("  " + line))
	default:
		b.WriteString(normalStyle.Render("  " + line))
	}
	b.WriteString("\n")
}
