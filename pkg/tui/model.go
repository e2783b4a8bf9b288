// Package tui is the terminal frontend. It drives the same page registry
// and services as the GTK window from a bubbletea program.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/nav"
	"github.com/ravenlinux/raven-settings/pkg/page"
)

type focus int

const (
	focusSidebar focus = iota
	focusPage
)

type selectMsg struct {
	index int
}

// Model is the bubbletea model of the settings TUI.
type Model struct {
	app     *app.App
	host    *Host
	entries []nav.Entry
	cursor  cursor
	focus   focus
	width   int
	height  int
	message status
}

// Register adds the text page builders to a's registry.
func Register(a *app.App) {
	a.Registry.Register(page.WiFi, buildWiFi(a))
	a.Registry.Register(page.Bluetooth, buildBluetooth(a))
	a.Registry.Register(page.Audio, buildAudio(a))
	a.Registry.Register(page.Display, buildDisplay(a))
}

// NewModel creates the model. Only menu entries with a registered page
// are listed.
func NewModel(a *app.App, host *Host) *Model {
	m := &Model{app: a, host: host}
	for _, e := range a.Nav.Entries() {
		if a.Registry.Registered(e.Category) {
			m.entries = append(m.entries, e)
		}
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	if len(m.entries) == 0 {
		return nil
	}
	return func() tea.Msg { return selectMsg{index: 0} }
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postMsg:
		msg.fn()
	case selectMsg:
		m.open(msg.index)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	current := m.host.Current()
	if m.focus == focusPage && current != nil && current.Capturing() {
		if key == "ctrl+c" {
			return tea.Quit
		}
		current.Key(msg)
		return nil
	}

	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "tab":
		if m.focus == focusSidebar && current != nil {
			m.focus = focusPage
		} else {
			m.focus = focusSidebar
		}
		return nil
	}

	if m.focus == focusPage {
		if key == "esc" {
			m.focus = focusSidebar
			return nil
		}
		if current != nil {
			current.Key(msg)
		}
		return nil
	}

	if m.cursor.move(key, len(m.entries)) {
		return nil
	}
	switch key {
	case "enter", "right", "l":
		m.open(m.cursor.pos)
	case "esc":
		return tea.Quit
	}
	return nil
}

// open shows the page of entry i and focuses it. A failed build keeps the
// sidebar focused so the user can retry.
func (m *Model) open(i int) {
	if i < 0 || i >= len(m.entries) {
		return
	}
	m.cursor.pos = i
	e := m.entries[i]
	if !m.app.Nav.Select(e.ID) {
		m.message = status{text: "Could not open " + e.Title, err: true}
		m.focus = focusSidebar
		return
	}
	m.message.set("")
	m.focus = focusPage
}

func (m *Model) View() string {
	var side strings.Builder
	for i, e := range m.entries {
		selected := i == m.cursor.pos
		active := m.app.Registry.Current() == e.Category
		if m.focus != focusSidebar {
			selected = false
		}
		renderRow(&side, selected, active, e.Title)
	}

	body := "Select a category."
	help := "↑/↓: Navigate • Enter: Open • Tab: Switch focus • q: Quit"
	if p := m.host.Current(); p != nil {
		width := m.width - sidebarStyle.GetWidth() - 4
		body = p.Render(width)
		if m.focus == focusPage {
			help = p.Help() + " • Esc: Back"
		}
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Raven Settings"))
	s.WriteString("\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(side.String()),
		contentStyle.Render(body),
	))
	if msg := m.message.render(); msg != "" {
		s.WriteString("\n" + msg)
	}
	s.WriteString(helpStyle.Render(help))
	s.WriteString("\n")
	return s.String()
}
