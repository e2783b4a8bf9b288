package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/config"
)

// Run starts the TUI and blocks until the user quits. runner may be nil.
func Run(cfg *config.Config, runner command.Runner, logger *zap.Logger) error {
	loop := NewLoop()
	defer loop.Close()
	host := NewHost()

	a, err := app.New(app.Options{
		Config: cfg,
		Logger: logger,
		Runner: runner,
		Loop:   loop,
		Host:   host,
	})
	if err != nil {
		return err
	}
	defer a.Close()
	Register(a)

	p := tea.NewProgram(NewModel(a, host), tea.WithAltScreen())
	loop.Attach(p)
	_, err = p.Run()
	return err
}
