// Package app wires the settings services into one application context
// shared by the GTK and terminal frontends.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/audio"
	"github.com/ravenlinux/raven-settings/pkg/autostart"
	"github.com/ravenlinux/raven-settings/pkg/bluetooth"
	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/config"
	"github.com/ravenlinux/raven-settings/pkg/display"
	"github.com/ravenlinux/raven-settings/pkg/firewall"
	"github.com/ravenlinux/raven-settings/pkg/logging"
	"github.com/ravenlinux/raven-settings/pkg/mainloop"
	"github.com/ravenlinux/raven-settings/pkg/nav"
	"github.com/ravenlinux/raven-settings/pkg/page"
	"github.com/ravenlinux/raven-settings/pkg/prefs"
	"github.com/ravenlinux/raven-settings/pkg/task"
	"github.com/ravenlinux/raven-settings/pkg/wifi"
)

// Options configures New.
type Options struct {
	Config *config.Config
	Logger *zap.Logger

	// Runner defaults to a command.ExecRunner built from Config.
	Runner command.Runner

	// Loop is the frontend's UI thread.
	Loop mainloop.Loop

	// Host receives built pages. It may be nil for headless use.
	Host page.Host

	// Env selects the display tools. Zero value reads the process
	// environment.
	Env *display.Environment
}

// App is the application context. It owns the worker pool, the page
// registry and every category service.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Runner   command.Runner
	Pool     *task.Pool
	Registry *page.Registry
	Nav      *nav.Dispatcher

	WiFi      *wifi.Client
	Bluetooth *bluetooth.Client
	Audio     *audio.Client
	Display   *display.Client
	Firewall  *firewall.Client
	Autostart *autostart.Manager
	Prefs     *prefs.Store
}

type nopHost struct{}

func (nopHost) Add(page.Category, page.View) {}
func (nopHost) Show(page.Category)           {}

// New builds the application context.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: missing config")
	}
	if opts.Loop == nil {
		return nil, fmt.Errorf("app: missing loop")
	}
	cfg := opts.Config
	logger := logging.OrNop(opts.Logger)

	runner := opts.Runner
	if runner == nil {
		runner = command.NewExecRunner(cfg.CommandTimeout, cfg.PrivilegeCommand, logger.Named("command"))
	}
	host := opts.Host
	if host == nil {
		host = nopHost{}
	}
	env := display.FromOS()
	if opts.Env != nil {
		env = *opts.Env
	}

	store, err := prefs.Open(cfg.PrefsPath, logger.Named("prefs"))
	if err != nil {
		// Defaults are still usable; the file is rewritten on the next edit.
		logger.Warn("failed to load preferences", zap.Error(err))
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Runner:    runner,
		Pool:      task.NewPool(opts.Loop, cfg.Workers, logger.Named("task")),
		Registry:  page.NewRegistry(host, logger.Named("page")),
		WiFi:      wifi.NewClient(runner, logger.Named("wifi")),
		Bluetooth: bluetooth.NewClient(runner, cfg.Bluetooth.ScanTimeout, logger.Named("bluetooth")),
		Audio:     audio.NewClient(runner, logger.Named("audio")),
		Display:   display.NewClient(runner, env, logger.Named("display")),
		Firewall:  firewall.NewClient(runner, logger.Named("firewall")),
		Autostart: autostart.NewManager(cfg.Autostart.Script, cfg.Autostart.CompositorConfig, logger.Named("autostart")),
		Prefs:     store,
	}
	a.Nav = nav.NewDispatcher(nav.DefaultMenu(), a.Registry, logger.Named("nav"))
	return a, nil
}

// Close tears down pages, stops the workers and flushes preferences.
func (a *App) Close() {
	a.Registry.Close()
	a.Pool.Close()
	a.Prefs.Flush()
}
