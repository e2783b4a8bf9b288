// Command raven-settingsctl changes Raven desktop settings from a terminal.
// Every subcommand drives the same services as the settings window.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/command"
	"github.com/ravenlinux/raven-settings/pkg/config"
	"github.com/ravenlinux/raven-settings/pkg/display"
	"github.com/ravenlinux/raven-settings/pkg/logging"
	"github.com/ravenlinux/raven-settings/pkg/mainloop"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
	headColor = color.New(color.FgCyan, color.Bold)
)

// cli holds what every subcommand needs. Tests replace runner and env.
type cli struct {
	configPath string
	flags      *viper.Viper
	runner     command.Runner
	env        *display.Environment
	logger     *zap.Logger
	app        *app.App
}

func main() {
	c := &cli{}
	err := newRootCmd(c).Execute()
	c.close()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ %s\n", command.Message(err))
		os.Exit(1)
	}
}

func newRootCmd(c *cli) *cobra.Command {
	c.flags = viper.New()

	rootCmd := &cobra.Command{
		Use:   "raven-settingsctl",
		Short: "Change Raven desktop settings from the command line",
		Long: `raven-settingsctl exposes the Raven settings categories without the
settings window: Wi-Fi, Bluetooth, sound, display, firewall and autostart.

Run "raven-settingsctl tui" for the terminal interface.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	c.flags.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newWiFiCmd(c),
		newBluetoothCmd(c),
		newAudioCmd(c),
		newDisplayCmd(c),
		newFirewallCmd(c),
		newAutostartCmd(c),
		newPagesCmd(c),
		newConfigCmd(c),
		newTUICmd(c),
	)
	return rootCmd
}

// loadConfig reads the config file and applies the --log-level flag.
func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if level := c.flags.GetString("log_level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

// open builds a headless application context. Services are called
// directly, so the loop only carries preference saves.
func (c *cli) open() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if c.logger == nil {
		if c.logger, err = logging.New(cfg.LogLevel); err != nil {
			return nil, err
		}
	}
	a, err := app.New(app.Options{
		Config: cfg,
		Logger: c.logger,
		Runner: c.runner,
		Loop:   mainloop.NewQueue(),
		Env:    c.env,
	})
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
	if c.logger != nil {
		logging.Sync(c.logger)
	}
}

// withApp adapts a RunE body that needs the application context.
func withApp(c *cli, fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := c.open()
		if err != nil {
			return err
		}
		return fn(cmd, a, args)
	}
}

func done(w io.Writer, format string, args ...any) {
	okColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func heading(w io.Writer, text string) {
	headColor.Fprintln(w, text)
}

// parseSwitch accepts on/off style arguments.
func parseSwitch(arg string) (bool, error) {
	switch arg {
	case "on", "enable", "enabled", "true", "yes", "1":
		return true, nil
	case "off", "disable", "disabled", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", arg)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
