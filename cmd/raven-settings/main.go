package main

import (
	"fmt"
	"os"

	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/config"
	"github.com/ravenlinux/raven-settings/pkg/logging"
	"github.com/ravenlinux/raven-settings/pkg/ui"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "raven-settings",
		Short:         "Raven desktop settings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "raven-settings: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	app := gtk.NewApplication(ui.ApplicationID, gio.ApplicationFlagsNone)
	app.ConnectActivate(func() {
		window, err := ui.NewWindow(app, cfg, logger)
		if err != nil {
			logger.Error("failed to create window", zap.Error(err))
			app.Quit()
			return
		}
		window.Present()
	})

	// Flags were consumed by cobra; GTK only sees the program name.
	if code := app.Run(os.Args[:1]); code > 0 {
		return fmt.Errorf("exited with status %d", code)
	}
	return nil
}
