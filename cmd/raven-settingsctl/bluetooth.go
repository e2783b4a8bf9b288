package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ravenlinux/raven-settings/pkg/app"
)

func newBluetoothCmd(c *cli) *cobra.Command {
	btCmd := &cobra.Command{
		Use:     "bluetooth",
		Aliases: []string{"bt"},
		Short:   "Bluetooth adapter and devices",
	}

	var scan bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List known devices",
		Args:  cobra.NoArgs,
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			ctx := cmd.Context()
			if scan {
				dimColor.Fprintln(cmd.OutOrStdout(), "Scanning...")
				if err := a.Bluetooth.Discover(ctx); err != nil {
					return err
				}
			}
			devices, err := a.Bluetooth.Devices(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(devices) == 0 {
				warnColor.Fprintln(w, "No devices found")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ADDRESS\tNAME\tSTATE\t")
			for _, d := range devices {
				state := "available"
				switch {
				case d.Connected:
					state = "connected"
				case d.Paired:
					state = "paired"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", d.Address, d.Name, state)
			}
			return tw.Flush()
		}),
	}
	listCmd.Flags().BoolVar(&scan, "scan", false, "discover nearby devices first")

	powerCmd := &cobra.Command{
		Use:   "power [on|off]",
		Short: "Show or switch the adapter power",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			if len(args) == 0 {
				on, err := a.Bluetooth.Powered(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bluetooth is %s\n", onOff(on))
				return nil
			}
			on, err := parseSwitch(args[0])
			if err != nil {
				return err
			}
			if err := a.Bluetooth.SetPower(cmd.Context(), on); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "Bluetooth %s", onOff(on))
			return nil
		}),
	}

	btCmd.AddCommand(listCmd, powerCmd,
		deviceCmd(c, "connect", "Connected", func(a *app.App) func(context.Context, string) error { return a.Bluetooth.Connect }),
		deviceCmd(c, "disconnect", "Disconnected", func(a *app.App) func(context.Context, string) error { return a.Bluetooth.Disconnect }),
		deviceCmd(c, "pair", "Paired", func(a *app.App) func(context.Context, string) error { return a.Bluetooth.Pair }),
		deviceCmd(c, "remove", "Removed", func(a *app.App) func(context.Context, string) error { return a.Bluetooth.Remove }),
	)
	return btCmd
}

// deviceCmd builds a subcommand that runs one action on a device address.
func deviceCmd(c *cli, verb, past string, action func(*app.App) func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " ADDRESS",
		Short: verb + " a device",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			if err := action(a)(cmd.Context(), args[0]); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "%s %s", past, args[0])
			return nil
		}),
	}
}
