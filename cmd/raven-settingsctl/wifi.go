package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ravenlinux/raven-settings/pkg/app"
)

func newWiFiCmd(c *cli) *cobra.Command {
	wifiCmd := &cobra.Command{
		Use:   "wifi",
		Short: "Wi-Fi networks and radio",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Rescan and list visible networks",
		Args:  cobra.NoArgs,
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			networks, err := a.WiFi.List(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(networks) == 0 {
				warnColor.Fprintln(w, "No networks found")
				return nil
			}
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SSID\tSIGNAL\tSECURITY\t")
			for _, n := range networks {
				security := n.Security
				if !n.Secured {
					security = "open"
				}
				mark := ""
				if n.Active {
					mark = "connected"
				}
				fmt.Fprintf(tw, "%s\t%d%%\t%s\t%s\n", n.SSID, n.Signal, security, mark)
			}
			return tw.Flush()
		}),
	}

	radioCmd := &cobra.Command{
		Use:   "radio [on|off]",
		Short: "Show or switch the Wi-Fi radio",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			if len(args) == 0 {
				on, err := a.WiFi.Radio(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wi-Fi radio is %s\n", onOff(on))
				return nil
			}
			on, err := parseSwitch(args[0])
			if err != nil {
				return err
			}
			if err := a.WiFi.SetRadio(cmd.Context(), on); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "Wi-Fi radio %s", onOff(on))
			return nil
		}),
	}

	var password string
	connectCmd := &cobra.Command{
		Use:   "connect SSID",
		Short: "Connect to a network",
		Example: `  raven-settingsctl wifi connect Cafe
  raven-settingsctl wifi connect Home --password hunter2`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			if err := a.WiFi.Connect(cmd.Context(), args[0], password); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "Connected to %s", args[0])
			return nil
		}),
	}
	connectCmd.Flags().StringVarP(&password, "password", "p", "", "network password")

	currentCmd := &cobra.Command{
		Use:   "current",
		Short: "Print the connected network",
		Args:  cobra.NoArgs,
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			ssid, ok, err := a.WiFi.Current(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				dimColor.Fprintln(cmd.OutOrStdout(), "Not connected")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ssid)
			return nil
		}),
	}

	wifiCmd.AddCommand(listCmd, radioCmd, connectCmd, currentCmd)
	return wifiCmd
}
