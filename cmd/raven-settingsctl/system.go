package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/firewall"
	"github.com/ravenlinux/raven-settings/pkg/nav"
	"github.com/ravenlinux/raven-settings/pkg/tui"
)

func newFirewallCmd(c *cli) *cobra.Command {
	fwCmd := &cobra.Command{
		Use:     "firewall",
		Aliases: []string{"ufw"},
		Short:   "Firewall state and rules",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show whether the firewall is active and its rules",
		Args:  cobra.NoArgs,
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			st, err := a.Firewall.Status(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if st.Active {
				okColor.Fprintln(w, "Firewall is active")
			} else {
				warnColor.Fprintln(w, "Firewall is inactive")
			}
			for _, svc := range firewall.Services {
				fmt.Fprintf(w, "  %-6s %s\n", svc, allowed(st.Allowed(svc)))
			}
			if len(st.Rules) == 0 {
				return nil
			}
			fmt.Fprintln(w)
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TO\tACTION\tFROM\t")
			for _, r := range st.Rules {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.To, r.Action, r.From)
			}
			return tw.Flush()
		}),
	}

	setEnabled := func(use string, on bool) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: use + " the firewall",
			Args:  cobra.NoArgs,
			RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
				if err := a.Firewall.SetEnabled(cmd.Context(), on); err != nil {
					return err
				}
				done(cmd.OutOrStdout(), "Firewall %sd", use)
				return nil
			}),
		}
	}

	rule := func(use string, allow bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " SERVICE|PORT",
			Short: use + " incoming traffic to a service or port",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
				if err := a.Firewall.SetAllowed(cmd.Context(), args[0], allow); err != nil {
					return err
				}
				done(cmd.OutOrStdout(), "%s %s", args[0], allowed(allow))
				return nil
			}),
		}
	}

	fwCmd.AddCommand(statusCmd, setEnabled("enable", true), setEnabled("disable", false), rule("allow", true), rule("deny", false))
	return fwCmd
}

func allowed(on bool) string {
	if on {
		return "allowed"
	}
	return "denied"
}

func newAutostartCmd(c *cli) *cobra.Command {
	asCmd := &cobra.Command{
		Use:   "autostart",
		Short: "Applications started at login",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List autostart entries",
		Args:  cobra.NoArgs,
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			entries, err := a.Autostart.Entries()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				dimColor.Fprintf(w, "No autostart entries in %s\n", a.Autostart.ScriptPath())
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(w, "%-20s ", e.Name)
				dimColor.Fprintln(w, e.Command)
			}
			return nil
		}),
	}

	addCmd := &cobra.Command{
		Use:     "add COMMAND",
		Short:   "Start COMMAND at login",
		Example: `  raven-settingsctl autostart add "waybar -c ~/.config/waybar/config"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			line := strings.Join(args, " ")
			if err := a.Autostart.Add(line); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "Added %s", line)
			return nil
		}),
	}

	removeCmd := &cobra.Command{
		Use:   "remove COMMAND",
		Short: "Stop starting COMMAND at login",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			line := strings.Join(args, " ")
			removed, err := a.Autostart.Remove(line)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no autostart entry runs %q", line)
			}
			done(cmd.OutOrStdout(), "Removed %s", line)
			return nil
		}),
	}

	asCmd.AddCommand(listCmd, addCmd, removeCmd)
	return asCmd
}

func newPagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the settings menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION\t")
			for _, e := range nav.DefaultMenu() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t\n", e.ID, e.Title, e.Description)
			}
			return tw.Flush()
		},
	}
}

func newConfigCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprint(w, string(out))

			if info, err := os.Stat(cfg.PrefsPath); err == nil {
				dimColor.Fprintf(w, "# preferences saved %s\n", humanize.Time(info.ModTime()))
			} else {
				dimColor.Fprintln(w, "# preferences not saved yet")
			}
			return nil
		},
	}
}

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal settings interface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if c.logger == nil {
				// Console logs would tear the full-screen view.
				c.logger = zap.NewNop()
			}
			return tui.Run(cfg, c.runner, c.logger)
		},
	}
}
