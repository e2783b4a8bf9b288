package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/display"
	"github.com/ravenlinux/raven-settings/pkg/prefs"
)

func newDisplayCmd(c *cli) *cobra.Command {
	displayCmd := &cobra.Command{
		Use:   "display",
		Short: "Resolution, brightness and wallpaper",
	}

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "List the modes of every output",
		Args:  cobra.NoArgs,
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			modes, err := a.Display.Modes(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			output := "\x00"
			for _, m := range modes {
				if m.Output != output {
					output = m.Output
					heading(w, output)
				}
				switch {
				case m.Current:
					okColor.Fprintf(w, "* %s\n", m.Label())
				case m.Preferred:
					fmt.Fprintf(w, "+ %s\n", m.Label())
				default:
					fmt.Fprintf(w, "  %s\n", m.Label())
				}
			}
			return nil
		}),
	}

	setCmd := &cobra.Command{
		Use:     "set OUTPUT RESOLUTION RATE",
		Short:   "Switch an output to a listed mode",
		Example: "  raven-settingsctl display set HDMI-1 1920x1080 60",
		Args:    cobra.ExactArgs(3),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			rate, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid refresh rate %q", args[2])
			}
			modes, err := a.Display.Modes(cmd.Context())
			if err != nil {
				return err
			}
			m, ok := findMode(modes, args[0], args[1], rate)
			if !ok {
				return fmt.Errorf("%s does not offer %s @ %s Hz", args[0], args[1], args[2])
			}
			if err := a.Display.Apply(cmd.Context(), m); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "%s set to %s", m.Output, m.Label())
			return nil
		}),
	}

	brightnessCmd := &cobra.Command{
		Use:   "brightness [PERCENT]",
		Short: "Show or set the backlight level",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			if len(args) == 0 {
				v, err := a.Display.Brightness(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d%%\n", v)
				return nil
			}
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid brightness %q", args[0])
			}
			if err := a.Display.SetBrightness(cmd.Context(), v); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "Brightness set to %d%%", min(max(v, 1), 100))
			return nil
		}),
	}

	wallpaperCmd := &cobra.Command{
		Use:   "wallpaper PATH",
		Short: "Set the desktop wallpaper",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			if err := a.Display.SetWallpaper(cmd.Context(), path); err != nil {
				return err
			}
			a.Prefs.Update(func(s *prefs.Settings) { s.WallpaperPath = path })
			done(cmd.OutOrStdout(), "Wallpaper set to %s", path)
			return nil
		}),
	}

	displayCmd.AddCommand(modesCmd, setCmd, brightnessCmd, wallpaperCmd)
	return displayCmd
}

// findMode matches a resolution and a refresh rate to two decimals, the
// precision modes are listed with.
func findMode(modes []display.Mode, output, resolution string, rate float64) (display.Mode, bool) {
	want := fmt.Sprintf("%.2f", rate)
	for _, m := range modes {
		if m.Output != output {
			continue
		}
		if m.Resolution != resolution && m.Size() != resolution {
			continue
		}
		if fmt.Sprintf("%.2f", m.Refresh) == want {
			return m, true
		}
	}
	return display.Mode{}, false
}
