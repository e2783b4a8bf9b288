package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ravenlinux/raven-settings/pkg/app"
	"github.com/ravenlinux/raven-settings/pkg/audio"
)

func newAudioCmd(c *cli) *cobra.Command {
	audioCmd := &cobra.Command{
		Use:     "audio",
		Aliases: []string{"sound"},
		Short:   "Output and input devices and volume",
	}
	audioCmd.AddCommand(
		devicesCmd(c, "sinks", "List output devices", audio.Sink),
		devicesCmd(c, "sources", "List input devices", audio.Source),
		volumeCmd(c, "volume", "Show or set the output volume", audio.Sink),
		volumeCmd(c, "mic-volume", "Show or set the input volume", audio.Source),
		defaultCmd(c, "default-sink", "Make NAME the default output", audio.Sink),
		defaultCmd(c, "default-source", "Make NAME the default input", audio.Source),
		&cobra.Command{
			Use:   "mute",
			Short: "Toggle output mute",
			Args:  cobra.NoArgs,
			RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
				if err := a.Audio.ToggleMute(cmd.Context(), audio.Sink); err != nil {
					return err
				}
				done(cmd.OutOrStdout(), "Mute toggled")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "test",
			Short: "Play a test sound",
			Args:  cobra.NoArgs,
			RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
				return a.Audio.PlayTestSound(cmd.Context())
			}),
		},
	)
	return audioCmd
}

func devicesCmd(c *cli, use, short string, kind audio.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			devices, err := a.Audio.Devices(cmd.Context(), kind)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(devices) == 0 {
				warnColor.Fprintln(w, "No devices found")
				return nil
			}
			for _, d := range devices {
				if d.Default {
					okColor.Fprintf(w, "* %s", d.Label())
				} else {
					fmt.Fprintf(w, "  %s", d.Label())
				}
				dimColor.Fprintf(w, "  %s\n", d.Name)
			}
			return nil
		}),
	}
}

func volumeCmd(c *cli, use, short string, kind audio.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [PERCENT]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			if len(args) == 0 {
				v, err := a.Audio.Volume(cmd.Context(), kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d%%\n", v)
				return nil
			}
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 0 || v > audio.MaxVolume {
				return fmt.Errorf("volume must be a number from 0 to %d", audio.MaxVolume)
			}
			if err := a.Audio.SetVolume(cmd.Context(), kind, v); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "Volume set to %d%%", v)
			return nil
		}),
	}
}

func defaultCmd(c *cli, use, short string, kind audio.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   use + " NAME",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(c, func(cmd *cobra.Command, a *app.App, args []string) error {
			if err := a.Audio.SetDefault(cmd.Context(), kind, args[0]); err != nil {
				return err
			}
			done(cmd.OutOrStdout(), "Default %s is %s", kind, args[0])
			return nil
		}),
	}
}
