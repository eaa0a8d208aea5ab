package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sethgrid/petkeeper/internal/player"
	"github.com/spf13/cobra"
)

var parentalPassword string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change player settings and parental controls",
}

func init() {
	settingsCmd.PersistentFlags().StringVar(&parentalPassword, "password", "", "Current parental password, when one is set")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPasswordCmd)
	settingsCmd.AddCommand(settingsLimitCmd)
	settingsCmd.AddCommand(settingsWindowCmd)
	settingsCmd.AddCommand(settingsRestrictCmd)
	settingsCmd.AddCommand(settingsFullscreenCmd)
	settingsCmd.AddCommand(settingsResetStatsCmd)
}

// updateSettings applies fn to the player settings and saves them. Parental
// changes are refused unless the current password is given.
func updateSettings(cmd *cobra.Command, parental bool, fn func(p *player.Player) error) error {
	e, err := openEnv(cmd, false)
	if err != nil {
		return err
	}
	err = e.session.UpdatePlayer(func(p *player.Player) error {
		if parental {
			if err := p.CheckPassword(parentalPassword); err != nil {
				return fmt.Errorf("failed to change parental settings: %w", err)
			}
		}
		return fn(p)
	})
	if err != nil {
		return e.close(err)
	}
	fmt.Fprintln(e.out, "Settings saved.")
	return e.close(nil)
}

// parseSwitch accepts on/off as well as anything strconv.ParseBool does.
func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", v)
	}
	return b, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		p := e.session.Player()
		limit := "none"
		if p.DailyTimeLimit > 0 {
			limit = fmt.Sprintf("%d minutes", p.DailyTimeLimit)
		}
		fmt.Fprintf(e.out, "total play time: %d minutes\n", p.TotalPlayTime)
		fmt.Fprintf(e.out, "sessions: %d\n", p.Sessions)
		fmt.Fprintf(e.out, "average session: %d minutes\n", p.AveragePlayTime())
		fmt.Fprintf(e.out, "played today: %d minutes\n", p.MinutesPlayedOn(clock.Now()))
		fmt.Fprintf(e.out, "parental password: %s\n", onOff(p.HasPassword()))
		fmt.Fprintf(e.out, "restrictions: %s\n", onOff(p.RestrictionsEnabled))
		fmt.Fprintf(e.out, "play window: %s-%s\n", p.AllowedStart, p.AllowedEnd)
		fmt.Fprintf(e.out, "daily limit: %s\n", limit)
		fmt.Fprintf(e.out, "fullscreen: %s\n", onOff(p.Fullscreen))
		return e.close(nil)
	},
}

var settingsPasswordCmd = &cobra.Command{
	Use:   "password [new-password]",
	Short: "Set or clear the parental password",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		clearPw, _ := cmd.Flags().GetBool("clear")
		if clearPw == (len(args) == 1) {
			return fmt.Errorf("give either a new password or --clear")
		}
		return updateSettings(cmd, true, func(p *player.Player) error {
			if clearPw {
				p.ClearPassword()
				return nil
			}
			if strings.ContainsAny(args[0], "\r\n") || args[0] == "null" {
				return fmt.Errorf("password %q cannot be stored", args[0])
			}
			p.SetPassword(args[0])
			return nil
		})
	},
}

func init() {
	settingsPasswordCmd.Flags().Bool("clear", false, "Remove the parental password")
}

var settingsLimitCmd = &cobra.Command{
	Use:   "limit [minutes]",
	Short: "Set the daily play limit in minutes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid minutes %q: %w", args[0], err)
		}
		return updateSettings(cmd, true, func(p *player.Player) error {
			return p.SetDailyLimit(minutes)
		})
	},
}

var settingsWindowCmd = &cobra.Command{
	Use:   "window [start] [end]",
	Short: "Set the allowed play window, e.g. 08:00 20:00",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := player.ParseTimeOfDay(args[0])
		if err != nil {
			return err
		}
		end, err := player.ParseTimeOfDay(args[1])
		if err != nil {
			return err
		}
		return updateSettings(cmd, true, func(p *player.Player) error {
			return p.SetWindow(start, end)
		})
	},
}

var settingsRestrictCmd = &cobra.Command{
	Use:   "restrict [on|off]",
	Short: "Turn play-time restrictions on or off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		return updateSettings(cmd, true, func(p *player.Player) error {
			p.RestrictionsEnabled = on
			return nil
		})
	},
}

var settingsFullscreenCmd = &cobra.Command{
	Use:   "fullscreen [on|off]",
	Short: "Remember the fullscreen preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		return updateSettings(cmd, false, func(p *player.Player) error {
			p.Fullscreen = on
			return nil
		})
	},
}

var settingsResetStatsCmd = &cobra.Command{
	Use:   "reset-stats",
	Short: "Zero the play time and session counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd, true, func(p *player.Player) error {
			p.ResetStats()
			return nil
		})
	},
}
