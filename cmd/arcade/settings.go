package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-arcade/internal/economy"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "User settings",
	Long: `Show or change the settings of the current profile.

Examples:
  arcade settings
  arcade settings default-time 90`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			s := p.Settings()
			fmt.Fprintf(cmd.OutOrStdout(), "Profile:      %s\n", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Default time: %d seconds\n", s.DefaultTime)
			return nil
		})
	},
}

var settingsDefaultTimeCmd = &cobra.Command{
	Use:          "default-time <seconds>",
	Short:        "Set the default length of timed sessions",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid seconds %q", args[0])
		}
		return withProfile(func(p *economy.Profile) error {
			if err := p.SetDefaultTime(seconds); err != nil {
				return fmt.Errorf("default time must be positive: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default time set to %d seconds\n", seconds)
			return nil
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsDefaultTimeCmd)
}
