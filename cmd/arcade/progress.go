package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-arcade/internal/economy"
)

var (
	flagMissionType  string
	flagMissionDesc  string
	flagMissionXP    int
	flagMissionCoins int

	flagBadgeTier      string
	flagBadgeIcon      string
	flagBadgeColor     string
	flagBadgeCondition string

	flagCurveBase   float64
	flagCurveFactor float64
	flagCurveScript string
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Level, XP, missions, badges and the level curve",
	Long: `Show and edit the progression of the current profile.

Examples:
  arcade progress
  arcade progress xp 250
  arcade progress mission add "Solve 10 equations" --xp 80 --coins 30
  arcade progress mission claim m1
  arcade progress badge unlock b2
  arcade progress curve exponential --base 100 --factor 1.15
  arcade progress curve script --script ./curve.lua
  arcade progress avatar focus 60`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			out := cmd.OutOrStdout()
			p.Progress(func(pr *economy.Progress) {
				fmt.Fprintf(out, "Profile: %s\n", p.Name)
				fmt.Fprintf(out, "Level %d  (%d / %d XP)\n", pr.Level, pr.XP, pr.MaxXP())
				fmt.Fprintf(out, "Coins: %s\n", economy.FormatNumber(float64(p.Wallet.Balance())))
				a := pr.Avatar
				fmt.Fprintf(out, "Avatar: logic %d  creativity %d  focus %d  memory %d\n", a.Logic, a.Creativity, a.Focus, a.Memory)
				fmt.Fprintln(out)
				printMissions(out, pr.Missions)
				fmt.Fprintln(out)
				printBadges(out, pr.Badges)
			})
			return nil
		})
	},
}

var progressXPCmd = &cobra.Command{
	Use:          "xp <amount>",
	Short:        "Award XP, applying level-ups",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid XP amount %q", args[0])
		}
		return withProfile(func(p *economy.Profile) error {
			p.Progress(func(pr *economy.Progress) {
				gained := pr.AddXP(n)
				fmt.Fprintf(cmd.OutOrStdout(), "+%d XP (%d levels gained). Level %d, %d / %d XP\n",
					n, gained, pr.Level, pr.XP, pr.MaxXP())
			})
			return nil
		})
	},
}

var progressLevelCmd = &cobra.Command{
	Use:          "level <level> [xp]",
	Short:        "Set level and optionally raw XP",
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level %q", args[0])
		}
		xp := -1
		if len(args) == 2 {
			if xp, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid XP %q", args[1])
			}
		}
		return withProfile(func(p *economy.Profile) error {
			p.Progress(func(pr *economy.Progress) {
				pr.SetLevel(level)
				if xp >= 0 {
					pr.SetXP(xp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Level %d, %d / %d XP\n", pr.Level, pr.XP, pr.MaxXP())
			})
			return nil
		})
	},
}

var progressMissionCmd = &cobra.Command{
	Use:   "mission",
	Short: "List, design, claim and delete missions",
}

var missionListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List missions",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			p.Progress(func(pr *economy.Progress) { printMissions(cmd.OutOrStdout(), pr.Missions) })
			return nil
		})
	},
}

var missionAddCmd = &cobra.Command{
	Use:          "add <title>",
	Short:        "Design a new mission",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[0])
		if title == "" {
			return fmt.Errorf("mission title is required")
		}
		mt := economy.MissionType(strings.ToLower(flagMissionType))
		switch mt {
		case economy.MissionDaily, economy.MissionWeekly, economy.MissionAchievement:
		default:
			return fmt.Errorf("unknown mission type %q (daily, weekly, achievement)", flagMissionType)
		}
		if flagMissionXP < 0 || flagMissionCoins < 0 {
			return fmt.Errorf("rewards cannot be negative")
		}
		return withProfile(func(p *economy.Profile) error {
			p.Progress(func(pr *economy.Progress) {
				m := pr.AddMission(economy.Mission{
					Title:       title,
					Description: flagMissionDesc,
					Type:        mt,
					RewardXP:    flagMissionXP,
					RewardCoins: flagMissionCoins,
				})
				fmt.Fprintf(cmd.OutOrStdout(), "Created mission %s: %s\n", m.ID, m.Title)
			})
			return nil
		})
	},
}

var missionClaimCmd = &cobra.Command{
	Use:          "claim <id>",
	Short:        "Claim a mission's XP and coins",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(p *economy.Profile) error {
			var ok bool
			p.Progress(func(pr *economy.Progress) { ok = pr.CompleteMission(args[0]) })
			if !ok {
				return fmt.Errorf("mission %q not found or already claimed", args[0])
			}
			s := p.Summary()
			fmt.Fprintf(cmd.OutOrStdout(), "Claimed %s. Level %d, %d coins\n", args[0], s.Level, s.Coins)
			return nil
		})
	},
}

var missionDeleteCmd = &cobra.Command{
	Use:          "delete <id>",
	Aliases:      []string{"rm"},
	Short:        "Delete a mission",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(p *economy.Profile) error {
			var ok bool
			p.Progress(func(pr *economy.Progress) { ok = pr.DeleteMission(args[0]) })
			if !ok {
				return fmt.Errorf("mission %q: %w", args[0], economy.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted mission %s\n", args[0])
			return nil
		})
	},
}

var progressBadgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "List, design, unlock and delete badges",
}

var badgeListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List badges",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			p.Progress(func(pr *economy.Progress) { printBadges(cmd.OutOrStdout(), pr.Badges) })
			return nil
		})
	},
}

var badgeAddCmd = &cobra.Command{
	Use:          "add <name>",
	Short:        "Design a new badge",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("badge name is required")
		}
		tier := economy.BadgeTier(strings.ToLower(flagBadgeTier))
		switch tier {
		case economy.TierCommon, economy.TierRare, economy.TierEpic, economy.TierLegendary, economy.TierMythic:
		default:
			return fmt.Errorf("unknown badge tier %q", flagBadgeTier)
		}
		return withProfile(func(p *economy.Profile) error {
			p.Progress(func(pr *economy.Progress) {
				b := pr.AddBadge(economy.Badge{
					Name:      name,
					Tier:      tier,
					Icon:      flagBadgeIcon,
					Color:     flagBadgeColor,
					Condition: flagBadgeCondition,
				})
				fmt.Fprintf(cmd.OutOrStdout(), "Created badge %s: %s\n", b.ID, b.Name)
			})
			return nil
		})
	},
}

var badgeUnlockCmd = &cobra.Command{
	Use:          "unlock <id>",
	Short:        "Unlock a badge",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(p *economy.Profile) error {
			var ok bool
			p.Progress(func(pr *economy.Progress) { ok = pr.UnlockBadge(args[0]) })
			if !ok {
				return fmt.Errorf("badge %q not found or already unlocked", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unlocked badge %s\n", args[0])
			return nil
		})
	},
}

var badgeDeleteCmd = &cobra.Command{
	Use:          "delete <id>",
	Aliases:      []string{"rm"},
	Short:        "Delete a badge",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(p *economy.Profile) error {
			var ok bool
			p.Progress(func(pr *economy.Progress) { ok = pr.DeleteBadge(args[0]) })
			if !ok {
				return fmt.Errorf("badge %q: %w", args[0], economy.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted badge %s\n", args[0])
			return nil
		})
	},
}

var progressCurveCmd = &cobra.Command{
	Use:   "curve <linear|exponential|ease|script>",
	Short: "Generate and apply a level curve",
	Long: `Generate the XP required for levels 1..99 and apply it to the profile.

A script curve is a Lua file defining:
  function xp(level, base, factor) return base * level end`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := economy.ParseCurveMode(args[0])
		if err != nil {
			return err
		}

		var curve []int
		if mode == economy.CurveScript {
			if flagCurveScript == "" {
				return fmt.Errorf("script curves need --script <file.lua>")
			}
			src, readErr := os.ReadFile(flagCurveScript)
			if readErr != nil {
				return readErr
			}
			curve, err = economy.GenerateScriptCurve(cmd.Context(), string(src), flagCurveBase, flagCurveFactor)
		} else {
			curve, err = economy.GenerateCurve(mode, flagCurveBase, flagCurveFactor)
		}
		if err != nil {
			return err
		}

		return withProfile(func(p *economy.Profile) error {
			p.Progress(func(pr *economy.Progress) { pr.SetLevelCurve(curve) })
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Applied %s curve (%d levels)\n", mode, len(curve))
			for _, lvl := range []int{1, 2, 5, 10, 25, 50, 99} {
				fmt.Fprintf(out, "  Level %-3d %s XP\n", lvl, economy.FormatNumber(float64(curve[lvl-1])))
			}
			return nil
		})
	},
}

var progressAvatarCmd = &cobra.Command{
	Use:          "avatar <logic|creativity|focus|memory> <value>",
	Short:        "Set an avatar stat (0-100)",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q", args[1])
		}
		return withProfile(func(p *economy.Profile) error {
			var setErr error
			p.Progress(func(pr *economy.Progress) { setErr = pr.SetAvatarStat(strings.ToLower(args[0]), v) })
			if setErr != nil {
				return setErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %d\n", args[0], max(0, min(100, v)))
			return nil
		})
	},
}

var progressResetCmd = &cobra.Command{
	Use:          "reset",
	Short:        "Reset level, XP, avatar, missions and badges",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withProfile(func(p *economy.Profile) error {
			p.Progress(func(pr *economy.Progress) { pr.Reset() })
			fmt.Fprintln(cmd.OutOrStdout(), "Progress reset")
			return nil
		})
	},
}

func init() {
	missionAddCmd.Flags().StringVar(&flagMissionType, "type", "daily", "Mission type: daily, weekly, achievement")
	missionAddCmd.Flags().StringVar(&flagMissionDesc, "desc", "", "Mission description")
	missionAddCmd.Flags().IntVar(&flagMissionXP, "xp", 50, "XP reward")
	missionAddCmd.Flags().IntVar(&flagMissionCoins, "coins", 20, "Coin reward")
	progressMissionCmd.AddCommand(missionListCmd, missionAddCmd, missionClaimCmd, missionDeleteCmd)

	badgeAddCmd.Flags().StringVar(&flagBadgeTier, "tier", "common", "Tier: common, rare, epic, legendary, mythic")
	badgeAddCmd.Flags().StringVar(&flagBadgeIcon, "icon", "Award", "Icon name")
	badgeAddCmd.Flags().StringVar(&flagBadgeColor, "color", "", "Custom color (hex)")
	badgeAddCmd.Flags().StringVar(&flagBadgeCondition, "condition", "", "How the badge is earned")
	progressBadgeCmd.AddCommand(badgeListCmd, badgeAddCmd, badgeUnlockCmd, badgeDeleteCmd)

	progressCurveCmd.Flags().Float64Var(&flagCurveBase, "base", 100, "Base XP")
	progressCurveCmd.Flags().Float64Var(&flagCurveFactor, "factor", 1.2, "Growth factor")
	progressCurveCmd.Flags().StringVar(&flagCurveScript, "script", "", "Lua script for script curves")

	progressCmd.AddCommand(
		progressXPCmd,
		progressLevelCmd,
		progressMissionCmd,
		progressBadgeCmd,
		progressCurveCmd,
		progressAvatarCmd,
		progressResetCmd,
	)
}

func printMissions(w io.Writer, missions []economy.Mission) {
	if len(missions) == 0 {
		fmt.Fprintln(w, "No missions.")
		return
	}
	fmt.Fprintf(w, "  %-16s  %-11s  %-8s  %-36s  %s\n", "ID", "Type", "Status", "Mission", "Reward")
	for _, m := range missions {
		status := "open"
		if m.IsClaimed {
			status = "claimed"
		}
		fmt.Fprintf(w, "  %-16s  %-11s  %-8s  %-36s  %d XP, %d coins\n",
			m.ID, m.Type, status, m.Title, m.RewardXP, m.RewardCoins)
	}
}

func printBadges(w io.Writer, badges []economy.Badge) {
	if len(badges) == 0 {
		fmt.Fprintln(w, "No badges.")
		return
	}
	fmt.Fprintf(w, "  %-16s  %-10s  %-8s  %-20s  %s\n", "ID", "Tier", "Status", "Badge", "Condition")
	for _, b := range badges {
		status := "locked"
		if b.IsUnlocked {
			status = "unlocked"
		}
		fmt.Fprintf(w, "  %-16s  %-10s  %-8s  %-20s  %s\n", b.ID, b.Tier, status, b.Name, b.Condition)
	}
}
