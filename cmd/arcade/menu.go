package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, press Esc to return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - High scores
  P            - Profile, missions and badges
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30 --sound
  arcade menu --profile alice --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselected difficulty: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger()
	deps, closeDeps := openDeps(logger)

	err := tui.RunSession(deps, terminalConfig(), flagProfile)

	closeDeps()
	closeLog()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
