package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
	"github.com/vovakirdan/math-arcade/internal/platform/tui"
	"github.com/vovakirdan/math-arcade/internal/registry"
)

var flagMode string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move, aim or rotate
  1-4          - Pick an answer
  Y/N          - True / false
  Space        - Fire
  Enter        - Confirm
  Mouse        - Click answers, drag to slice or swipe
  P/Esc        - Pause (Esc after game over returns)
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Extra lives, gentle start
  normal - Standard tuning
  hard   - Fewer lives, harder numbers
  fixed  - No progression, stays at config's initial level

Modes (two-seat games such as brain-tug):
  cpu    - Play against the computer
  local  - Two players on one keyboard (Player 2 answers with 7 8 9 0)

Examples:
  arcade play factor-ninja
  arcade play angle-defense --difficulty hard
  arcade play brain-tug --mode local
  arcade play math-match --config ./my-quiz.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Match mode for two-seat games: cpu, local")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	mode, err := multiplayer.ParseMatchMode(flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	cfg := terminalConfig()

	// Two-seat games without --mode ask for the opponent first
	item := tui.MenuItem{GameID: gameID, Title: registry.Title(gameID)}
	for _, it := range tui.MenuItems() {
		if it.GameID == gameID {
			item = it
		}
	}
	if item.TwoSeat && flagMode == "" {
		selection, selErr := tui.RunSetupSelector(item, preset, cfg.ScreenW, cfg.ScreenH)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}

		// User pressed back or quit
		if selection == nil {
			return
		}
		mode = selection.Mode
		preset = selection.Difficulty
	}

	logger, closeLog := fileLogger()
	deps, closeDeps := openDeps(logger)

	// Create game instance
	game, err := registry.Create(gameID, deps.Options(mode, preset))
	if err != nil {
		closeDeps()
		closeLog()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Run the game
	runErr := tui.Run(game, deps, cfg, mode)

	// Close store before potential exit
	closeDeps()
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
