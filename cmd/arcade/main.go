// arcade is a terminal math arcade: twelve mini-games plus a coin wallet,
// XP progression and an economy simulator, playable locally or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores
//	arcade wallet            - Show or change the coin balance
//	arcade progress          - Level, XP, missions, badges and the level curve
//	arcade economy           - Economy simulator
//	arcade settings          - User settings
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/scores.db)
//	--profile <name>    - Player profile (default: local)
//	--log-level <lvl>   - debug, info, warn or error
//	--sound             - Play sound effects
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/math-arcade/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/math-arcade/internal/games/algebrabalance"
	_ "github.com/vovakirdan/math-arcade/internal/games/anglecommander"
	_ "github.com/vovakirdan/math-arcade/internal/games/angledefense"
	_ "github.com/vovakirdan/math-arcade/internal/games/anglemaster"
	_ "github.com/vovakirdan/math-arcade/internal/games/braintug"
	_ "github.com/vovakirdan/math-arcade/internal/games/datadetective"
	_ "github.com/vovakirdan/math-arcade/internal/games/factorninja"
	_ "github.com/vovakirdan/math-arcade/internal/games/functionmachine"
	_ "github.com/vovakirdan/math-arcade/internal/games/mathmatch"
	_ "github.com/vovakirdan/math-arcade/internal/games/patternbridge"
	_ "github.com/vovakirdan/math-arcade/internal/games/spillthetea"
	_ "github.com/vovakirdan/math-arcade/internal/games/vectorvalley"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagProfile  string
	flagLogLevel string
	flagSound    bool

	// Game flags shared by play, menu and serve
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Math Arcade - math mini-games in your terminal",
	Long: `Math Arcade is a terminal collection of math mini-games with a
persistent coin wallet, XP levels, missions and badges.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  wallet    - Show or change the coin balance
  progress  - Level, XP, missions, badges and the level curve
  economy   - Economy simulator
  settings  - User settings

Examples:
  arcade list
  arcade play factor-ninja
  arcade play brain-tug --mode local
  arcade menu --sound
  arcade serve --ssh :2222
  arcade wallet add 100
  arcade progress curve exponential --base 100 --factor 1.2`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores and profile database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Player profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound effects")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(economyCmd)
	rootCmd.AddCommand(settingsCmd)
}
