package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/economy"
	"github.com/vovakirdan/math-arcade/internal/multiplayer"
	"github.com/vovakirdan/math-arcade/internal/registry"
	"github.com/vovakirdan/math-arcade/internal/sound"
	"github.com/vovakirdan/math-arcade/internal/storage"
)

// Deps holds what the screens of one player session share.
// Every field may be nil/zero; the screens degrade to not persisting,
// not playing sound and logging to the default logger.
type Deps struct {
	Store      *storage.Store
	Profile    *economy.Profile
	Sound      *sound.Player
	Logger     *log.Logger
	ConfigPath string
	Difficulty config.DifficultyPreset
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.Default()
	}
	return d.Logger
}

// Options builds the factory options for a new game.
func (d Deps) Options(mode multiplayer.MatchMode, difficulty config.DifficultyPreset) registry.Options {
	opts := registry.Options{
		ConfigPath: d.ConfigPath,
		Difficulty: difficulty,
		Mode:       mode,
	}
	if opts.Difficulty == "" {
		opts.Difficulty = d.Difficulty
	}
	if d.Profile != nil {
		opts.Rewards = d.Profile
		opts.SessionTime = time.Duration(d.Profile.Settings().DefaultTime) * time.Second
	}
	return opts
}

// profileName is the owner used for score rows.
func (d Deps) profileName() string {
	if d.Profile == nil || d.Profile.Name == "" {
		return storage.DefaultProfile
	}
	return d.Profile.Name
}
