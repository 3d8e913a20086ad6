package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/math-arcade/internal/config"
	"github.com/vovakirdan/math-arcade/internal/core"
	"github.com/vovakirdan/math-arcade/internal/economy"
	"github.com/vovakirdan/math-arcade/internal/platform/tui"
	"github.com/vovakirdan/math-arcade/internal/sound"
	"github.com/vovakirdan/math-arcade/internal/storage"
)

// newLogger builds the process logger at --log-level writing to w.
func newLogger(w io.Writer) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "arcade",
	})
}

// fileLogger logs to ~/.arcade/arcade.log so the alt screen stays clean.
// The returned closer must be called on exit.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".arcade")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// terminalConfig returns the runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openDeps opens storage, the --profile profile and, with --sound, audio.
// Storage failures are logged and play continues without persistence.
// The returned closer releases everything.
func openDeps(logger *log.Logger) (tui.Deps, func()) {
	deps := tui.Deps{
		Logger:     logger,
		ConfigPath: flagConfig,
		Difficulty: config.ParsePreset(flagDifficulty),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, progress will not be saved", "err", err)
		deps.Profile, _ = economy.LoadProfile(flagProfile, nil, logger)
	} else if profile, err := economy.LoadProfile(flagProfile, store.KV(flagProfile), logger); err != nil {
		logger.Warn("could not load profile, progress will not be saved", "err", err)
		deps.Store = store
		deps.Profile, _ = economy.LoadProfile(flagProfile, nil, logger)
	} else {
		deps.Store = store
		deps.Profile = profile
	}

	if flagSound {
		player := sound.NewPlayer(0.6)
		if err := player.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			deps.Sound = player
		}
	}

	return deps, func() {
		deps.Sound.Close()
		if deps.Store != nil {
			deps.Store.Close()
		}
	}
}

// withProfile loads the --profile profile, runs fn and saves the profile if
// fn succeeds.
func withProfile(fn func(p *economy.Profile) error) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := economy.LoadProfile(flagProfile, store.KV(flagProfile), newLogger(os.Stderr))
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	if err := p.Save(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
