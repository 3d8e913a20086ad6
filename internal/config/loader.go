package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// load resolves a config file in search order:
// customPath -> ~/.arcade/configs/<name>.{yaml,toml} -> ./configs/<name>.{yaml,toml} -> embedded default.
// Only a broken customPath is an error; other candidates are skipped when unreadable.
func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := decode(customPath, data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, ext := range []string{".yaml", ".toml"} {
		// Try user config directory
		if userCfgPath := userConfigPath(name + ext); userCfgPath != "" {
			if data, err := os.ReadFile(userCfgPath); err == nil {
				if err := decode(userCfgPath, data, &cfg); err == nil {
					return cfg, nil
				}
			}
		}

		// Try local configs directory
		local := filepath.Join("configs", name+ext)
		if data, err := os.ReadFile(local); err == nil {
			if err := decode(local, data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode picks the format from the file extension.
func decode(path string, data []byte, v any) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return toml.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadFactorNinja loads Factor Ninja configuration.
func LoadFactorNinja(customPath string) (FactorNinjaConfig, error) {
	return load("factor-ninja", customPath, defaultFactorNinjaYAML, DefaultFactorNinjaConfig)
}

// ApplyFactorNinjaPreset modifies the config based on a difficulty preset.
func ApplyFactorNinjaPreset(cfg *FactorNinjaConfig, preset DifficultyPreset) {
	cfg.Difficulty.ApplyPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
	}
}

// LoadAngle loads the shared Angle Commander/Defense configuration.
func LoadAngle(customPath string) (AngleConfig, error) {
	return load("angle", customPath, defaultAngleYAML, DefaultAngleConfig)
}

// ApplyAnglePreset modifies the config based on a difficulty preset.
// Easy targets snap to 15 degrees.
func ApplyAnglePreset(cfg *AngleConfig, preset DifficultyPreset) {
	cfg.Difficulty.ApplyPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Targets.Step = 15
		cfg.Defense.Lives = 5
	case DifficultyHard:
		cfg.Targets.Step = 5
		cfg.Defense.Lives = 2
	}
}

// LoadBrainTug loads Brain Tug configuration.
func LoadBrainTug(customPath string) (BrainTugConfig, error) {
	return load("brain-tug", customPath, defaultBrainTugYAML, DefaultBrainTugConfig)
}

// ApplyBrainTugPreset modifies the config based on a difficulty preset.
// The CPU gets sharper and quicker on harder presets.
func ApplyBrainTugPreset(cfg *BrainTugConfig, preset DifficultyPreset) {
	cfg.Difficulty.ApplyPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.CPU.Accuracy = 0.6
		cfg.CPU.MinThinkMs, cfg.CPU.MaxThinkMs = 3000, 5000
	case DifficultyHard:
		cfg.CPU.Accuracy = 0.9
		cfg.CPU.MinThinkMs, cfg.CPU.MaxThinkMs = 1500, 2800
	}
}

// LoadQuiz loads the tuning for one quiz game. Games missing from the file get
// DefaultQuizConfig.
func LoadQuiz(gameID, customPath string) (QuizConfig, error) {
	set, err := load("quiz", customPath, defaultQuizYAML, func() QuizSet { return QuizSet{} })
	if err != nil {
		return DefaultQuizConfig(), err
	}
	cfg, ok := set.Games[gameID]
	if !ok {
		return DefaultQuizConfig(), nil
	}
	return cfg, nil
}

// ApplyQuizPreset modifies the config based on a difficulty preset.
func ApplyQuizPreset(cfg *QuizConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		if cfg.Lives > 0 {
			cfg.Lives += 2
		}
	case DifficultyHard:
		if cfg.Lives > 1 {
			cfg.Lives--
		}
		if cfg.StartLevel > 0 {
			cfg.StartLevel += 5
		}
	}
}
