package config

import (
	_ "embed"
)

//go:embed defaults/factor-ninja.yaml
var defaultFactorNinjaYAML []byte

//go:embed defaults/angle.yaml
var defaultAngleYAML []byte

//go:embed defaults/brain-tug.yaml
var defaultBrainTugYAML []byte

//go:embed defaults/quiz.yaml
var defaultQuizYAML []byte

// DefaultFactorNinjaConfig returns the default Factor Ninja configuration.
func DefaultFactorNinjaConfig() FactorNinjaConfig {
	return FactorNinjaConfig{
		World: WorldConfig{Width: 1000, Height: 800},
		Physics: NinjaPhysics{
			Gravity:     720,
			LaunchMin:   780,
			LaunchMax:   1080,
			DriftFactor: 0.18,
			DriftJitter: 60,
		},
		Spawn: NinjaSpawn{
			IntervalMs:    1200,
			MinValue:      4,
			MaxValue:      50,
			Radius:        32,
			Margin:        50,
			DespawnMargin: 200,
		},
		Gameplay: NinjaGameplay{
			Lives:       3,
			SlicePoints: 10,
			SliceCoins:  10,
			Particles:   8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.3,
				IntervalReduction: 0.5,
				ValueGrowth:       50,
			},
		},
	}
}

// DefaultAngleConfig returns the default Angle Commander/Defense configuration.
func DefaultAngleConfig() AngleConfig {
	return AngleConfig{
		Targets: AngleTargets{
			Step:     5,
			DialStep: 1,
			FastStep: 10,
			Rounds:   10,
		},
		Accuracy: AngleAccuracy{
			PerfectTolerance: 3,
			CloseTolerance:   10,
			PerfectReward:    10,
			CloseReward:      5,
		},
		Defense: AngleDefense{
			SpawnIntervalMs: 2500,
			EnemySpeed:      8,
			StartDistance:   100,
			CoreRadius:      6,
			Lives:           3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.5,
			},
		},
	}
}

// DefaultBrainTugConfig returns the default Brain Tug configuration.
func DefaultBrainTugConfig() BrainTugConfig {
	return BrainTugConfig{
		Rope: TugRope{
			Limit:      100,
			Pull:       10,
			HulkPull:   20,
			HulkStreak: 2,
			Slip:       15,
			StunMs:     1000,
		},
		CPU: TugCPU{
			MinThinkMs: 2200,
			MaxThinkMs: 4000,
			Accuracy:   0.75,
		},
		Rewards: TugRewards{WinCoins: 50},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "none"},
			Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultQuizConfig returns the fallback tuning for a quiz game.
func DefaultQuizConfig() QuizConfig {
	return QuizConfig{
		Rounds:        10,
		Lives:         3,
		CorrectPoints: 10,
		CorrectCoins:  5,
		StartLevel:    1,
		FeedbackMs:    1200,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "factor-ninja":
		return defaultFactorNinjaYAML
	case "angle-commander", "angle-defense":
		return defaultAngleYAML
	case "brain-tug":
		return defaultBrainTugYAML
	case "angle-master", "math-match", "pattern-bridge", "algebra-balance",
		"function-machine", "data-detective", "vector-valley", "spill-the-tea":
		return defaultQuizYAML
	default:
		return nil
	}
}
