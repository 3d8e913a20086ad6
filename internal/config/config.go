// Package config provides YAML/TOML-based game tuning and difficulty
// management for the arcade mini-games.
package config

// FactorNinjaConfig contains all configuration for Factor Ninja.
// Distances are in world units; the renderer maps the world onto the terminal.
type FactorNinjaConfig struct {
	World      WorldConfig      `yaml:"world" toml:"world"`
	Physics    NinjaPhysics     `yaml:"physics" toml:"physics"`
	Spawn      NinjaSpawn       `yaml:"spawn" toml:"spawn"`
	Gameplay   NinjaGameplay    `yaml:"gameplay" toml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// WorldConfig is the size of a game's logical play field.
type WorldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// NinjaPhysics defines the launch arc of number entities (units per second).
type NinjaPhysics struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`
	LaunchMin   float64 `yaml:"launch_min" toml:"launch_min"`
	LaunchMax   float64 `yaml:"launch_max" toml:"launch_max"`
	DriftFactor float64 `yaml:"drift_factor" toml:"drift_factor"` // Pull toward the centre column
	DriftJitter float64 `yaml:"drift_jitter" toml:"drift_jitter"`
}

// NinjaSpawn defines how number entities are created and culled.
type NinjaSpawn struct {
	IntervalMs    int     `yaml:"interval_ms" toml:"interval_ms"`
	MinValue      int     `yaml:"min_value" toml:"min_value"`
	MaxValue      int     `yaml:"max_value" toml:"max_value"`
	Radius        float64 `yaml:"radius" toml:"radius"`
	Margin        float64 `yaml:"margin" toml:"margin"`
	DespawnMargin float64 `yaml:"despawn_margin" toml:"despawn_margin"`
}

// NinjaGameplay defines scoring for Factor Ninja.
type NinjaGameplay struct {
	Lives       int `yaml:"lives" toml:"lives"`
	SlicePoints int `yaml:"slice_points" toml:"slice_points"`
	SliceCoins  int `yaml:"slice_coins" toml:"slice_coins"`
	Particles   int `yaml:"particles" toml:"particles"`
}

// AngleConfig is shared by Angle Commander and Angle Defense.
type AngleConfig struct {
	Targets    AngleTargets     `yaml:"targets" toml:"targets"`
	Accuracy   AngleAccuracy    `yaml:"accuracy" toml:"accuracy"`
	Defense    AngleDefense     `yaml:"defense" toml:"defense"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// AngleTargets defines which angles are asked for and how the dial moves.
type AngleTargets struct {
	Step     int `yaml:"step" toml:"step"`           // Targets are multiples of this
	DialStep int `yaml:"dial_step" toml:"dial_step"` // Degrees per key press
	FastStep int `yaml:"fast_step" toml:"fast_step"` // Degrees per Up/Down press
	Rounds   int `yaml:"rounds" toml:"rounds"`
}

// AngleAccuracy defines the scoring bands.
type AngleAccuracy struct {
	PerfectTolerance float64 `yaml:"perfect_tolerance" toml:"perfect_tolerance"`
	CloseTolerance   float64 `yaml:"close_tolerance" toml:"close_tolerance"`
	PerfectReward    int     `yaml:"perfect_reward" toml:"perfect_reward"`
	CloseReward      int     `yaml:"close_reward" toml:"close_reward"`
}

// AngleDefense defines the radar enemies.
type AngleDefense struct {
	SpawnIntervalMs int     `yaml:"spawn_interval_ms" toml:"spawn_interval_ms"`
	EnemySpeed      float64 `yaml:"enemy_speed" toml:"enemy_speed"` // Radar units per second
	StartDistance   float64 `yaml:"start_distance" toml:"start_distance"`
	CoreRadius      float64 `yaml:"core_radius" toml:"core_radius"`
	Lives           int     `yaml:"lives" toml:"lives"`
}

// BrainTugConfig contains all configuration for Brain Tug.
type BrainTugConfig struct {
	Rope       TugRope          `yaml:"rope" toml:"rope"`
	CPU        TugCPU           `yaml:"cpu" toml:"cpu"`
	Rewards    TugRewards       `yaml:"rewards" toml:"rewards"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// TugRope defines rope movement.
type TugRope struct {
	Limit      int `yaml:"limit" toml:"limit"`
	Pull       int `yaml:"pull" toml:"pull"`
	HulkPull   int `yaml:"hulk_pull" toml:"hulk_pull"`
	HulkStreak int `yaml:"hulk_streak" toml:"hulk_streak"` // Correct answers already in the streak
	Slip       int `yaml:"slip" toml:"slip"`
	StunMs     int `yaml:"stun_ms" toml:"stun_ms"`
}

// TugCPU defines the computer opponent.
type TugCPU struct {
	MinThinkMs int     `yaml:"min_think_ms" toml:"min_think_ms"`
	MaxThinkMs int     `yaml:"max_think_ms" toml:"max_think_ms"`
	Accuracy   float64 `yaml:"accuracy" toml:"accuracy"`
}

// TugRewards defines the coin payout.
type TugRewards struct {
	WinCoins int `yaml:"win_coins" toml:"win_coins"`
}

// QuizConfig tunes one turn-based quiz game.
type QuizConfig struct {
	Rounds        int  `yaml:"rounds" toml:"rounds"` // 0 = play until lives or time run out
	Lives         int  `yaml:"lives" toml:"lives"`   // 0 = mistakes cost nothing
	CorrectPoints int  `yaml:"correct_points" toml:"correct_points"`
	CorrectCoins  int  `yaml:"correct_coins" toml:"correct_coins"`
	WinCoins      int  `yaml:"win_coins" toml:"win_coins"`
	Timed         bool `yaml:"timed" toml:"timed"`
	TimeLimit     int  `yaml:"time_limit" toml:"time_limit"` // Seconds; 0 uses the profile default
	StartLevel    int  `yaml:"start_level" toml:"start_level"`
	FeedbackMs    int  `yaml:"feedback_ms" toml:"feedback_ms"`
}

// QuizSet maps game ids to their quiz tuning.
type QuizSet struct {
	Games map[string]QuizConfig `yaml:"games" toml:"games"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier" toml:"speed_multiplier"`     // Multiplier added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction" toml:"interval_reduction"` // Fraction cut from spawn intervals at max difficulty
	ValueGrowth       int     `yaml:"value_growth" toml:"value_growth"`             // Added to the largest spawned value at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values mean "use config default".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset sets the progression fields shared by every game.
func (d *DifficultyConfig) ApplyPreset(preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}
