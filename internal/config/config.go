// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// InvadersConfig contains all configuration for the Invaders game.
type InvadersConfig struct {
	Engine     InvadersEngine    `yaml:"engine"`
	Formation  InvadersFormation `yaml:"formation"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// InvadersEngine defines simulation parameters for Invaders.
type InvadersEngine struct {
	TickDivider    int `yaml:"tick_divider"`     // Host ticks per engine update
	PlayerMaxShots int `yaml:"player_max_shots"` // Concurrent player shots
	EnemyMaxShots  int `yaml:"enemy_max_shots"`  // Concurrent formation shots
	BonusPoints    int `yaml:"bonus_points"`     // Score for a bonus dot
}

// InvadersFormation defines how fast the formation marches.
type InvadersFormation struct {
	MoveEvery    int `yaml:"move_every"`     // Engine updates between steps at the lowest difficulty
	MinMoveEvery int `yaml:"min_move_every"` // Fastest allowed step interval
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "wave", or "none"
	MaxAt int    `yaml:"max_at"` // Score/wave at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	IntervalReduction int `yaml:"interval_reduction"` // Step interval reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	if name == "" {
		return DifficultyNormal, true
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
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
