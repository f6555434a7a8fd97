package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Engine: InvadersEngine{
			TickDivider:    5,
			PlayerMaxShots: 3,
			EnemyMaxShots:  1,
			BonusPoints:    5,
		},
		Formation: InvadersFormation{
			MoveEvery:    6,
			MinMoveEvery: 1,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "wave",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				IntervalReduction: 5,
			},
		},
	}
}
