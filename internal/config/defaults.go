package config

import (
	_ "embed"
)

//go:embed defaults/slicer.yaml
var defaultSlicerYAML []byte

// DefaultSlicerConfig returns the hardcoded slicer configuration.
func DefaultSlicerConfig() SlicerConfig {
	return SlicerConfig{
		Round: RoundConfig{
			IntroDelay:      3.5,
			ArcadeDuration:  60,
			RelaxDuration:   90,
			MenuDelay:       0.5,
			RefreshInterval: 0.33,
			EndThreshold:    0.01,
		},
		Launcher: LauncherConfig{
			InitialInterval: 2.0,
			MinInterval:     0.6,
			IntervalStep:    0.05,
			MinWave:         1,
			MaxWave:         3,
			MinSpeed:        22,
			MaxSpeed:        30,
			MaxDrift:        8,
			Gravity:         20,
			CutPoints:       1,
			Bombs: BombConfig{
				ClassicChance: 0.12,
				ArcadeChance:  0.08,
			},
		},
		Blade: BladeConfig{
			TrailLife: 0.25,
			Step:      2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 150,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.3,
				IntervalReduction: 0.4,
				WaveIncrease:      2,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSlicerYAML
}
