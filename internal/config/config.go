// Package config provides YAML-based configuration loading and difficulty
// management for the slicer game.
package config

// SlicerConfig contains all configuration for the slicer game.
type SlicerConfig struct {
	Round      RoundConfig      `yaml:"round"`
	Launcher   LauncherConfig   `yaml:"launcher"`
	Blade      BladeConfig      `yaml:"blade"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RoundConfig defines round timings. All values are seconds.
type RoundConfig struct {
	IntroDelay      float64 `yaml:"intro_delay"` // wait before a timed round starts its clock
	ArcadeDuration  float64 `yaml:"arcade_duration"`
	RelaxDuration   float64 `yaml:"relax_duration"`
	MenuDelay       float64 `yaml:"menu_delay"`       // wait between round end and the menu
	RefreshInterval float64 `yaml:"refresh_interval"` // HUD score refresh period
	EndThreshold    float64 `yaml:"end_threshold"`    // clock value treated as expired
}

// LauncherConfig defines how fruit is thrown.
type LauncherConfig struct {
	InitialInterval float64 `yaml:"initial_interval"` // seconds between waves at round start
	MinInterval     float64 `yaml:"min_interval"`
	IntervalStep    float64 `yaml:"interval_step"` // seconds shaved off after each wave
	MinWave         int     `yaml:"min_wave"`
	MaxWave         int     `yaml:"max_wave"`
	MinSpeed        float64 `yaml:"min_speed"` // upward launch speed, cells per second
	MaxSpeed        float64 `yaml:"max_speed"`
	MaxDrift        float64 `yaml:"max_drift"` // sideways speed, cells per second
	Gravity         float64 `yaml:"gravity"`   // cells per second squared
	CutPoints       int     `yaml:"cut_points"`

	Bombs BombConfig `yaml:"bombs"`
}

// BombConfig defines per-mode bomb chances. Relax never throws bombs.
type BombConfig struct {
	ClassicChance float64 `yaml:"classic_chance"`
	ArcadeChance  float64 `yaml:"arcade_chance"`
}

// BladeConfig defines the slicing cursor.
type BladeConfig struct {
	TrailLife float64 `yaml:"trail_life"` // seconds a trail point stays sharp
	Step      int     `yaml:"step"`       // cells moved per key press
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // added to launch speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // fraction of the wave interval removed at max difficulty
	WaveIncrease      int     `yaml:"wave_increase"`      // extra fruit per wave at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
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
