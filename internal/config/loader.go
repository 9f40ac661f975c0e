package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSlicer loads the slicer configuration.
// Search order: customPath -> ~/.slicer/configs/slicer.yaml -> ./configs/slicer.yaml -> embedded default
// Files are decoded over the hardcoded defaults, so a partial file only
// overrides the keys it names.
func LoadSlicer(customPath string) (SlicerConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultSlicerConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("slicer.yaml"), filepath.Join("configs", "slicer.yaml")} {
		if path == "" {
			continue
		}
		if cfg, ok := tryLoad(path); ok {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultSlicerConfig()
	if err := yaml.Unmarshal(defaultSlicerYAML, &cfg); err != nil {
		return DefaultSlicerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, unreadable or invalid
// files are skipped.
func tryLoad(path string) (SlicerConfig, bool) {
	cfg := DefaultSlicerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".slicer", "configs", filename)
}

// ApplySlicerPreset modifies the config based on a difficulty preset.
func ApplySlicerPreset(cfg *SlicerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the launcher based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Launcher.InitialInterval = 2.5
		cfg.Launcher.MaxWave = 2
		cfg.Launcher.Bombs.ClassicChance = 0.06
		cfg.Launcher.Bombs.ArcadeChance = 0.04
	case DifficultyHard:
		cfg.Launcher.InitialInterval = 1.5
		cfg.Launcher.MaxWave = 4
		cfg.Launcher.Bombs.ClassicChance = 0.2
		cfg.Launcher.Bombs.ArcadeChance = 0.15
	}
}

// Validate reports the first setting that would break the game loop.
func (c SlicerConfig) Validate() error {
	r := c.Round
	if r.IntroDelay < 0 || r.MenuDelay < 0 || r.EndThreshold < 0 {
		return errors.New("round delays must not be negative")
	}
	if r.ArcadeDuration <= 0 || r.RelaxDuration <= 0 {
		return errors.New("round durations must be positive")
	}
	if r.RefreshInterval <= 0 {
		return errors.New("round refresh_interval must be positive")
	}

	l := c.Launcher
	if l.InitialInterval <= 0 || l.MinInterval <= 0 {
		return errors.New("launcher intervals must be positive")
	}
	if l.MinInterval > l.InitialInterval {
		return fmt.Errorf("launcher min_interval %.2f exceeds initial_interval %.2f", l.MinInterval, l.InitialInterval)
	}
	if l.IntervalStep < 0 {
		return errors.New("launcher interval_step must not be negative")
	}
	if l.MinWave < 1 || l.MaxWave < l.MinWave {
		return fmt.Errorf("launcher wave range %d..%d is invalid", l.MinWave, l.MaxWave)
	}
	if l.MinSpeed <= 0 || l.MaxSpeed < l.MinSpeed {
		return fmt.Errorf("launcher speed range %.1f..%.1f is invalid", l.MinSpeed, l.MaxSpeed)
	}
	if l.Gravity <= 0 {
		return errors.New("launcher gravity must be positive")
	}
	if l.CutPoints <= 0 {
		return errors.New("launcher cut_points must be positive")
	}
	for _, chance := range []float64{l.Bombs.ClassicChance, l.Bombs.ArcadeChance} {
		if chance < 0 || chance > 1 {
			return fmt.Errorf("bomb chance %.2f is outside 0..1", chance)
		}
	}

	if c.Blade.TrailLife <= 0 || c.Blade.Step <= 0 {
		return errors.New("blade trail_life and step must be positive")
	}

	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		return fmt.Errorf("unknown difficulty progression %q", c.Difficulty.Progression.Type)
	}
	return nil
}
