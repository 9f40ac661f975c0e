package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	var cfg SlicerConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if cfg != DefaultSlicerConfig() {
		t.Errorf("embedded defaults differ from hardcoded:\n%+v\n%+v", cfg, DefaultSlicerConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadSlicerCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slicer.yaml")
	data := []byte("round:\n  arcade_duration: 30\nlauncher:\n  max_wave: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSlicer(path)
	if err != nil {
		t.Fatalf("LoadSlicer() failed: %v", err)
	}
	if cfg.Round.ArcadeDuration != 30 {
		t.Errorf("ArcadeDuration = %v, want 30", cfg.Round.ArcadeDuration)
	}
	if cfg.Launcher.MaxWave != 5 {
		t.Errorf("MaxWave = %d, want 5", cfg.Launcher.MaxWave)
	}
	if cfg.Round.RelaxDuration != 90 {
		t.Errorf("unset RelaxDuration = %v, want default 90", cfg.Round.RelaxDuration)
	}
}

func TestLoadSlicerCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadSlicer(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("round: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSlicer(bad); err == nil {
		t.Error("expected error for malformed yaml")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("launcher:\n  min_wave: 4\n  max_wave: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSlicer(invalid); err == nil {
		t.Error("expected error for inverted wave range")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SlicerConfig)
	}{
		{"zero arcade", func(c *SlicerConfig) { c.Round.ArcadeDuration = 0 }},
		{"negative intro", func(c *SlicerConfig) { c.Round.IntroDelay = -1 }},
		{"zero refresh", func(c *SlicerConfig) { c.Round.RefreshInterval = 0 }},
		{"min above initial", func(c *SlicerConfig) { c.Launcher.MinInterval = 5 }},
		{"speed inverted", func(c *SlicerConfig) { c.Launcher.MaxSpeed = 1 }},
		{"no gravity", func(c *SlicerConfig) { c.Launcher.Gravity = 0 }},
		{"bomb chance", func(c *SlicerConfig) { c.Launcher.Bombs.ArcadeChance = 1.5 }},
		{"blade step", func(c *SlicerConfig) { c.Blade.Step = 0 }},
		{"progression", func(c *SlicerConfig) { c.Difficulty.Progression.Type = "random" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSlicerConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestApplySlicerPreset(t *testing.T) {
	cfg := DefaultSlicerConfig()
	ApplySlicerPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	cfg = DefaultSlicerConfig()
	ApplySlicerPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", cfg.Difficulty.Enabled, cfg.Difficulty.InitialLevel)
	}
	if cfg.Launcher.MaxWave != 4 {
		t.Errorf("hard preset MaxWave = %d, want 4", cfg.Launcher.MaxWave)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("hard preset invalid: %v", err)
	}

	cfg = DefaultSlicerConfig()
	ApplySlicerPreset(&cfg, DifficultyEasy)
	if err := cfg.Validate(); err != nil {
		t.Errorf("easy preset invalid: %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset(insane) should fail")
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
}
