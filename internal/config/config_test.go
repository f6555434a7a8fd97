package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parseInvaders(defaultInvadersYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultInvadersConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultInvadersConfig())
	}
}

func TestLoadInvadersCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invaders.yaml")
	data := "engine:\n  tick_divider: 2\nformation:\n  move_every: 9\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInvaders(path)
	if err != nil {
		t.Fatalf("LoadInvaders: %v", err)
	}
	if cfg.Engine.TickDivider != 2 {
		t.Errorf("TickDivider = %d, expected 2", cfg.Engine.TickDivider)
	}
	if cfg.Formation.MoveEvery != 9 {
		t.Errorf("MoveEvery = %d, expected 9", cfg.Formation.MoveEvery)
	}
	// Untouched fields keep their defaults.
	if cfg.Engine.PlayerMaxShots != 3 {
		t.Errorf("PlayerMaxShots = %d, expected default 3", cfg.Engine.PlayerMaxShots)
	}
	if cfg.Difficulty.Progression.Type != "wave" {
		t.Errorf("Progression.Type = %q, expected default wave", cfg.Difficulty.Progression.Type)
	}
}

func TestLoadInvadersErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadInvaders(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("engine: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadInvaders(bad)
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
	if cfg != DefaultInvadersConfig() {
		t.Error("errors should still return the defaults")
	}
}

func TestApplyInvadersPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			ApplyInvadersPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tt.wantLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.wantLevel)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset(""); !ok || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should be rejected")
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "wave", MaxAt: 4},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		wave int
		want float64
	}{
		{1, 0.0},
		{3, 0.5},
		{5, 1.0},
		{9, 1.0},
	}
	for _, tt := range tests {
		if got := d.Level(0, tt.wave); got != tt.want {
			t.Errorf("Level(wave=%d) = %v, expected %v", tt.wave, got, tt.want)
		}
	}

	d.SetEnabled(false)
	d.SetInitialLevel(1.5)
	if got := d.Level(0, 9); got != 1.0 {
		t.Errorf("disabled Level = %v, expected clamped initial level 1.0", got)
	}
}

func TestDifficultyLevelByScore(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	})
	if got := d.Level(50, 1); got != 0.75 {
		t.Errorf("Level(score=50) = %v, expected 0.75", got)
	}
}

func TestDifficultyInterval(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "wave", MaxAt: 2},
		Scaling:     ScalingConfig{IntervalReduction: 4},
	})

	tests := []struct {
		wave int
		want int
	}{
		{1, 6},
		{2, 4},
		{3, 2},
		{10, 2},
	}
	for _, tt := range tests {
		if got := d.Interval(6, 1, 0, tt.wave); got != tt.want {
			t.Errorf("Interval(wave=%d) = %d, expected %d", tt.wave, got, tt.want)
		}
	}

	if got := d.Interval(6, 3, 0, 10); got != 3 {
		t.Errorf("Interval should respect the minimum, got %d", got)
	}
	if got := d.Interval(1, 0, 0, 10); got != 1 {
		t.Errorf("Interval should never drop below 1, got %d", got)
	}
}
