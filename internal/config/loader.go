package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadInvaders loads Invaders configuration.
// Search order: customPath -> ~/.arcade/configs/invaders.yaml -> ./configs/invaders.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadInvaders(customPath string) (InvadersConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseInvaders(data)
		if err != nil {
			return DefaultInvadersConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("invaders.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseInvaders(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/invaders.yaml"); err == nil {
		if cfg, err := parseInvaders(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseInvaders(defaultInvadersYAML)
	if err != nil {
		return DefaultInvadersConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseInvaders decodes data over the hardcoded defaults.
func parseInvaders(data []byte) (InvadersConfig, error) {
	cfg := DefaultInvadersConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyInvadersPreset modifies the config based on a difficulty preset.
func ApplyInvadersPreset(cfg *InvadersConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
