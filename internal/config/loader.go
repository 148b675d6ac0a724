package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const blockBlastFile = "blockblast.yaml"

// LoadBlockBlast loads Meteor Blast configuration.
// Search order: customPath -> ~/.arcade/configs/blockblast.yaml -> ./configs/blockblast.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadBlockBlast(customPath string) (BlockBlastConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBlockBlastConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseBlockBlast(data)
		if err != nil {
			return DefaultBlockBlastConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(blockBlastFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBlockBlast(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", blockBlastFile)); err == nil {
		if cfg, err := parseBlockBlast(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseBlockBlast(defaultBlockBlastYAML)
	if err != nil {
		return DefaultBlockBlastConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseBlockBlast decodes YAML over the hardcoded defaults and validates the result.
func parseBlockBlast(data []byte) (BlockBlastConfig, error) {
	cfg := DefaultBlockBlastConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports every configuration value the game cannot run with,
// joined into one error.
func (c BlockBlastConfig) Validate() error {
	var errs []error
	if c.Board.Width < 4 || c.Board.Height < 4 {
		errs = append(errs, fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Hand.Size < 1 || c.Hand.Size > 6 {
		errs = append(errs, fmt.Errorf("hand size must be 1-6, got %d", c.Hand.Size))
	}
	if c.Obstacles.Density < 0 || c.Obstacles.Density >= 1 {
		errs = append(errs, fmt.Errorf("obstacle density must be in [0,1), got %v", c.Obstacles.Density))
	}
	if c.Obstacles.RepopulateDensity < 0 || c.Obstacles.RepopulateDensity > 1 {
		errs = append(errs, fmt.Errorf("repopulate density must be in [0,1], got %v", c.Obstacles.RepopulateDensity))
	}
	if c.Progression.LinesPerLevel < 1 {
		errs = append(errs, fmt.Errorf("lines_per_level must be positive, got %d", c.Progression.LinesPerLevel))
	}
	if c.Animation.ClearMillis < 0 {
		errs = append(errs, fmt.Errorf("clear_ms must not be negative, got %d", c.Animation.ClearMillis))
	}
	if c.Reveal.Width < 1 || c.Reveal.Height < 1 {
		errs = append(errs, fmt.Errorf("reveal canvas must be at least 1x1, got %dx%d", c.Reveal.Width, c.Reveal.Height))
	}
	if c.Reveal.BlockCost < 0 {
		errs = append(errs, fmt.Errorf("reveal block_cost must not be negative, got %d", c.Reveal.BlockCost))
	}
	for i, p := range c.Reveal.Presets {
		if p.Count < 1 || p.Cost < 0 {
			errs = append(errs, fmt.Errorf("reveal preset %d needs count >= 1 and cost >= 0, got count %d cost %d", i+1, p.Count, p.Cost))
		}
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBlockBlastPreset modifies the config based on a difficulty preset.
// The preset wins over the obstacle densities from YAML; an empty or custom
// preset leaves them alone.
func ApplyBlockBlastPreset(cfg *BlockBlastConfig, preset DifficultyPreset) {
	if preset == "" || preset == DifficultyCustom {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Obstacles.RepopulateOnClears = false
		return
	}
	cfg.Obstacles.RepopulateOnClears = true
	cfg.Obstacles.Density = DensityForPreset(preset)
	cfg.Obstacles.RepopulateDensity = DensityForPreset(preset)
}
