// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

// BlockBlastConfig contains all configuration for the Meteor Blast game.
type BlockBlastConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Hand        HandConfig        `yaml:"hand"`
	Obstacles   ObstacleConfig    `yaml:"obstacles"`
	Progression ProgressionConfig `yaml:"progression"`
	Animation   AnimationConfig   `yaml:"animation"`
	Reveal      RevealConfig      `yaml:"reveal"`
}

// BoardConfig defines the playfield dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// HandConfig defines the player's hand of pieces.
type HandConfig struct {
	Size int `yaml:"size"`
}

// ObstacleConfig defines meteorite seeding and repopulation.
type ObstacleConfig struct {
	Enabled            bool    `yaml:"enabled"`
	Density            float64 `yaml:"density"`             // Fraction of cells seeded at start
	RepopulateDensity  float64 `yaml:"repopulate_density"`  // Fraction of a cleared line re-seeded
	RepopulateOnClears bool    `yaml:"repopulate_on_clears"` // false disables repopulation
}

// ProgressionConfig defines level and point progression.
type ProgressionConfig struct {
	LinesPerLevel int     `yaml:"lines_per_level"`
	PointsRatio   float64 `yaml:"points_ratio"` // Share of line score credited as reveal points
}

// AnimationConfig defines presentation timings.
type AnimationConfig struct {
	ClearMillis int `yaml:"clear_ms"`
}

// RevealConfig defines the image reveal side-mechanic.
type RevealConfig struct {
	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	BlockCost int            `yaml:"block_cost"`
	Presets   []RevealPreset `yaml:"presets"`
}

// RevealPreset is a bulk random reveal offer.
type RevealPreset struct {
	Count int `yaml:"count"`
	Cost  int `yaml:"cost"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
	DifficultyCustom DifficultyPreset = "custom" // obstacle settings exactly as configured
)

// DensityForPreset returns the obstacle density for a difficulty preset.
// Unknown presets fall back to normal.
func DensityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.15
	case DifficultyHard:
		return 0.35
	default:
		return 0.25
	}
}

// IsFixedPreset returns true if the preset disables obstacle repopulation.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset converts a flag value into a preset.
// Returns false for values that are not a known preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed, DifficultyCustom:
		return p, true
	}
	return "", false
}
