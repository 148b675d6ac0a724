package config

import (
	_ "embed"
)

//go:embed defaults/blockblast.yaml
var defaultBlockBlastYAML []byte

// DefaultBlockBlastConfig returns the default Meteor Blast configuration.
func DefaultBlockBlastConfig() BlockBlastConfig {
	return BlockBlastConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 15,
		},
		Hand: HandConfig{
			Size: 6,
		},
		Obstacles: ObstacleConfig{
			Enabled:            true,
			Density:            0.25,
			RepopulateDensity:  0.25,
			RepopulateOnClears: true,
		},
		Progression: ProgressionConfig{
			LinesPerLevel: 10,
			PointsRatio:   0.5,
		},
		Animation: AnimationConfig{
			ClearMillis: 500,
		},
		Reveal: RevealConfig{
			Width:     25,
			Height:    30,
			BlockCost: 10,
			Presets: []RevealPreset{
				{Count: 1, Cost: 10},
				{Count: 3, Cost: 25},
				{Count: 5, Cost: 40},
				{Count: 10, Cost: 75},
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blockblast", "blockblast_zen":
		return defaultBlockBlastYAML
	default:
		return nil
	}
}
