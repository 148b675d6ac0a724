package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseBlockBlast(defaultBlockBlastYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultBlockBlastConfig()) {
		t.Errorf("embedded YAML drifted from DefaultBlockBlastConfig:\n%+v\nvs\n%+v", cfg, DefaultBlockBlastConfig())
	}
}

func TestLoadBlockBlastCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  width: 8\n  height: 12\nhand:\n  size: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockBlast(path)
	if err != nil {
		t.Fatalf("LoadBlockBlast() failed: %v", err)
	}

	if cfg.Board.Width != 8 || cfg.Board.Height != 12 {
		t.Errorf("board = %dx%d, expected 8x12", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Hand.Size != 3 {
		t.Errorf("hand size = %d, expected 3", cfg.Hand.Size)
	}
	// Untouched sections keep their defaults
	if cfg.Obstacles.Density != 0.25 {
		t.Errorf("density = %v, expected default 0.25", cfg.Obstacles.Density)
	}
	if cfg.Animation.ClearMillis != 500 {
		t.Errorf("clear_ms = %d, expected default 500", cfg.Animation.ClearMillis)
	}
}

func TestLoadBlockBlastErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"hand too large", "hand:\n  size: 9\n"},
		{"board too small", "board:\n  width: 2\n  height: 2\n"},
		{"density out of range", "obstacles:\n  density: 1.5\n"},
		{"not yaml", "board: [1, 2"},
		{"negative block cost", "reveal:\n  block_cost: -5\n"},
		{"preset pays out", "reveal:\n  presets:\n    - { count: 3, cost: -25 }\n"},
		{"preset reveals nothing", "reveal:\n  presets:\n    - { count: 0, cost: 10 }\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadBlockBlast(path); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := LoadBlockBlast(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom path")
	}
}

func TestApplyBlockBlastPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		density    float64
		repopulate bool
	}{
		{DifficultyEasy, 0.15, true},
		{DifficultyNormal, 0.25, true},
		{DifficultyHard, 0.35, true},
		{DifficultyFixed, 0.25, false},
		{DifficultyCustom, 0.25, true},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBlockBlastConfig()
			ApplyBlockBlastPreset(&cfg, tc.preset)
			if cfg.Obstacles.Density != tc.density {
				t.Errorf("density = %v, expected %v", cfg.Obstacles.Density, tc.density)
			}
			if cfg.Obstacles.RepopulateOnClears != tc.repopulate {
				t.Errorf("repopulate = %v, expected %v", cfg.Obstacles.RepopulateOnClears, tc.repopulate)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if p, ok := ParsePreset("custom"); !ok || p != DifficultyCustom {
		t.Errorf("ParsePreset(custom) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("ParsePreset should reject unknown presets")
	}
}

func TestLoadEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "BLOCKBLAST_DB=/tmp/from-dotenv.db\nBLOCKBLAST_FPS=30\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Real environment wins over the .env file
	t.Setenv(EnvDifficulty, "easy")
	t.Setenv(EnvDBPath, "")
	os.Unsetenv(EnvDBPath)
	t.Setenv(EnvFPS, "")
	os.Unsetenv(EnvFPS)

	env := LoadEnv(envFile)

	if env.DBPath != "/tmp/from-dotenv.db" {
		t.Errorf("DBPath = %q, expected value from .env", env.DBPath)
	}
	if env.FPS != 30 {
		t.Errorf("FPS = %d, expected 30", env.FPS)
	}
	if env.Difficulty != "easy" {
		t.Errorf("Difficulty = %q, expected easy", env.Difficulty)
	}
}

func TestCustomPresetKeepsYAMLDensity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dense.yaml")
	data := []byte("obstacles:\n  density: 0.5\n  repopulate_density: 0.1\n  repopulate_on_clears: false\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBlockBlast(path)
	if err != nil {
		t.Fatalf("LoadBlockBlast() failed: %v", err)
	}
	ApplyBlockBlastPreset(&cfg, DifficultyCustom)
	if cfg.Obstacles.Density != 0.5 || cfg.Obstacles.RepopulateDensity != 0.1 || cfg.Obstacles.RepopulateOnClears {
		t.Errorf("custom preset changed obstacles: %+v", cfg.Obstacles)
	}

	ApplyBlockBlastPreset(&cfg, DifficultyHard)
	if cfg.Obstacles.Density != 0.35 {
		t.Errorf("hard preset density = %v, expected 0.35", cfg.Obstacles.Density)
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultBlockBlastConfig()
	cfg.Hand.Size = 0
	cfg.Reveal.BlockCost = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"hand size", "block_cost"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
