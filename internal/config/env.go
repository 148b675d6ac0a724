package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override CLI flag defaults.
const (
	EnvDBPath     = "BLOCKBLAST_DB"
	EnvConfigPath = "BLOCKBLAST_CONFIG"
	EnvDifficulty = "BLOCKBLAST_DIFFICULTY"
	EnvFPS        = "BLOCKBLAST_FPS"
	EnvLogFile    = "BLOCKBLAST_LOG"
)

// Env holds settings read from the process environment.
// Empty/zero fields mean "not set".
type Env struct {
	DBPath     string
	ConfigPath string
	Difficulty string
	FPS        int
	LogFile    string
}

// LoadEnv reads an optional .env file (or the given files) into the process
// environment and returns the recognised overrides. Missing files are not an error.
func LoadEnv(files ...string) Env {
	//nolint:errcheck // .env is optional
	godotenv.Load(files...)

	return Env{
		DBPath:     os.Getenv(EnvDBPath),
		ConfigPath: os.Getenv(EnvConfigPath),
		Difficulty: os.Getenv(EnvDifficulty),
		FPS:        getEnvAsInt(EnvFPS, 0),
		LogFile:    os.Getenv(EnvLogFile),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
