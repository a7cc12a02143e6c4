// Package config loads process-level defaults from the environment.
// Command-line flags override these values.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	LogLevel         string
	Tolerance        int
	Aggressiveness   int
	MinGap           int
	Workers          int
	SliceShadowWidth int
	OutputDir        string
}

func Load() *Config {
	return &Config{
		LogLevel:         getEnv("SLICEFORGE_LOG_LEVEL", "info"),
		Tolerance:        getEnvInt("SLICEFORGE_TOLERANCE", 30),
		Aggressiveness:   getEnvInt("SLICEFORGE_AGGRESSIVENESS", 50),
		MinGap:           getEnvInt("SLICEFORGE_MIN_GAP", 0),
		Workers:          getEnvInt("SLICEFORGE_WORKERS", 0),
		SliceShadowWidth: getEnvInt("SLICEFORGE_SHADOW_WIDTH", 2),
		OutputDir:        getEnv("SLICEFORGE_OUTPUT_DIR", "./out"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
