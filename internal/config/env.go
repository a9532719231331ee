package config

import (
	"os"
	"strconv"
	"time"
)

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getSecondsEnv reads a positive (possibly fractional) number of seconds
func getSecondsEnv(key string, fallback time.Duration) time.Duration {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return time.Duration(v * float64(time.Second))
}
