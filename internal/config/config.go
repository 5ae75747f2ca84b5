package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath        string
	RedisURL            string
	BackendAPIURL       string
	ServerPort          string
	SyncIntervalSeconds int
	SessionTTLSeconds   int
}

func Load() *Config {
	// Load .env file if exists
	godotenv.Load()

	return &Config{
		DatabasePath:        getEnv("DATABASE_PATH", "distrisync.db"),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		BackendAPIURL:       getEnv("BACKEND_API_URL", "https://distriapi.onzacore.site/api"),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		SyncIntervalSeconds: getEnvAsInt("SYNC_INTERVAL_SECONDS", 300),
		SessionTTLSeconds:   getEnvAsInt("SESSION_TTL_SECONDS", 86400),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
