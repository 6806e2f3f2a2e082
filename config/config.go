package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the exercise tracker.
type Config struct {
	Port           string
	MongoURI       string
	DatabaseName   string
	RequestTimeout time.Duration
}

// Load reads environment variables into Config, applying local-dev
// defaults. A .env file is honored when present but not required.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "3000"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017/exercise-tracker"),
		DatabaseName:   getEnv("MONGO_DB", "exercise-tracker"),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
