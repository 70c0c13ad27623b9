package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port        string
	MongoURI    string
	MongoDB     string
	JWTSecret   string
	TokenExpiry int // hours
}

// LoadConfig reads configuration from the environment, loading a .env file
// first when one is present.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "mentorway"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		TokenExpiry: getEnvInt("TOKEN_EXPIRY_HOURS", 72),
	}

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is empty, tokens will not be secure")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.WithField("key", key).Warn("Invalid integer in environment, using fallback")
		return fallback
	}
	return parsed
}
