package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads the .env file once at startup. Missing files are tolerated
// because production containers inject variables directly.
func LoadEnv() error {
	if err := godotenv.Load(".env"); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

// GetEnv reads an environment variable, returning "" when unset.
func GetEnv(key string) string {
	return os.Getenv(key)
}

// GetEnvOrDefault reads an environment variable with a fallback value.
func GetEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
