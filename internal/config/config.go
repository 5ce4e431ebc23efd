// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string
	Storage     StorageConfig
	Auth        AuthConfig
	Shipping    ShippingConfig
}

type StorageConfig struct {
	DataDir string
}

type AuthConfig struct {
	MaxLoginAttempts int
	// Minimum seconds between password attempts for the same email once the
	// throttle burst is spent.
	ThrottleSeconds int
	ThrottleBurst   int
}

type ShippingConfig struct {
	VolumeFactor float64
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Auth: AuthConfig{
			MaxLoginAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 3),
			ThrottleSeconds:  getEnvAsInt("LOGIN_THROTTLE_SECONDS", 1),
			ThrottleBurst:    getEnvAsInt("LOGIN_THROTTLE_BURST", 3),
		},
		Shipping: ShippingConfig{
			VolumeFactor: getEnvAsFloat("SHIPPING_VOLUME_FACTOR", 0.5),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Auth.MaxLoginAttempts < 1 {
		return fmt.Errorf("LOGIN_MAX_ATTEMPTS must be at least 1")
	}
	if c.Shipping.VolumeFactor < 0 {
		return fmt.Errorf("SHIPPING_VOLUME_FACTOR cannot be negative")
	}
	return nil
}

// Helper functions
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
