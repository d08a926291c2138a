package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	PriceFeed PriceFeedConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// PriceFeedConfig holds settings for the external quote and exchange-rate feed.
// FernetKey is the base64 key used to encrypt the feed API token at rest;
// RefreshSpec is a cron expression for the periodic price refresh job.
type PriceFeedConfig struct {
	BaseURL      string
	RefreshSpec  string
	FernetKey    string
	BaseCurrency string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/invest_ledger.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost"), ","),
		},
		PriceFeed: PriceFeedConfig{
			BaseURL:      getEnv("PRICE_FEED_URL", "https://query1.finance.yahoo.com"),
			RefreshSpec:  getEnv("PRICE_REFRESH_SPEC", "0 30 17 * * MON-FRI"),
			FernetKey:    getEnv("FERNET_KEY", ""),
			BaseCurrency: getEnv("BASE_CURRENCY", "IDR"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
