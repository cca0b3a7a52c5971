package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	APIBaseURL string
	HTTPPort   string
	SessionDB  string
	Secret     string
	DemoMode   bool
	LogLevel   string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	sessionDB := os.Getenv("SESSION_DB")
	if sessionDB == "" {
		sessionDB = "medtrack.db"
	}

	secret := os.Getenv("SECRET")
	if secret == "" {
		secret = "dev_secret"
	}

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	demo, _ := strconv.ParseBool(os.Getenv("DEMO_MODE"))

	return Config{
		APIBaseURL: baseURL,
		HTTPPort:   port,
		SessionDB:  sessionDB,
		Secret:     secret,
		DemoMode:   demo,
		LogLevel:   level,
	}
}
