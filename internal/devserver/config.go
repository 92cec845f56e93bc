// Package devserver is an in-memory stand-in for the pricewatch backend.
// It implements the backend's wire contract, cookie-authenticated REST with
// the same paths, payloads and status codes, so the client can be run and
// integration-tested without the real service. It is not the product
// backend: no scraping, no scheduler, no persistence.
package devserver

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration for the dev server, loaded from
// environment variables.
type Config struct {
	Addr           string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	Seed           bool
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		Addr:           getEnv("DEVSERVER_ADDR", ":8000"),
		JWTSecret:      getEnv("DEVSERVER_JWT_SECRET", "dev-only-secret"),
		TokenTTL:       time.Duration(getEnvInt("DEVSERVER_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		AllowedOrigins: strings.Split(getEnv("DEVSERVER_ALLOWED_ORIGINS", "http://localhost:5173"), ","),
		Seed:           getEnv("DEVSERVER_SEED", "true") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
