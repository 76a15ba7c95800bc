package config

import (
	"log"
	"os"
	"strings"
)

const (
	defaultDBPath    = "./dev.db"
	defaultPort      = "8080"
	defaultAppEnv    = "dev"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	AppEnv        string
	LogLevel      string
	LogFormat     string
}

// IsDev reports whether the service runs in the development environment,
// where migrations are applied on startup.
func (c Config) IsDev() bool {
	return c.AppEnv == "" || strings.EqualFold(c.AppEnv, defaultAppEnv)
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production injects real env vars and has no .env file.
	if err := loadDotEnv(".env"); err != nil {
		log.Printf("warning: read .env: %v", err)
	}

	cfg := Config{
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        envOr("DB_PATH", defaultDBPath),
		Port:          envOr("PORT", defaultPort),
		AppEnv:        envOr("APP_ENV", defaultAppEnv),
		LogLevel:      envOr("LOG_LEVEL", defaultLogLevel),
		LogFormat:     envOr("LOG_FORMAT", defaultLogFormat),
	}

	if cfg.AdminEmail == "" {
		log.Print("warning: ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		log.Print("warning: ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		log.Print("warning: SESSION_SECRET is not set")
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
