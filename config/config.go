package config

import (
	"log"
	"os"
	"strconv"
)

// AppConfig holds environment driven configuration values.
// Secrets never have code defaults and must come from the environment.
type AppConfig struct {
	AppPort     string
	SecretKey   string
	DatabaseURI string

	// The single privileged account allowed to manage posts.
	AdminUserID uint

	// Session lifetime in hours.
	SessionTTLHours int

	// Gin framework configuration
	GinMode string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	// Template glob, overridable so tests can run from package directories.
	TemplateGlob string
}

var cfg AppConfig
var loaded bool

// Load reads the application configuration from environment variables.
// It should be called once during boot; the process refuses to start
// without a session secret and a database connection string.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	cfg = AppConfig{
		AppPort:         getEnv("APP_PORT", "8080"),
		SecretKey:       os.Getenv("SECRET_KEY"),
		DatabaseURI:     os.Getenv("DATABASE_URL"),
		AdminUserID:     uint(getEnvInt("ADMIN_USER_ID", 1)),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 72),
		GinMode:         getEnv("GIN_MODE", "release"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPath:         os.Getenv("LOG_PATH"),
		LogMaxSizeMB:    getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:   getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:   getEnvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:     os.Getenv("LOG_COMPRESS") == "true",
		TemplateGlob:    getEnv("TEMPLATE_GLOB", "templates/*.html"),
	}

	if cfg.SecretKey == "" {
		log.Fatal("SECRET_KEY must be set in environment variables")
	}
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URL must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Fatalf("invalid integer value for %s: %v", key, err)
	}
	return i
}
