package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Snapshot   SnapshotConfig
	EventStore EventStoreConfig
	Auth       AuthConfig
}

type ServerConfig struct {
	Port int
	Env  string
	// RateLimitRPS bounds requests per second across the API; RateLimitBurst
	// allows short spikes (autosave fires on every field edit).
	RateLimitRPS   int
	RateLimitBurst int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// SnapshotConfig selects where in-progress questionnaire snapshots live.
type SnapshotConfig struct {
	// Backend: "memory", "file" or "postgres"
	Backend string
	// Dir holds one JSON file per snapshot key when Backend is "file"
	Dir string
	// KeyPrefix namespaces snapshot keys, one key per respondent session
	KeyPrefix string
}

// EventStoreConfig holds configuration for the EventStoreDB publisher.
type EventStoreConfig struct {
	Host     string
	Port     int
	Insecure bool
	Username string
	Password string
	Enabled  bool
}

type AuthConfig struct {
	JWTSecret       string
	SessionTTLHours int
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnvInt("SERVER_PORT", 8080),
			Env:            getEnv("ENV", "development"),
			RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 50),
			RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 100),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "intake"),
			Password: getEnv("DB_PASSWORD", "intake"),
			Database: getEnv("DB_NAME", "intake"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Snapshot: SnapshotConfig{
			Backend:   getEnv("SNAPSHOT_BACKEND", "file"),
			Dir:       getEnv("SNAPSHOT_DIR", "./data/snapshots"),
			KeyPrefix: getEnv("SNAPSHOT_KEY_PREFIX", "medaid-questionnaire"),
		},
		EventStore: EventStoreConfig{
			Host:     getEnv("EVENTSTORE_HOST", "localhost"),
			Port:     getEnvInt("EVENTSTORE_PORT", 2113),
			Insecure: getEnvBool("EVENTSTORE_INSECURE", true),
			Username: getEnv("EVENTSTORE_USERNAME", ""),
			Password: getEnv("EVENTSTORE_PASSWORD", ""),
			Enabled:  getEnvBool("EVENTSTORE_ENABLED", false),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-in-prod"),
			SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
