package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken  string
	HTTPAddr  string
	JWTSecret string
	JWTTTL    time.Duration

	Storage  StorageConfig
	Database DatabaseConfig
	AI       AIConfig

	WeeklyGoal           int
	SessionRetentionDays int
	CleanupAt            string
}

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Driver         string
	SQLitePath     string
	MigrationsPath string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// AIConfig holds chat completion settings. An empty APIKey disables the remote client.
type AIConfig struct {
	APIKey    string
	APIURL    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:  os.Getenv("BOT_TOKEN"),
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", StorageSQLite),
			SQLitePath:     getEnv("SQLITE_PATH", "data/danishdeck.db"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "danishdeck"),
			User:     getEnv("DB_USER", "danishdeck"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		AI: AIConfig{
			APIKey: os.Getenv("AI_API_KEY"),
			APIURL: getEnv("AI_API_URL", "https://api.anthropic.com/v1/messages"),
			Model:  getEnv("AI_MODEL", "claude-sonnet-4-20250514"),
		},
		CleanupAt: getEnv("CLEANUP_AT", "03:00"),
	}

	var err error
	if cfg.JWTTTL, err = getEnvDuration("JWT_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.AI.MaxTokens, err = getEnvInt("AI_MAX_TOKENS", 1000); err != nil {
		return nil, err
	}
	if cfg.AI.Timeout, err = getEnvDuration("AI_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.WeeklyGoal, err = getEnvInt("WEEKLY_GOAL", 3); err != nil {
		return nil, err
	}
	if cfg.SessionRetentionDays, err = getEnvInt("SESSION_RETENTION_DAYS", 365); err != nil {
		return nil, err
	}

	// Validate required fields
	switch cfg.Storage.Driver {
	case StorageSQLite:
		if cfg.Storage.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required")
		}
	case StoragePostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageSQLite, StoragePostgres, cfg.Storage.Driver)
	}
	if cfg.WeeklyGoal <= 0 {
		return nil, fmt.Errorf("WEEKLY_GOAL must be positive")
	}

	return cfg, nil
}

// ValidateBot checks the settings the Telegram bot needs
func (c *Config) ValidateBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	return nil
}

// ValidateAPI checks the settings the HTTP API needs
func (c *Config) ValidateAPI() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	return nil
}

// DriverName returns the database/sql driver for the storage backend
func (c *Config) DriverName() string {
	if c.Storage.Driver == StoragePostgres {
		return "postgres"
	}
	return "sqlite3"
}

// DSN returns the connection string for the storage backend
func (c *Config) DSN() string {
	if c.Storage.Driver == StoragePostgres {
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Database.Host,
			c.Database.Port,
			c.Database.User,
			c.Database.Password,
			c.Database.Name,
		)
	}
	return c.Storage.SQLitePath + "?_busy_timeout=5000&_journal_mode=WAL"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
