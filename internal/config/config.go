// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aristath/advisor/internal/domain"
	"github.com/aristath/advisor/internal/utils"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir     string // Directory holding advisor.db (always absolute)
	Port        int
	LogLevel    string
	DevMode     bool
	SeedCatalog bool

	Strategy StrategyConfig

	CORSOrigins         []string
	AuthRateLimit       int    // Requests per minute per IP on /api/auth
	MaintenanceSchedule string // Cron schedule for database maintenance jobs

	Backup *BackupConfig
}

// StrategyConfig configures the external predictive module
type StrategyConfig struct {
	ProductsURL string                  // Name-suggestion endpoint
	CategoryURL string                  // Category-suggestion endpoint
	Contract    domain.StrategyContract // Default response contract
	Timeout     time.Duration           // Upper bound for a single call
}

// BackupConfig holds off-site backup configuration.
// Backups are disabled when Bucket is empty.
type BackupConfig struct {
	Bucket        string
	Endpoint      string // Optional, for S3-compatible stores
	Region        string
	AccessKey     string
	SecretKey     string
	Schedule      string
	RetentionDays int
}

// Enabled reports whether off-site backups are configured
func (b *BackupConfig) Enabled() bool {
	return b != nil && b.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("ADVISOR_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:     absDataDir,
		Port:        getEnvAsInt("GO_PORT", 8080),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DevMode:     getEnvAsBool("DEV_MODE", false),
		SeedCatalog: getEnvAsBool("SEED_CATALOG", false),
		Strategy: StrategyConfig{
			ProductsURL: getEnv("STRATEGY_PRODUCTS_URL", "http://localhost:8005/recommend"),
			CategoryURL: getEnv("STRATEGY_CATEGORY_URL", "http://localhost:8005/predict"),
			Contract:    domain.StrategyContract(getEnv("STRATEGY_CONTRACT", string(domain.ContractProducts))),
			Timeout:     getEnvAsDuration("STRATEGY_TIMEOUT", 5*time.Second),
		},
		CORSOrigins:         utils.ParseCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AuthRateLimit:       getEnvAsInt("AUTH_RATE_LIMIT", 10),
		MaintenanceSchedule: getEnv("MAINTENANCE_SCHEDULE", "@every 1h"),
		Backup:              loadBackupConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabasePath returns the location of the advisor database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "advisor.db")
}

// Validate checks if required configuration is present and well-formed
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if _, ok := domain.ParseStrategyContract(string(c.Strategy.Contract)); !ok {
		return fmt.Errorf("invalid strategy contract %q (want %q or %q)",
			c.Strategy.Contract, domain.ContractProducts, domain.ContractCategory)
	}

	if c.Strategy.Timeout <= 0 {
		return fmt.Errorf("strategy timeout must be positive, got %s", c.Strategy.Timeout)
	}

	for name, raw := range map[string]string{
		"STRATEGY_PRODUCTS_URL": c.Strategy.ProductsURL,
		"STRATEGY_CATEGORY_URL": c.Strategy.CategoryURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s %q", name, raw)
		}
	}

	if c.AuthRateLimit < 1 {
		return fmt.Errorf("AUTH_RATE_LIMIT must be at least 1, got %d", c.AuthRateLimit)
	}

	if c.Backup.Enabled() && c.Backup.RetentionDays < 1 {
		return fmt.Errorf("BACKUP_RETENTION_DAYS must be at least 1, got %d", c.Backup.RetentionDays)
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
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func loadBackupConfig() *BackupConfig {
	return &BackupConfig{
		Bucket:        getEnv("BACKUP_S3_BUCKET", ""),
		Endpoint:      getEnv("BACKUP_S3_ENDPOINT", ""),
		Region:        getEnv("BACKUP_S3_REGION", "auto"),
		AccessKey:     getEnv("BACKUP_S3_ACCESS_KEY", ""),
		SecretKey:     getEnv("BACKUP_S3_SECRET_KEY", ""),
		Schedule:      getEnv("BACKUP_SCHEDULE", "@daily"),
		RetentionDays: getEnvAsInt("BACKUP_RETENTION_DAYS", 30),
	}
}
