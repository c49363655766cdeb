package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Receiving ReceivingConfig
	Sheets    SheetsConfig
	Snapshot  SnapshotConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// LogConfig selects the zap level.
type LogConfig struct {
	Level string
}

// StorageConfig picks the backing store.
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI     string
	DBName  string
	Timeout time.Duration
}

// ReceivingConfig controls how GRNs touch the ledger.
type ReceivingConfig struct {
	Atomic     bool
	WebhookURL string
}

// SheetsConfig contains configuration required to interact with Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether both credentials and a spreadsheet are configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// SnapshotConfig holds scheduler-related settings for the inventory export.
type SnapshotConfig struct {
	SheetRange   string
	CronSchedule string
	Timezone     string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// A missing .env is fine when the environment is set directly.
		_ = godotenv.Load()
	}

	timeout, err := time.ParseDuration(getenvWithDefault("MONGODB_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("MONGODB_TIMEOUT: %w", err)
	}

	atomic, err := strconv.ParseBool(getenvWithDefault("RECEIVING_ATOMIC", "false"))
	if err != nil {
		return nil, fmt.Errorf("RECEIVING_ATOMIC: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getenvWithDefault("APP_PORT", "8080"),
			CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level: getenvWithDefault("LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getenvWithDefault("STORAGE_DRIVER", StorageMongo)),
		},
		MongoDB: MongoDBConfig{
			URI:     getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName:  getenvWithDefault("MONGODB_DB_NAME", "stockroom"),
			Timeout: timeout,
		},
		Receiving: ReceivingConfig{
			Atomic:     atomic,
			WebhookURL: os.Getenv("RECEIPT_WEBHOOK_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
		},
		Snapshot: SnapshotConfig{
			SheetRange:   getenvWithDefault("SNAPSHOT_SHEET_RANGE", "Inventory!A:I"),
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Storage.Driver {
	case StorageMemory:
	case StorageMongo:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageMongo, StorageMemory, c.Storage.Driver)
	}

	if c.MongoDB.Timeout <= 0 {
		return errors.New("MONGODB_TIMEOUT must be positive")
	}

	if c.Receiving.Atomic && c.Storage.Driver != StorageMongo {
		return errors.New("RECEIVING_ATOMIC requires STORAGE_DRIVER=mongo")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID must be provided together")
	}

	if c.Sheets.Enabled() {
		if c.Snapshot.SheetRange == "" {
			return errors.New("SNAPSHOT_SHEET_RANGE must be provided")
		}
		if c.Snapshot.CronSchedule == "" {
			return errors.New("SNAPSHOT_CRON must be provided")
		}
	}

	if _, err := time.LoadLocation(c.Snapshot.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
