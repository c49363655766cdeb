package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every key Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "LOG_LEVEL", "STORAGE_DRIVER", "MONGODB_URI", "MONGODB_DB_NAME",
		"MONGODB_TIMEOUT", "RECEIVING_ATOMIC", "RECEIPT_WEBHOOK_URL",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
		"SNAPSHOT_SHEET_RANGE", "SNAPSHOT_CRON", "TIMEZONE", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StorageMongo, cfg.Storage.Driver)
	assert.Equal(t, "stockroom", cfg.MongoDB.DBName)
	assert.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	assert.False(t, cfg.Receiving.Atomic)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "0 20 * * *", cfg.Snapshot.CronSchedule)
	assert.Empty(t, cfg.Server.CORSAllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("MONGODB_TIMEOUT", "3s")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.MongoDB.Timeout)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\nRECEIVING_ATOMIC=true\n"), 0o600))
	// godotenv does not override variables that are already set, even when empty.
	require.NoError(t, os.Unsetenv("APP_PORT"))
	require.NoError(t, os.Unsetenv("RECEIVING_ATOMIC"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Receiving.Atomic)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "postgres"}},
		{name: "bad timeout", env: map[string]string{"MONGODB_TIMEOUT": "soon"}},
		{name: "bad atomic flag", env: map[string]string{"RECEIVING_ATOMIC": "maybe"}},
		{name: "atomic on memory", env: map[string]string{"STORAGE_DRIVER": "memory", "RECEIVING_ATOMIC": "true"}},
		{name: "half sheets config", env: map[string]string{"GOOGLE_SHEET_DATABASE_ID": "sheet"}},
		{name: "bad timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(missingEnvFile(t))
			assert.Error(t, err)
		})
	}
}
