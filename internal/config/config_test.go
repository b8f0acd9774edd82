package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/flashcard"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		LogLevel:          "INFO",
		StorageBackend:    config.BackendSQLite,
		DataDir:           "data",
		DBPath:            "test.db",
		StorageKey:        flashcard.DefaultKey,
		StorageQuotaBytes: 1024,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_Backends(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "unknown backend",
			mutate:        func(c *config.Config) { c.StorageBackend = "redis" },
			expectedError: "STORAGE_BACKEND",
		},
		{
			name: "sqlite without path",
			mutate: func(c *config.Config) {
				c.StorageBackend = config.BackendSQLite
				c.DBPath = ""
			},
			expectedError: "DB_PATH",
		},
		{
			name: "file without dir",
			mutate: func(c *config.Config) {
				c.StorageBackend = config.BackendFile
				c.DataDir = " "
			},
			expectedError: "DATA_DIR",
		},
		{
			name:          "negative retry attempts",
			mutate:        func(c *config.Config) { c.FlushRetryAttempts = -1 },
			expectedError: "FLUSH_RETRY_ATTEMPTS",
		},
		{
			name: "retries without backoff",
			mutate: func(c *config.Config) {
				c.FlushRetryAttempts = 3
				c.FlushRetryBackoff = 0
			},
			expectedError: "FLUSH_RETRY_BACKOFF",
		},
		{
			name: "memory with negative quota",
			mutate: func(c *config.Config) {
				c.StorageBackend = config.BackendMemory
				c.StorageQuotaBytes = -1
			},
			expectedError: "STORAGE_QUOTA_BYTES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR", "debug"} {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}

	cfg := validConfig()
	cfg.LogLevel = "INVALID"
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Addr:           "",
		LogLevel:       "INVALID",
		StorageBackend: "tape",
		StorageKey:     "",
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "STORAGE_KEY cannot be empty")
	assert.Contains(t, errStr, "STORAGE_BACKEND")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("STORAGE_BACKEND", "FILE")
	t.Setenv("DATA_DIR", "/tmp/decks")
	t.Setenv("SEED_SAMPLE", "false")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, https://decks.example")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, config.BackendFile, cfg.StorageBackend)
	assert.Equal(t, "/tmp/decks", cfg.DataDir)
	assert.False(t, cfg.SeedSample)
	assert.Equal(t, []string{"http://localhost:5173", "https://decks.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("STORAGE_QUOTA_BYTES", "lots")
	t.Setenv("SEED_SAMPLE", "maybe")

	cfg := config.Load()

	assert.Equal(t, 5*1024*1024, cfg.StorageQuotaBytes)
	assert.True(t, cfg.SeedSample)
}

func TestLoad_FlushRetry(t *testing.T) {
	t.Setenv("FLUSH_RETRY_ATTEMPTS", "3")
	t.Setenv("FLUSH_RETRY_BACKOFF", "2s")

	cfg := config.Load()
	assert.Equal(t, 3, cfg.FlushRetryAttempts)
	assert.Equal(t, 2*time.Second, cfg.FlushRetryBackoff)

	t.Setenv("FLUSH_RETRY_BACKOFF", "soon")
	assert.Equal(t, 500*time.Millisecond, config.Load().FlushRetryBackoff)
}

func TestLoad_DefaultStorageKeyMatchesStore(t *testing.T) {
	t.Setenv("STORAGE_KEY", "")

	assert.Equal(t, flashcard.DefaultKey, config.Load().StorageKey)
}
