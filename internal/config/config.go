package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
)

// Storage backends understood by STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	Addr              string
	LogLevel          string
	StorageBackend    string
	DataDir           string
	DBPath            string
	StorageKey        string
	StorageQuotaBytes int
	SeedSample        bool
	CORSOrigins       []string

	FlushRetryAttempts int
	FlushRetryBackoff  time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		StorageBackend:    strings.ToLower(envOr("STORAGE_BACKEND", BackendSQLite)),
		DataDir:           envOr("DATA_DIR", "data"),
		DBPath:            envOr("DB_PATH", "file:flashdeck.db"),
		StorageKey:        envOr("STORAGE_KEY", flashcard.DefaultKey),
		StorageQuotaBytes: envIntOr("STORAGE_QUOTA_BYTES", 5*1024*1024),
		SeedSample:        envBoolOr("SEED_SAMPLE", true),
		CORSOrigins:       envListOr("CORS_ORIGINS", []string{"*"}),

		FlushRetryAttempts: envIntOr("FLUSH_RETRY_ATTEMPTS", 5),
		FlushRetryBackoff:  envDurationOr("FLUSH_RETRY_BACKOFF", 500*time.Millisecond),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		problems = append(problems, "STORAGE_KEY cannot be empty")
	}

	if c.FlushRetryAttempts < 0 {
		problems = append(problems, "FLUSH_RETRY_ATTEMPTS cannot be negative")
	}
	if c.FlushRetryAttempts > 0 && c.FlushRetryBackoff <= 0 {
		problems = append(problems, "FLUSH_RETRY_BACKOFF must be positive when retries are enabled")
	}

	switch c.StorageBackend {
	case BackendMemory:
		if c.StorageQuotaBytes < 0 {
			problems = append(problems, "STORAGE_QUOTA_BYTES cannot be negative")
		}
	case BackendFile:
		if strings.TrimSpace(c.DataDir) == "" {
			problems = append(problems, "DATA_DIR cannot be empty for the file backend")
		}
	case BackendSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			problems = append(problems, "DB_PATH cannot be empty for the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_BACKEND %q must be memory, file or sqlite", c.StorageBackend))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
