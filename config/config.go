package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL      = "http://localhost:8000/api/"
	DefaultPort        = "8080"
	DefaultAuthScheme  = "Token"
	DefaultCurrency    = "INR"
	DefaultStoragePath = ".fundsight/session.json"
	DefaultRedisAddr   = "localhost:6379"
)

// Storage drivers understood by storage.Open
const (
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	APIURL     string
	Port       string
	AuthScheme string
	Currency   string
	LogLevel   string

	StorageDriver string
	StoragePath   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PGURL         string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is read first; values already set
// in the shell environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:        getenv("API_URL", DefaultAPIURL),
		Port:          getenv("PORT", DefaultPort),
		AuthScheme:    getenv("AUTH_SCHEME", DefaultAuthScheme),
		Currency:      strings.ToUpper(getenv("CURRENCY", DefaultCurrency)),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", StorageFile)),
		StoragePath:   getenv("STORAGE_PATH", DefaultStoragePath),
		RedisAddr:     getenv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		PGURL:         os.Getenv("PG_URL"),
	}

	if !strings.HasSuffix(cfg.APIURL, "/") {
		cfg.APIURL += "/"
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
		}
		cfg.RedisDB = n
	}

	switch cfg.StorageDriver {
	case StorageFile, StorageMemory, StorageRedis:
	case StoragePostgres:
		if cfg.PGURL == "" {
			return nil, fmt.Errorf("PG_URL environment variable is required for the postgres storage driver")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
