// Package config loads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Session store kinds accepted by SESSION_STORE.
const (
	SessionStoreMemory   = "memory"
	SessionStoreDatabase = "database"
	SessionStoreRedis    = "redis"
)

// MinSecretLength is the minimum SESSION_SECRET length for HMAC-SHA256.
const MinSecretLength = 32

type Config struct {
	Port        string `env:"PORT,default=8080"`
	DatabaseURL string `env:"DATABASE_URL,default=freshshop.db"`
	StaticDir   string `env:"STATIC_DIR,default=public"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	SessionSecret          string        `env:"SESSION_SECRET"`
	SessionStore           string        `env:"SESSION_STORE,default=database"`
	SessionTTL             time.Duration `env:"SESSION_TTL,default=24h"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL,default=10m"`
	CookieSecure           bool          `env:"COOKIE_SECURE,default=true"`

	RedisAddr     string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB,default=0"`

	BcryptCost         int     `env:"BCRYPT_COST,default=10"`
	LoginRatePerMinute float64 `env:"LOGIN_RATE_PER_MINUTE,default=10"`
	LoginRateBurst     int     `env:"LOGIN_RATE_BURST,default=5"`

	DBMaxOpenConns int `env:"DB_MAX_OPEN_CONNS,default=10"`
	DBMaxIdleConns int `env:"DB_MAX_IDLE_CONNS,default=5"`
}

// Load reads the given .env files (".env" when none are named) without
// overriding variables already set, then decodes and validates the
// environment. Missing .env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that envdecode cannot.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET environment variable is required")
	}
	if len(c.SessionSecret) < MinSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters for HMAC-SHA256 security", MinSecretLength)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreDatabase, SessionStoreRedis:
	default:
		return fmt.Errorf("SESSION_STORE must be one of memory, database, redis; got %q", c.SessionStore)
	}
	if c.LoginRateBurst < 1 {
		return errors.New("LOGIN_RATE_BURST must be at least 1")
	}
	return nil
}

// IsPostgres reports whether DATABASE_URL points at PostgreSQL.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
