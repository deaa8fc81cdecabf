package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string        `env:"APP_ENV, default=development"`
	LogLevel         string        `env:"LOG_LEVEL"`
	Port             string        `env:"PORT, default=8080"`
	HTTPReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT, default=15s"`
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT, default=120s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT, default=60s"`
	RateLimitPerMin  int           `env:"RATE_LIMIT_PER_MINUTE, default=30"`
	CORSOrigins      []string      `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173"`
	MaxUploadBytes   int64         `env:"MAX_UPLOAD_BYTES, default=20971520"`

	Quota   QuotaConfig
	Store   StoreConfig
	Gemini  GeminiConfig
	Auth    AuthConfig
	GeoIPDB string `env:"GEOIP_DB_PATH"`
}

// QuotaConfig controls the daily edit allowance.
type QuotaConfig struct {
	DailyMax int    `env:"QUOTA_DAILY_MAX, default=5"`
	Timezone string `env:"QUOTA_TIMEZONE, default=UTC"`
}

// StoreConfig selects where quota records live.
type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER, default=memory"`
	SQLitePath  string `env:"SQLITE_PATH, default=mamboro.db"`
	RedisURL    string `env:"REDIS_URL, default=redis://localhost:6379/0"`
	DatabaseURL string `env:"DATABASE_URL"`
}

// GeminiConfig configures the remote image model.
type GeminiConfig struct {
	APIKey  string `env:"GEMINI_API_KEY"`
	Model   string `env:"GEMINI_MODEL, default=gemini-2.5-flash-image"`
	BaseURL string `env:"GEMINI_BASE_URL"`
	RPM     int    `env:"GEMINI_REQUESTS_PER_MINUTE, default=0"`
}

// AuthConfig configures Google login and session tokens.
type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	SessionTTL     time.Duration `env:"SESSION_TTL, default=24h"`
	GoogleClientID string        `env:"GOOGLE_CLIENT_ID"`
	GoogleIssuer   string        `env:"GOOGLE_ISSUER, default=https://accounts.google.com"`
	AdminToken     string        `env:"ADMIN_TOKEN"`
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case StoreMemory, StoreSQLite, StoreRedis:
	case StorePostgres:
		if cfg.Store.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	if cfg.Quota.DailyMax <= 0 {
		return nil, fmt.Errorf("QUOTA_DAILY_MAX must be positive")
	}
	if _, err := time.LoadLocation(cfg.Quota.Timezone); err != nil {
		return nil, fmt.Errorf("QUOTA_TIMEZONE: %w", err)
	}

	if cfg.Auth.GoogleClientID != "" && cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when GOOGLE_CLIENT_ID is set")
	}

	return &cfg, nil
}

// QuotaLocation returns the time zone used to compute calendar days.
func (c *Config) QuotaLocation() *time.Location {
	loc, err := time.LoadLocation(c.Quota.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
