package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Supabase  SupabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

// SupabaseConfig holds the backend endpoint and keys. None are required at
// startup; a missing value is reported per request as a 500.
type SupabaseConfig struct {
	URL            string        `env:"SUPABASE_URL"`
	AnonKey        string        `env:"SUPABASE_ANON_KEY"`
	ServiceRoleKey string        `env:"SUPABASE_SERVICE_ROLE_KEY"`
	Timeout        time.Duration `env:"SUPABASE_TIMEOUT, default=10s"`
}

// MongoConfig enables the audit trail when URI is set.
type MongoConfig struct {
	URI      string        `env:"MONGO_URI"`
	Database string        `env:"MONGO_DB, default=account_service"`
	AppName  string        `env:"MONGO_APP_NAME, default=account-service"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// RedisConfig enables rate limiting when Addr is set.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB, default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT, default=2s"`
}

type RateLimitConfig struct {
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE, default=30"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if cfg.RateLimit.PerMinute <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", cfg.RateLimit.PerMinute)
	}
	return &cfg, nil
}
