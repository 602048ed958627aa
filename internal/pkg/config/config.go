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

	Auth       AuthConfig
	Portal     PortalConfig
	Dispatcher DispatcherConfig
	Redis      RedisConfig
}

type AuthConfig struct {
	JWTSecret    string        `env:"JWT_SECRET,    default=dev-secret-change-me"`
	TokenTTL     time.Duration `env:"TOKEN_TTL,     default=24h"`
	LoginLatency time.Duration `env:"LOGIN_LATENCY, default=1s"`
	BcryptCost   int           `env:"BCRYPT_COST,   default=10"`
}

type PortalConfig struct {
	SeedDemoData bool `env:"SEED_DEMO_DATA, default=true"`
}

type DispatcherConfig struct {
	Workers int `env:"DISPATCHER_WORKERS, default=4"`
}

// RedisConfig is optional: an empty Addr disables idempotency keys.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB,        default=0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL, default=24h"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith resolves configuration through l and rejects values the portal
// cannot run with.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.IsProduction() && cfg.Auth.JWTSecret == "dev-secret-change-me" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}
	if cfg.Dispatcher.Workers < 1 {
		return nil, fmt.Errorf("DISPATCHER_WORKERS must be at least 1, got %d", cfg.Dispatcher.Workers)
	}
	if cfg.Auth.LoginLatency < 0 {
		return nil, fmt.Errorf("LOGIN_LATENCY must not be negative")
	}
	return &cfg, nil
}
