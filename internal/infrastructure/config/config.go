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

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig holds every tunable of the credential subsystem. The signing
// secrets have no defaults — the server refuses to start without them.
type AuthConfig struct {
	AccessSecret     string        `env:"JWT_ACCESS_SECRET"`
	RefreshSecret    string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL        time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL       time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	LockoutThreshold int           `env:"LOCKOUT_THRESHOLD, default=5"`
	LockoutDuration  time.Duration `env:"LOCKOUT_DURATION,  default=15m"`
	BcryptCost       int           `env:"BCRYPT_COST,       default=10"`
	LoginRateLimit   int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	LoginRateWindow  time.Duration `env:"LOGIN_RATE_WINDOW, default=1m"`
	AuditWorkers     int           `env:"AUDIT_WORKERS,     default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=journal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.AccessSecret == "" || cfg.Auth.RefreshSecret == "" {
		return nil, fmt.Errorf("config: JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	}
	return &cfg, nil
}
