package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR" envDefault:":8000"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	AppID         string        `env:"APP_ID" envDefault:"default-power-store"`
	AdminUserID   int64         `env:"ADMIN_USER_ID"`
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"power-store-secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	StartingCoins int           `env:"STARTING_COINS" envDefault:"50"`
	TxMaxRetries  int           `env:"TX_MAX_RETRIES" envDefault:"8"`
	TxMaxKeys     int           `env:"TX_MAX_KEYS" envDefault:"500"`
	MySQLDSN      string        `env:"MYSQL_DSN"`
	CORSOrigins   []string      `env:"CORS_ORIGINS" envSeparator:","`
	LogDev        bool          `env:"LOG_DEV" envDefault:"false"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.StartingCoins < 1 {
		return fmt.Errorf("STARTING_COINS must be positive, got %d", c.StartingCoins)
	}
	if c.TxMaxRetries < 1 {
		return fmt.Errorf("TX_MAX_RETRIES must be at least 1, got %d", c.TxMaxRetries)
	}
	if c.TxMaxKeys < 2 {
		return fmt.Errorf("TX_MAX_KEYS must be at least 2, got %d", c.TxMaxKeys)
	}
	return nil
}

// KeyPrefix namespaces every Redis key of this game instance.
func (c Config) KeyPrefix() string {
	return "artifacts:" + c.AppID
}
