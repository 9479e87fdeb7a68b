package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"jobboard"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"jobboard_dev_password"`
	DBName     string `env:"DB_NAME" envDefault:"jobboard"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	AccessTokenSecret      string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret     string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTokenExpiration  time.Duration `env:"ACCESS_TOKEN_EXPIRATION" envDefault:"15m"`
	RefreshTokenExpiration time.Duration `env:"REFRESH_TOKEN_EXPIRATION" envDefault:"168h"`
}

// Load reads configuration from the environment. Missing token secrets
// are a configuration error: the caller must refuse to start.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AccessTokenSecret == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if cfg.RefreshTokenSecret == "" {
		return nil, errors.New("REFRESH_TOKEN_SECRET is required")
	}

	return &cfg, nil
}
