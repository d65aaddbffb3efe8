package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and the optional .env file.
// With no overrides every program behaves the same: no timeout, warn-level logs.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "swapi-curl")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("request_timeout_seconds", 0) // 0 disables the client timeout

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must not be negative)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	return &cfg, nil
}
