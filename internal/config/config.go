// Package config loads environment-driven settings. Variables use the
// BIDBOARD_ prefix, e.g. BIDBOARD_DATABASE_URL, BIDBOARD_SESSION_SECRET.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "BIDBOARD_"

type Config struct {
	ServerAddress string        `koanf:"server_address"`
	DatabaseURL   string        `koanf:"database_url"`
	SessionSecret string        `koanf:"session_secret"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	Environment   string        `koanf:"environment"`
}

func defaults() Config {
	return Config{
		ServerAddress: "0.0.0.0:8080",
		SessionTTL:    24 * time.Hour,
		Environment:   "development",
	}
}

// Load merges defaults with BIDBOARD_* environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("BIDBOARD_DATABASE_URL is not set")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("BIDBOARD_SESSION_SECRET is not set")
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
