package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// LoadConfigFromEnv завантажує конфігурацію зі змінних середовища (для Kubernetes)
func LoadConfigFromEnv() (*Config, error) {
	cfg := Config{Session: &SessionConfig{}}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
