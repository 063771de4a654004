package app

import (
	"errors"

	"github.com/vk/ck3graph/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SavePath string
	Options  config.Options
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SavePath == "" {
		return nil, errors.New("SavePath is a required configuration field and cannot be empty")
	}
	if err := cfg.Options.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
