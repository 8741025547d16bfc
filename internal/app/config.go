package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	RootPath string // application root containing config/component-load.hcl

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RootPath == "" {
		return nil, errors.New("RootPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
