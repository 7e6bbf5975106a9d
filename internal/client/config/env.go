package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig holds the raw environment overrides.
type envConfig struct {
	APIBaseURL string `env:"DEVFOLIO_API_URL"`
	Hostname   string `env:"DEVFOLIO_HOSTNAME"`
	Database   string `env:"DEVFOLIO_DB"`
	Verbose    *bool  `env:"DEVFOLIO_VERBOSE"`
}

// parseEnv overlays Config with DEVFOLIO_* variables. Unset variables leave
// the current values alone. Panics on malformed input, like the other
// loaders.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.Hostname != "" {
		cfg.Hostname = ec.Hostname
	}
	if ec.Database != "" {
		cfg.DatabasePath = ec.Database
	}
	if ec.Verbose != nil {
		cfg.Verbose = *ec.Verbose
	}
}
