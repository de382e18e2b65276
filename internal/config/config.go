package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains runtime configuration required by the service.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR" envDefault:":8080"`

	// StoreDriver selects the event store: "postgres" or "memory".
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// DBURL is the Postgres connection string; required for the postgres driver.
	DBURL string `env:"DB_URL"`

	// LogLevel is the zap level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// SnapshotSchedule is an optional cron spec; each tick logs a factory
	// metrics snapshot. Empty disables the job.
	SnapshotSchedule string `env:"SNAPSHOT_SCHEDULE"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.StoreDriver {
	case "postgres":
		if cfg.DBURL == "" {
			return Config{}, fmt.Errorf("DB_URL required for the postgres store driver")
		}
	case "memory":
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", cfg.StoreDriver)
	}

	return cfg, nil
}
