package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Addr)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.SnapshotSchedule)
}

func TestLoadPostgresRequiresDBURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_URL", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DB_URL", "postgres://localhost:5432/productivity")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.StoreDriver)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SNAPSHOT_SCHEDULE", "@hourly")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "@hourly", cfg.SnapshotSchedule)
}
