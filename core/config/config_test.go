package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shipment-gateway/core/config"
	"shipment-gateway/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, reconcile.ModeBackground, cfg.Sync.Mode)
	assert.Equal(t, time.Hour, cfg.Sync.StalenessWindow)
	assert.Equal(t, 100, cfg.Sync.PageSize)
	assert.Equal(t, 60*time.Minute, cfg.ShipEngine.CarrierCacheTTL)
	assert.Equal(t, uint32(5), cfg.ShipEngine.Breaker.FailureThreshold)
	assert.Equal(t, 30*time.Second, cfg.ShipEngine.Breaker.Timeout)
	assert.Equal(t, "shipment-gateway.events", cfg.Events.Topic)
	assert.False(t, cfg.Events.Enabled())
	assert.Equal(t, 7, cfg.Storage.Retain)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SYNC_MODE", "blocking")
	t.Setenv("SYNC_STALENESS_WINDOW", "15m")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SHIPENGINE_BREAKER_TIMEOUT", "5s")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, reconcile.ModeBlocking, cfg.Sync.Mode)
	assert.Equal(t, 15*time.Minute, cfg.Sync.StalenessWindow)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.ShipEngine.Breaker.Timeout)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9191\nSHIPENGINE_API_KEY=TEST_key\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("SHIPENGINE_API_KEY")
	})

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.Server.Port)
	assert.Equal(t, "TEST_key", cfg.ShipEngine.APIKey)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("SYNC_MODE", "sometimes")
	_, err := config.LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "sync")

	t.Setenv("SYNC_MODE", "background")
	t.Setenv("DATABASE_DRIVER", "oracle")
	_, err = config.LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "unsupported driver")
}
