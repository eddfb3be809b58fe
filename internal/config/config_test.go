package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"harvestdesk/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DSN", "ROOT_PATH", "SEED_DEMO", "REQUEST_TIMEOUT"} {
		t.Setenv(k, "")
	}
	cfg := config.Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Data", cfg.RootPath)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ROOT_PATH", "/Shop/")
	t.Setenv("SEED_DEMO", "false")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	cfg := config.Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Shop", cfg.RootPath)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}
