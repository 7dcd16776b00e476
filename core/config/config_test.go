package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.True(t, cfg.Store.Migrate)
	assert.Equal(t, "zh", cfg.Reconcile.Locale)
	assert.Equal(t, 0, cfg.Reconcile.CacheTTLSeconds)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("STORE_DRIVER", "database")
	t.Setenv("RECONCILE_CACHE_TTL_SECONDS", "5")

	dir := t.TempDir()
	env := "DATABASE_DRIVER=sqlite\nDATABASE_NAME=roster.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_DRIVER")
		os.Unsetenv("DATABASE_NAME")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "database", cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Reconcile.CacheTTLSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "roster.db", cfg.Database.Name)
}
