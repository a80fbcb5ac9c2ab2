package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"intake-reconciler/core/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, match.DefaultDateWindow, cfg.Match.DateWindow)
	assert.Equal(t, 0, cfg.Match.Workers)
	assert.Equal(t, "file", cfg.Source.Location)
	assert.Equal(t, "intakeq-intakes", cfg.Source.PrimaryMapping)
	assert.Equal(t, 5*time.Minute, cfg.Source.CacheTTL)
	assert.Equal(t, 30, cfg.Database.TimeoutSeconds)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("MATCH_DATE_WINDOW", "72h")
	t.Setenv("MATCH_WORKERS", "4")
	t.Setenv("SOURCE_LOCATION", "storage")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 72*time.Hour, cfg.Match.DateWindow)
	assert.Equal(t, 4, cfg.Match.Workers)
	assert.Equal(t, "storage", cfg.Source.Location)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9191\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SERVER_PORT") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.Server.Port)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"Negative window", "MATCH_DATE_WINDOW", "-1h"},
		{"Negative workers", "MATCH_WORKERS", "-2"},
		{"Unknown location", "SOURCE_LOCATION", "ftp"},
		{"Unknown mapping", "SOURCE_PRIMARY_MAPPING", "salesforce"},
		{"Unknown log level", "LOG_LEVEL", "loud"},
		{"Unknown driver", "DATABASE_DRIVER", "oracle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			cfg, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
