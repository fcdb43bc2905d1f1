package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hankinsohl/fgdb/pkg/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load("non-existent-fgdb.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	variant, err := cfg.Variant()
	require.NoError(t, err)
	assert.Equal(t, types.Poe1, variant)
}

func TestLoadPartialConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "fgdb.yaml", `
game_variant: poe2
root_path: /srv/fgdb
database:
  driver: ""
pool:
  acquire_timeout: 5s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "poe2", cfg.GameVariant)
	assert.Equal(t, "/srv/fgdb", cfg.RootPath)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Pool.AcquireTimeout)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "repository", cfg.Repository.Local.Path)
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "fgdb.toml", `
game_variant = "POE 2"

[server]
address = ":9090"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	variant, err := cfg.Variant()
	require.NoError(t, err)
	assert.Equal(t, types.Poe2, variant)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "fgdb.yaml", `
server:
  address: ":9090"
  base_path: /fgdb
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "fgdb.yaml", "log:\n  level: info\n")
	t.Setenv("FGDB_LOG_LEVEL", "debug")
	t.Setenv("FGDB_SERVER_ADDRESS", "127.0.0.1:7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Address)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"variant", func(c *Config) { c.GameVariant = "poe3" }, "game variant"},
		{"repository kind", func(c *Config) { c.Repository.Kind = "ftp" }, "unsupported repository kind"},
		{"s3 bucket", func(c *Config) { c.Repository.Kind = "s3" }, "repository.s3.bucket is required"},
		{"driver", func(c *Config) { c.Database.Driver = "oracle" }, "unsupported database driver"},
		{"mysql dsn", func(c *Config) { c.Database.Driver = "mysql" }, "database.mysql.dsn must be configured"},
		{"postgres placeholder", func(c *Config) {
			c.Database.Driver = "postgres"
			c.Database.Postgres.DSN = "host=localhost dbname=fgdb"
		}, "must contain {env}"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "unsupported log format"},
		{"timeout", func(c *Config) { c.Pool.AcquireTimeout = -time.Second }, "acquire_timeout"},
		{"cors credentials", func(c *Config) {
			c.Server.CORS.AllowOrigin = "*"
			c.Server.CORS.AllowCredentials = true
		}, "wildcard origin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "fgdb.yaml")
	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path), "existing file must not be overwritten")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
