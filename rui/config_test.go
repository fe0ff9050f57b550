package rui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DISCORD_TOKEN":     "token",
		"STAFF_IDS":         " 1, 2 ,,3",
		"DATABASE_PASSWORD": "pg",
		"S3_ACCESS_KEY":     "ak",
		"S3_SECRET_KEY":     "sk",
		"REDIS_PASSWORD":    "rp",
		"PORT":              "8080",
	}
	cfg := DefaultConfig()
	cfg.Game.StaffIDs = []string{"old"}
	cfg.applyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "token", cfg.Bot.Token)
	assert.Equal(t, []string{"1", "2", "3"}, cfg.Game.StaffIDs)
	assert.Equal(t, "pg", cfg.DB.Password)
	assert.Equal(t, "ak", cfg.Remote.S3.AccessKey)
	assert.Equal(t, "sk", cfg.Remote.S3.SecretKey)
	assert.Equal(t, "rp", cfg.Remote.Redis.Password)
	assert.Equal(t, 8080, cfg.KeepAlive.Port)
}

func TestApplyEnv_BadPortKeepsDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.applyEnv(func(k string) string {
		if k == "PORT" {
			return "http"
		}
		return ""
	})
	assert.Equal(t, 3000, cfg.KeepAlive.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Store.Backend = "sqlite" }, "unknown store backend"},
		{"unknown remote", func(c *Config) { c.Remote.Kind = "ftp" }, "unknown remote kind"},
		{"s3 without bucket", func(c *Config) { c.Remote.Kind = RemoteS3 }, "remote.s3.bucket"},
		{"redis without addr", func(c *Config) { c.Remote.Kind = RemoteRedis }, "remote.redis.addr"},
		{"redis", func(c *Config) {
			c.Remote.Kind = RemoteRedis
			c.Remote.Redis.Addr = "localhost:6379"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DISCORD_TOKEN", "from-env")

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[bot]
token = "from-file"

[store]
backend = "file"
data_dir = "saves"

[game]
staff_ids = ["42"]
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Bot.Token)
	assert.Equal(t, "saves", cfg.Store.DataDir)
	assert.Equal(t, []string{"42"}, cfg.Game.StaffIDs)
	assert.True(t, cfg.KeepAlive.Enabled)

	cfg, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Store.DataDir)
}
