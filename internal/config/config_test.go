package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithEnv("", map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
	assert.False(t, cfg.Metrics)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "civicnav.yaml", `
addr: ":9090"
log_level: debug
default_language: hi
metrics: true
store:
  driver: redis
redis:
  addr: "redis:6379"
  db: 2
  ttl: 24h
`)

	cfg, err := LoadWithEnv(path, map[string]string{
		"CIVICNAV_ADDR":           ":7070",
		"CIVICNAV_REDIS_PASSWORD": "s3cret",
		"CIVICNAV_REDIS_LOCK_TTL": "5s",
	})
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr, "env overrides the file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "hi", cfg.DefaultLanguage)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "s3cret", cfg.Redis.Password)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, 5*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, "civicnav:session:", cfg.Redis.Prefix, "unset keys keep their defaults")
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "civicnav.json", `{"store": {"driver": "file", "path": "/var/lib/civicnav"}, "redis": {"ttl": "30s", "lock_ttl": "2m"}}`)

	cfg, err := LoadWithEnv(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.Store.Driver)
	assert.Equal(t, "/var/lib/civicnav", cfg.Store.Path)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 2*time.Minute, cfg.Redis.LockTTL)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), map[string]string{})
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadWithEnv(writeFile(t, "bad.yaml", "addr: [unterminated"), map[string]string{})
		assert.Error(t, err)
	})

	t.Run("bad env value", func(t *testing.T) {
		_, err := LoadWithEnv("", map[string]string{"CIVICNAV_REDIS_DB": "two"})
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid default", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, "unknown store driver"},
		{"file without path", func(c *Config) { c.Store.Driver = StoreFile; c.Store.Path = "" }, "store.path"},
		{"redis without addr", func(c *Config) { c.Store.Driver = StoreRedis; c.Redis.Addr = "" }, "redis.addr"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"bad language", func(c *Config) { c.DefaultLanguage = "fr" }, "default_language"},
		{"negative ttl", func(c *Config) { c.Redis.TTL = -time.Second }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
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
