package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramAPIToken)
	assert.Equal(t, "assets/content.yaml", cfg.ContentPath)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 1500*time.Millisecond, cfg.Quiz.AdvanceDelay)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, 168*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "@every 1h", cfg.Session.SweepSchedule)
	assert.Equal(t, 20, cfg.DB.MaxConnections)
	assert.Equal(t, "maktabati:", cfg.Redis.KeyPrefix)
	assert.Empty(t, cfg.LogLevel)
}

func TestLoadFrom_File(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://bot@localhost/bot")
	t.Setenv("SESSION_STORE", "")
	t.Setenv("LOG_LEVEL", "")

	dir := writeConfig(t, `
env: production
log_level: warn
quiz:
  advance_delay: 2s
session:
  store: postgres
  ttl: 24h
database:
  max_connections: 5
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Quiz.AdvanceDelay)
	assert.Equal(t, StorePostgres, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5, cfg.DB.MaxConnections)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://bot@localhost/bot", dsn)
}

func TestLoadFrom_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("SESSION_STORE", "")

	_, err := LoadFrom(t.TempDir())
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoadFrom_BrokenFile(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	_, err := LoadFrom(writeConfig(t, "quiz: [unclosed"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			TelegramAPIToken: "token",
			ContentPath:      "assets/content.yaml",
			Quiz:             Quiz{AdvanceDelay: time.Second},
			Session:          Session{Store: StoreMemory, TTL: time.Hour, SweepSchedule: "@hourly"},
			DB:               DB{MaxConnections: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown store", mutate: func(c *Config) { c.Session.Store = "mongo" }, wantErr: ErrInvalidConfig},
		{name: "zero delay", mutate: func(c *Config) { c.Quiz.AdvanceDelay = 0 }, wantErr: ErrInvalidConfig},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "debug" }},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: ErrInvalidConfig},
		{name: "no content path", mutate: func(c *Config) { c.ContentPath = "" }, wantErr: ErrInvalidConfig},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Session.Store = StorePostgres }, wantErr: ErrMissingEnvironmentVariables},
		{name: "redis without url", mutate: func(c *Config) { c.Session.Store = StoreRedis }, wantErr: ErrMissingEnvironmentVariables},
		{
			name: "redis with url",
			mutate: func(c *Config) {
				c.Session.Store = StoreRedis
				c.Redis.URL = "redis://localhost:6379/0"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDB_DSN_Missing(t *testing.T) {
	_, err := DB{}.DSN()
	assert.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}
