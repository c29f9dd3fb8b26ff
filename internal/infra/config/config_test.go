package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("LOG_LEVEL", "")
	cfg, err := LoadConfig(writeConfig(t, "server:\n  host: 127.0.0.1\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr())
	assert.Equal(t, StorageMemory, cfg.Storage.Type)
	assert.Equal(t, ModePolling, cfg.TelegramBot.Mode)
	assert.Equal(t, time.Second, cfg.Taking.TickInterval)
	assert.Equal(t, 60, cfg.Results.PassScore)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFromYAML(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("LOG_LEVEL", "")
	cfg, err := LoadConfig(writeConfig(t, `
storage:
  type: postgres
database:
  host: db
  port: "5432"
  user: portal
  password: secret
  dbname: portal
identity:
  latency: 1s
taking:
  tick_interval: 500ms
log:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, "postgres://portal:secret@db:5432/portal", cfg.DatabaseURL())
	assert.Equal(t, time.Second, cfg.Identity.Latency)
	assert.Equal(t, 500*time.Millisecond, cfg.Taking.TickInterval)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestDatabaseURLEscapesCredentials(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "db"
	cfg.Database.Port = "5432"
	cfg.Database.User = "portal"
	cfg.Database.Password = "p@ss/w:rd?"
	cfg.Database.Name = "portal"

	u, err := url.Parse(cfg.DatabaseURL())
	require.NoError(t, err)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/portal", u.Path)
	assert.Equal(t, "portal", u.User.Username())
	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss/w:rd?", password)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token-from-env")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("STORAGE_TYPE", "")
	cfg, err := LoadConfig(writeConfig(t, "telegram_bot:\n  token: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "token-from-env", cfg.TelegramBot.Token)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STORAGE_TYPE", "cassandra")
	_, err := LoadConfig(writeConfig(t, "{}\n"))
	assert.EqualError(t, err, `unknown storage type "cassandra"`)

	t.Setenv("STORAGE_TYPE", "postgres")
	_, err = LoadConfig(writeConfig(t, "{}\n"))
	assert.Error(t, err)

	t.Setenv("STORAGE_TYPE", "")
	_, err = LoadConfig(writeConfig(t, "telegram_bot:\n  mode: webhook\n"))
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
