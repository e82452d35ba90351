package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	content := `
[server]
port = 8080
mode = "release"

[postgres]
host = "db.internal"
port = "5432"
user = "dailyq"
password = "secret"
dbname = "dailyq"
max_idle_conns = 5
max_open_conns = 50

[redis]
host = "cache.internal"
port = 6379
db = 1
pool_size = 20
min_idle_conns = 2

[jwt]
secret = "jwt-secret"

[cron]
secret = "cron-secret"
spec = "0 0 * * *"
enabled = true

[ratelimit]
limit = 10
window_seconds = 60
max_concurrency = 128

[logging]
level = "warn"
format = "json"
output = "stdout"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 50, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, "jwt-secret", cfg.JWT.Secret)
	assert.Equal(t, "cron-secret", cfg.Cron.Secret)
	assert.Equal(t, "0 0 * * *", cfg.Cron.Spec)
	assert.True(t, cfg.Cron.Enabled)
	assert.Equal(t, 10, cfg.RateLimit.Limit)
	assert.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	assert.Equal(t, 128, cfg.RateLimit.MaxConcurrency)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
