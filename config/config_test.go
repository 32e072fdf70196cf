package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/invers/notify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	path := write(t, `
store:
  backend: redis
  key: custom
  redis:
    addr: redis:6379
    db: 2
feed:
  interval: 500ms
  seed: 42
notify:
  poll: 1m
  permission: granted
log:
  level: debug
metrics:
  addr: 127.0.0.1:9090
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "custom", cfg.Store.Key)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "invers:", cfg.Store.Redis.Prefix, "unset fields keep their default")
	assert.Equal(t, 500*time.Millisecond, cfg.Feed.Interval)
	assert.Equal(t, uint64(42), cfg.Feed.Seed)
	assert.Equal(t, time.Minute, cfg.Notify.Poll)
	assert.Equal(t, notify.Granted, cfg.Permission())
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, "127.0.0.1:9090", cfg.Metrics.Addr)
	assert.Equal(t, 5<<20, cfg.Store.QuotaBytes)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"backend", "store: {backend: sqlite}", "unknown store.backend"},
		{"interval", "feed: {interval: 0s}", "feed.interval must be positive"},
		{"poll", "notify: {poll: -1s}", "notify.poll must be positive"},
		{"permission", "notify: {permission: maybe}", "notify.permission"},
		{"level", "log: {level: loud}", "log.level"},
		{"redis addr", "store: {backend: redis, redis: {addr: ''}}", "store.redis.addr"},
		{"yaml", "store: [", "unmarshal config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Default()
	cfg.Feed.Interval = 0
	cfg.Notify.Poll = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed.interval")
	assert.Contains(t, err.Error(), "notify.poll")
}
