package siripush

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppConfig(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
upstream:
  subscriptionURL: http://notifier.example.com/subscription
  pushBaseURL: http://monitor.example.com
  timeoutMS: 5000
history:
  maxPerSubscription: 25
push:
  ratePerSecond: 10
  burst: 20
  maxBodyBytes: 65536
log:
  level: debug
  console: true
`)

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://notifier.example.com/subscription", cfg.Upstream.SubscriptionURL)
	assert.Equal(t, "http://monitor.example.com", cfg.Upstream.PushBaseURL)
	assert.Equal(t, 5000, cfg.Upstream.TimeoutMS)
	assert.Equal(t, 25, cfg.History.MaxPerSubscription)
	assert.Equal(t, 10.0, cfg.Push.RatePerSecond)
	assert.Equal(t, 20, cfg.Push.Burst)
	assert.Equal(t, int64(65536), cfg.Push.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Console)
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8080
`)

	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 15000, cfg.Upstream.TimeoutMS)
	assert.Equal(t, DefaultMaxPerSubscription, cfg.History.MaxPerSubscription)
	assert.Equal(t, 20.0, cfg.Push.RatePerSecond)
	assert.Equal(t, 40, cfg.Push.Burst)
	assert.Equal(t, int64(1<<20), cfg.Push.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	t.Run("bad upstream url", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: 8080
upstream:
  subscriptionURL: not-a-url
`)
		_, err := LoadAppConfig(path)
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: 8080
log:
  level: shouting
`)
		_, err := LoadAppConfig(path)
		assert.Error(t, err)
	})

	t.Run("not yaml", func(t *testing.T) {
		path := writeConfigFile(t, "\t{{{")
		_, err := LoadAppConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}
