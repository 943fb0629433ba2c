package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yml file", func(t *testing.T) {
		// Given: a config file with a redis section
		path := filepath.Join(t.TempDir(), "config.yml")
		content := "log-level: debug\nmode: self-play\nsolution-ttl: 1h\nredis:\n  enabled: true\n  host: cache\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: file values and defaults are combined
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, ModeSelfPlay, conf.Mode)
		assert.Equal(t, time.Hour, conf.SolutionTTL)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to the environment", func(t *testing.T) {
		t.Setenv("GAME_MODE", ModeTwoPlayer)

		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, ModeTwoPlayer, conf.Mode)
		assert.Equal(t, "info", conf.LogLevel)
		assert.False(t, conf.Redis.Enabled)
	})
}
