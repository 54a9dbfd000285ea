package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from json", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{
			"endpoint_addr": "www.example:9000",
			"database_dsn": "postgres://x",
			"secret_key": "my_secret_key",
			"token_validity_duration": "90m",
			"seed": false,
			"shutdown_timeout": 3000000000,
			"log_level": "debug"
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddr)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 90*time.Minute, cfg.TokenValidityDuration)
		assert.False(t, cfg.Seed)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("yaml keeps absent keys", func(t *testing.T) {
		path := writeTemp(t, "cfg.yml", "database_dsn: postgres://y\n")
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "postgres://y", cfg.DatabaseDSN)
		assert.Equal(t, ":8080", cfg.EndpointAddr)
		assert.True(t, cfg.Seed)
	})

	t.Run("no config, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddr: "defaults:1234", Seed: true}
		parseFile(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddr)
		assert.True(t, cfg.Seed)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		path := writeTemp(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", path}

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("invalid duration panics", func(t *testing.T) {
		path := writeTemp(t, "bad.json", `{"token_validity_duration":"soon"}`)
		os.Args = []string{"testbin", "-config", path}

		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
