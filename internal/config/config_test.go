package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default().ServerURL, cfg.ServerURL)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server_url: https://tube.example.com\ncache_dir: /tmp/cache\n"), 0600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://tube.example.com", cfg.ServerURL)
		assert.Equal(t, "/tmp/cache", cfg.CacheDir)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server_url: [\n"), 0600))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestConfig_Realtime(t *testing.T) {
	t.Run("derived from the server URL", func(t *testing.T) {
		cfg := &Config{ServerURL: "https://tube.example.com"}
		assert.Equal(t, "wss://tube.example.com/realtime", cfg.Realtime())

		cfg = &Config{ServerURL: "http://localhost:8080/"}
		assert.Equal(t, "ws://localhost:8080/realtime", cfg.Realtime())
	})

	t.Run("explicit realtime URL wins", func(t *testing.T) {
		cfg := &Config{ServerURL: "https://tube.example.com", RealtimeURL: "wss://push.example.com/ws"}
		assert.Equal(t, "wss://push.example.com/ws", cfg.Realtime())
	})
}
