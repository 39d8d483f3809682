// Package config loads the client configuration file. Flags and
// environment variables take precedence; the file only supplies defaults
// for values a user sets once, like the server URL.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the contents of ~/.clipstream/config.yaml.
type Config struct {
	ServerURL   string `yaml:"server_url"`
	RealtimeURL string `yaml:"realtime_url"`
	CacheDir    string `yaml:"cache_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ServerURL: "https://api.clipstream.dev",
	}
}

// Load reads the config file at path. An empty path means the default
// location; a missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Default(), nil
		}
		path = filepath.Join(home, ".clipstream", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = Default().ServerURL
	}

	return cfg, nil
}

// Realtime returns the websocket endpoint, derived from the server URL
// when not set explicitly.
func (c *Config) Realtime() string {
	if c.RealtimeURL != "" {
		return c.RealtimeURL
	}

	u := c.ServerURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}

	return strings.TrimRight(u, "/") + "/realtime"
}
