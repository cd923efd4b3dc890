package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Storage StorageConfig
	UI      UIConfig
	Log     LogConfig
}

// StorageConfig selects where the collection is persisted.
type StorageConfig struct {
	Backend string // "json" | "sqlite"
	Dir     string
	Key     string
}

type UIConfig struct {
	Theme string // classic | neon | mono
}

type LogConfig struct {
	Level  string
	Format string // text | json
	File   string
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Load reads configuration from file and env. Env var overrides use prefix TADA_.
// path overrides the config file location; empty means $TADA_CONFIG or
// ~/.config/tada/config.toml. The result is not validated: callers apply
// their own overrides first, then call Validate.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.dir", ".")
	v.SetDefault("storage.key", "todos_v2")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("TADA_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tada"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TADA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing config file is fine; a broken one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "."
	}
	return c, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want json or sqlite)", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key: must not be empty")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (want text or json)", c.Log.Format)
	}
	return nil
}
