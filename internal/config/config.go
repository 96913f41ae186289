// Package config loads engine settings from defaults, an optional config
// file and CHESSMIND_-prefixed environment variables, in rising priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the engine and its tools read.
type Config struct {
	Threads  int           `mapstructure:"threads"`
	TTSize   int           `mapstructure:"tt_size"`
	Depth    int           `mapstructure:"depth"`
	MoveTime time.Duration `mapstructure:"move_time"`

	BookEnabled bool   `mapstructure:"book_enabled"`
	BookPath    string `mapstructure:"book_path"`

	TablebaseCacheDir string `mapstructure:"tablebase_cache_dir"`

	LogLevel string `mapstructure:"log_level"`
}

const envPrefix = "CHESSMIND"

// Load reads configuration. path may be empty; a named file that cannot be
// read is an error, a missing default file is not.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("threads", 0) // 0 = one per CPU
	v.SetDefault("tt_size", 1<<22)
	v.SetDefault("depth", 6)
	v.SetDefault("move_time", time.Duration(0))
	v.SetDefault("book_enabled", true)
	v.SetDefault("book_path", "")
	v.SetDefault("tablebase_cache_dir", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("chessmind")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	// Typed getters instead of Unmarshal: they see AutomaticEnv values,
	// Unmarshal does not.
	cfg := Config{
		Threads:           v.GetInt("threads"),
		TTSize:            v.GetInt("tt_size"),
		Depth:             v.GetInt("depth"),
		MoveTime:          v.GetDuration("move_time"),
		BookEnabled:       v.GetBool("book_enabled"),
		BookPath:          v.GetString("book_path"),
		TablebaseCacheDir: v.GetString("tablebase_cache_dir"),
		LogLevel:          v.GetString("log_level"),
	}
	if cfg.Threads < 0 {
		return nil, fmt.Errorf("threads must be >= 0, got %d", cfg.Threads)
	}
	if cfg.Depth < 0 {
		return nil, fmt.Errorf("depth must be >= 0, got %d", cfg.Depth)
	}
	return &cfg, nil
}
