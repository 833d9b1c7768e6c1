// Package config provides configuration management for the scc engine.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/colorscc/scc/pkg/apperrors"
)

// Config holds all configuration for the application. It is intentionally
// small: the CLI flags (-s, -p, -n) are the primary interface, and this
// file only carries defaults that a config file may override.
type Config struct {
	Parallel ParallelConfig `mapstructure:"parallel"`
	Log      LogConfig      `mapstructure:"log"`
}

// ParallelConfig holds the parallel engine's worker-count default.
type ParallelConfig struct {
	WorkerCount int `mapstructure:"worker_count"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Load reads configuration from the specified file path, if non-empty, or
// from the standard search locations otherwise. A missing file is not an
// error: defaults apply. Environment variables are never consulted; the
// CLI surface is flags only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("scc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config file, defaults apply
		} else if os.IsNotExist(err) {
			// explicit path doesn't exist, defaults apply
		} else {
			return nil, apperrors.Wrap(apperrors.KindIO, "read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.KindFormat, "unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, apperrors.Wrap(apperrors.KindFormat, "read config", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.KindFormat, "unmarshal config", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("parallel.worker_count", 0) // 0 means no override: the CLI's compile-time default applies
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Parallel.WorkerCount < 0 {
		return apperrors.New(apperrors.KindArgument, "worker count must not be negative").WithField("parallel.worker_count")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return apperrors.Newf(apperrors.KindArgument, "unsupported log format: %s", c.Log.Format).WithField("log.format")
	}
	return nil
}
