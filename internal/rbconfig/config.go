// Package rbconfig loads rulebox CLI configuration from an optional config
// file, environment variables (RULEBOX_ prefix), and flag defaults, using
// Viper for layered precedence and go-playground/validator for the
// structural checks that Viper itself does not perform.
package rbconfig

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the full runtime configuration for the rulebox CLI.
type Config struct {
	Rules   RulesConfig   `mapstructure:"rules"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Batch   BatchConfig   `mapstructure:"batch"`
}

// RulesConfig points at the catalog document to load.
type RulesConfig struct {
	// Path is the filesystem path of the JSON rule document. Commands that
	// need a catalog (classify, batch) check this themselves, since
	// validate takes its target file as a positional argument instead.
	Path string `mapstructure:"path"`
}

// LogConfig mirrors rblog.Config field-for-field so it can be loaded
// independently of the logging package.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=json text"`
	Output     string `mapstructure:"output" validate:"omitempty,oneof=stdout stderr file"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// MetricsConfig controls the optional Prometheus exposition endpoint used by
// the batch subcommand.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"omitempty,hostname_port"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}

// BatchConfig tunes the parallel batch driver.
type BatchConfig struct {
	// WorkersOverride, when nonzero, replaces runtime.GOMAXPROCS(0) as the
	// worker count for AssignLabelsBatch-driving commands.
	WorkersOverride int `mapstructure:"workers_override" validate:"gte=0"`
}

// Load reads configuration from configPath (if non-empty), overlays
// RULEBOX_-prefixed environment variables, and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("rulebox")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("rbconfig: read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("rbconfig: unmarshal: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("rbconfig: invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default so that Unmarshal sees its RULEBOX_ env var.
	v.SetDefault("rules.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", true)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", "127.0.0.1:9090")
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("batch.workers_override", 0)
}
