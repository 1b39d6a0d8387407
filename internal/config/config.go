// Package config loads layoutkit settings from a YAML file, LAYOUTKIT_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/grindlemire/go-layoutkit/internal/debug"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override, so
// pipeline.workers is read from LAYOUTKIT_PIPELINE_WORKERS.
const EnvPrefix = "LAYOUTKIT"

// Config is the complete layoutkit configuration.
type Config struct {
	Pipeline  PipelineConfig  `mapstructure:"pipeline" yaml:"pipeline"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	Inspector InspectorConfig `mapstructure:"inspector" yaml:"inspector"`
}

// PipelineConfig controls where passes run.
type PipelineConfig struct {
	// Workers bounds concurrent measure/arrange computations.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// QueueSize is the UI loop queue capacity.
	QueueSize int `mapstructure:"queue_size" yaml:"queue_size"`
}

// LoggingConfig controls the debug log file.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// MetricsConfig controls Prometheus collection.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Namespace string `mapstructure:"namespace" yaml:"namespace"`
}

// InspectorConfig controls the HTTP inspector.
type InspectorConfig struct {
	// Addr is the listen address. Empty disables the inspector.
	Addr string `mapstructure:"addr" yaml:"addr"`
	// PushPerSecond limits websocket pushes per client.
	PushPerSecond float64 `mapstructure:"push_per_second" yaml:"push_per_second"`
	// History is the number of recent pass events kept.
	History int `mapstructure:"history" yaml:"history"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Workers:   runtime.GOMAXPROCS(0),
			QueueSize: 256,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "layoutkit",
		},
		Inspector: InspectorConfig{
			Addr:          "127.0.0.1:7070",
			PushPerSecond: 10,
			History:       64,
		},
	}
}

// SetDefaults registers Default's values on v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	// Pipeline defaults
	v.SetDefault("pipeline.workers", defaults.Pipeline.Workers)
	v.SetDefault("pipeline.queue_size", defaults.Pipeline.QueueSize)

	// Logging defaults
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Metrics defaults
	v.SetDefault("metrics.enabled", defaults.Metrics.Enabled)
	v.SetDefault("metrics.namespace", defaults.Metrics.Namespace)

	// Inspector defaults
	v.SetDefault("inspector.addr", defaults.Inspector.Addr)
	v.SetDefault("inspector.push_per_second", defaults.Inspector.PushPerSecond)
	v.SetDefault("inspector.history", defaults.Inspector.History)
}

// New returns a viper instance with defaults and environment overrides set.
// When file is non-empty it is read; a missing file is an error. When file
// is empty, layoutkit.yaml in the working directory is read if present.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("layoutkit")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// DebugOptions converts the logging section for debug.Init.
func (c *Config) DebugOptions() debug.Options {
	return debug.Options{
		Path:       c.Logging.File,
		Level:      c.Logging.Level,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
	}
}
