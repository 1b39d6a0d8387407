package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	assert.Empty(t, Default().Validate())
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestNew_ReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layoutkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pipeline:
  workers: 3
logging:
  level: debug
  file: /tmp/layoutkit.log
inspector:
  addr: ""
`), 0o644))
	t.Setenv("LAYOUTKIT_PIPELINE_QUEUE_SIZE", "32")

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Pipeline.Workers)
	assert.Equal(t, 32, cfg.Pipeline.QueueSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Empty(t, cfg.Inspector.Addr)
	assert.Equal(t, "layoutkit", cfg.Metrics.Namespace)
}

func TestNew_MissingExplicitFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNew_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Pipeline.QueueSize)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name: "pipeline limits",
			mutate: func(c *Config) {
				c.Pipeline.Workers = 0
				c.Pipeline.QueueSize = -1
			},
			fields: []string{"pipeline.workers", "pipeline.queue_size"},
		},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.Logging.Level = "trace" },
			fields: []string{"logging.level"},
		},
		{
			name: "negative rotation",
			mutate: func(c *Config) {
				c.Logging.MaxSizeMB = -1
				c.Logging.MaxBackups = -2
			},
			fields: []string{"logging.max_size_mb", "logging.max_backups"},
		},
		{
			name:   "metrics without namespace",
			mutate: func(c *Config) { c.Metrics.Namespace = "" },
			fields: []string{"metrics.namespace"},
		},
		{
			name: "metrics disabled without namespace",
			mutate: func(c *Config) {
				c.Metrics.Enabled = false
				c.Metrics.Namespace = ""
			},
		},
		{
			name: "inspector limits",
			mutate: func(c *Config) {
				c.Inspector.PushPerSecond = 0
				c.Inspector.History = 0
			},
			fields: []string{"inspector.push_per_second", "inspector.history"},
		},
		{
			name: "inspector disabled",
			mutate: func(c *Config) {
				c.Inspector.Addr = ""
				c.Inspector.History = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			var fields []string
			for _, e := range cfg.Validate() {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestLoad_ReturnsValidationErrors(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("pipeline.workers", 0)
	v.Set("logging.level", "loud")

	_, err := Load(v)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "2 validation errors")
	assert.Contains(t, err.Error(), "pipeline.workers: must be at least 1 (got: 0)")
}

func TestDebugOptions(t *testing.T) {
	cfg := Default()
	cfg.Logging.File = "out/debug.log"

	opts := cfg.DebugOptions()
	assert.Equal(t, "out/debug.log", opts.Path)
	assert.Equal(t, "info", opts.Level)
	assert.Equal(t, 10, opts.MaxSizeMB)
	assert.Equal(t, 3, opts.MaxBackups)
}
