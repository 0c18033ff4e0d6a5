package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milden6/flatdawg"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "-", cfg.Build.Input)
	assert.Equal(t, flatdawg.DefaultMaxWordLength, cfg.Build.MaxWordLength)
	assert.Equal(t, flatdawg.DefaultMaxEdges, cfg.Build.MaxEdges)
	assert.Equal(t, flatdawg.DefaultTableSize, cfg.Build.TableSize)
	assert.Equal(t, ":8080", cfg.Serve.Addr)
	assert.Len(t, cfg.Build.BuilderOptions(), 3)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flatdawg.yaml")
	data := `
log:
  level: debug
  format: json
build:
  input: words.txt
  output: out.dawg
  sort: true
  max_word_length: 64
serve:
  addr: 127.0.0.1:9000
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "words.txt", cfg.Build.Input)
	assert.Equal(t, "out.dawg", cfg.Build.Output)
	assert.True(t, cfg.Build.Sort)
	assert.Equal(t, 64, cfg.Build.MaxWordLength)
	assert.Equal(t, flatdawg.DefaultTableSize, cfg.Build.TableSize)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FLATDAWG_BUILD_OUTPUT", "env.dawg")
	t.Setenv("FLATDAWG_LOG_LEVEL", "warn")
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "env.dawg", cfg.Build.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Load(New(), "")
	require.NoError(t, err)

	cases := map[string]func(c *Config){
		"LogFormat":  func(c *Config) { c.Log.Format = "xml" },
		"WordLength": func(c *Config) { c.Build.MaxWordLength = 1 },
		"MaxEdges":   func(c *Config) { c.Build.MaxEdges = 10 },
		"HugeEdges":  func(c *Config) { c.Build.MaxEdges = flatdawg.MaxChild + 2 },
		"TableSize":  func(c *Config) { c.Build.TableSize = 0 },
		"WatchStdin": func(c *Config) { c.Build.Watch = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := *base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
