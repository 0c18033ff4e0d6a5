package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/milden6/flatdawg"
)

// EnvPrefix is prepended to every environment variable override, e.g.
// FLATDAWG_BUILD_INPUT.
const EnvPrefix = "FLATDAWG"

// Config holds all configuration for the flatdawg command
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Build BuildConfig `mapstructure:"build"`
	Serve ServeConfig `mapstructure:"serve"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BuildConfig controls how a word list is turned into a graph file
type BuildConfig struct {
	Input         string `mapstructure:"input"`
	Output        string `mapstructure:"output"`
	Sort          bool   `mapstructure:"sort"`
	SkipInvalid   bool   `mapstructure:"skip_invalid"`
	MaxWordLength int    `mapstructure:"max_word_length"`
	MaxEdges      int    `mapstructure:"max_edges"`
	TableSize     int    `mapstructure:"table_size"`
	MetricsFile   string `mapstructure:"metrics_file"`
	Watch         bool   `mapstructure:"watch"`
}

// ServeConfig holds lookup server configuration
type ServeConfig struct {
	Addr       string `mapstructure:"addr"`
	Dict       string `mapstructure:"dict"`
	WatchInput string `mapstructure:"watch_input"`
}

// New returns a viper instance with defaults and environment overrides set.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file into v and decodes the result.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("build.input", "-")
	v.SetDefault("build.output", "words.dawg")
	v.SetDefault("build.sort", false)
	v.SetDefault("build.skip_invalid", false)
	v.SetDefault("build.max_word_length", flatdawg.DefaultMaxWordLength)
	v.SetDefault("build.max_edges", flatdawg.DefaultMaxEdges)
	v.SetDefault("build.table_size", flatdawg.DefaultTableSize)
	v.SetDefault("build.metrics_file", "")
	v.SetDefault("build.watch", false)

	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("serve.dict", "words.dawg")
	v.SetDefault("serve.watch_input", "")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: want console or json", c.Log.Format)
	}
	if c.Build.MaxWordLength < 2 {
		return fmt.Errorf("invalid max word length: %d", c.Build.MaxWordLength)
	}
	if c.Build.MaxEdges <= flatdawg.ReservedEdges || c.Build.MaxEdges > flatdawg.MaxChild+1 {
		return fmt.Errorf("invalid max edges: %d", c.Build.MaxEdges)
	}
	if c.Build.TableSize < 2 {
		return fmt.Errorf("invalid table size: %d", c.Build.TableSize)
	}
	if c.Build.Watch && c.Build.Input == "-" {
		return fmt.Errorf("cannot watch standard input")
	}
	return nil
}

// BuilderOptions converts the build settings into builder options.
func (c *BuildConfig) BuilderOptions() []flatdawg.Option {
	return []flatdawg.Option{
		flatdawg.WithMaxWordLength(c.MaxWordLength),
		flatdawg.WithMaxEdges(c.MaxEdges),
		flatdawg.WithTableSize(c.TableSize),
	}
}
