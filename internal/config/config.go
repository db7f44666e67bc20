// internal/config/config.go
package config

import (
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (FOLDLAB_ENGINE, ...).
const EnvPrefix = "FOLDLAB"

// Keys shared by flags, env and the config file.
const (
	KeyEngine              = "engine"
	KeyThreads             = "threads"
	KeyMaxLength           = "max_length"
	KeyOutput              = "output"
	KeySort                = "sort"
	KeyHeader              = "header"
	KeyDB                  = "db"
	KeyLogLevel            = "log_level"
	KeyLogFormat           = "log_format"
	KeyQuiet               = "quiet"
	KeyUnsatisfiedExitCode = "unsatisfied_exit_code"
	KeyCacheSize           = "cache_size"
)

// Config is the resolved CLI configuration.
type Config struct {
	Engine    string `mapstructure:"engine"`
	Threads   int    `mapstructure:"threads"`
	MaxLength int    `mapstructure:"max_length"` // 0 = unlimited
	Output    string `mapstructure:"output"`
	Sort      bool   `mapstructure:"sort"`
	Header    bool   `mapstructure:"header"`
	DB        string `mapstructure:"db"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Quiet     bool   `mapstructure:"quiet"`
	// UnsatisfiedExitCode is returned when a puzzle evaluation is not satisfied.
	UnsatisfiedExitCode int `mapstructure:"unsatisfied_exit_code"`
	// CacheSize bounds the per-run cache of repeated sequences; 0 disables it.
	CacheSize int `mapstructure:"cache_size"`
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEngine, "Basic")
	v.SetDefault(KeyThreads, 0)
	v.SetDefault(KeyMaxLength, 2000)
	v.SetDefault(KeyOutput, "text")
	v.SetDefault(KeySort, false)
	v.SetDefault(KeyHeader, true)
	v.SetDefault(KeyDB, "foldlab.db")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyUnsatisfiedExitCode, 1)
	v.SetDefault(KeyCacheSize, 4096)
}

// Load unmarshals v into a Config and validates it. Threads <= 0 resolves
// to the CPU count.
func Load(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode settings")
	}
	if c.Threads <= 0 {
		c.Threads = runtime.NumCPU()
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	switch c.Output {
	case "text", "json", "jsonl":
	default:
		return errors.Errorf("output must be text, json or jsonl (got %q)", c.Output)
	}
	if c.MaxLength < 0 {
		return errors.Errorf("max_length must be >= 0 (got %d)", c.MaxLength)
	}
	if c.Engine == "" {
		return errors.New("engine is required")
	}
	if c.CacheSize < 0 {
		return errors.Errorf("cache_size must be >= 0 (got %d)", c.CacheSize)
	}
	if c.UnsatisfiedExitCode < 0 || c.UnsatisfiedExitCode > 125 {
		return errors.Errorf("unsatisfied_exit_code must be in [0,125] (got %d)", c.UnsatisfiedExitCode)
	}
	return nil
}
