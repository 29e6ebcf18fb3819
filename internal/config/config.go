// Package config loads ccqe settings from flags, CCQE_* environment
// variables, a YAML config file and built-in defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/spf13/viper"

	"github.com/pthm/ccqe/internal/classifier"
	"github.com/pthm/ccqe/internal/profile"
)

// EnvPrefix is prepended to every environment variable ccqe reads
const EnvPrefix = "CCQE"

// Setting keys
const (
	KeyFormat      = "format"
	KeyWorkers     = "workers"
	KeyExclude     = "exclude"
	KeyOnly        = "only"
	KeyFailOnLow   = "fail_on_low"
	KeyFileTimeout = "file_timeout"
	KeyProfile     = "profile"
)

// Formats accepted by the format setting
var Formats = []string{"terminal", "text", "json", "yaml", "markdown", "html"}

// Config holds the effective settings of a run. Scoring thresholds and
// vocabularies are fixed and deliberately absent.
type Config struct {
	Format      string        `mapstructure:"format"`
	Workers     int           `mapstructure:"workers"`
	Exclude     []string      `mapstructure:"exclude"`
	Only        []string      `mapstructure:"only"`
	FailOnLow   bool          `mapstructure:"fail_on_low"`
	FileTimeout time.Duration `mapstructure:"file_timeout"`
	Profile     string        `mapstructure:"profile"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Format:      "terminal",
		Workers:     runtime.NumCPU(),
		Exclude:     []string{},
		Only:        []string{},
		FailOnLow:   false,
		FileTimeout: 0,
		Profile:     profile.Default,
	}
}

// SetDefaults registers the built-in settings on v so that environment
// variables are recognised for every key.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyFormat, d.Format)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyExclude, d.Exclude)
	v.SetDefault(KeyOnly, d.Only)
	v.SetDefault(KeyFailOnLow, d.FailOnLow)
	v.SetDefault(KeyFileTimeout, d.FileTimeout)
	v.SetDefault(KeyProfile, d.Profile)
}

// Setup prepares v to read defaults, CCQE_* variables and a config file.
// cfgFile overrides the search for ./.ccqe.yaml and then
// $HOME/.ccqe/config.yaml. A missing config file is not an error unless it
// was named explicitly.
func Setup(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigType("yaml")
		if _, err := os.Stat(".ccqe.yaml"); err == nil {
			v.SetConfigFile(".ccqe.yaml")
		} else {
			if home, err := os.UserHomeDir(); err == nil {
				v.AddConfigPath(filepath.Join(home, ".ccqe"))
			}
			v.SetConfigName("config")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load decodes and validates the settings held by v
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no run could use
func (c Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q (want one of %v)", c.Format, Formats)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.FileTimeout < 0 {
		return fmt.Errorf("file_timeout must not be negative, got %s", c.FileTimeout)
	}
	if _, err := c.Labels(); err != nil {
		return err
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	if _, err := profile.Resolve(c.Profile); err != nil {
		return err
	}
	return nil
}

// Labels parses the only setting
func (c Config) Labels() ([]classifier.Label, error) {
	labels := make([]classifier.Label, 0, len(c.Only))
	for _, s := range c.Only {
		l, err := classifier.ParseLabel(s)
		if err != nil {
			return nil, fmt.Errorf("invalid only setting: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// fileView is how a Config is written to YAML
type fileView struct {
	Format      string   `yaml:"format"`
	Workers     int      `yaml:"workers"`
	Exclude     []string `yaml:"exclude"`
	Only        []string `yaml:"only"`
	FailOnLow   bool     `yaml:"fail_on_low"`
	FileTimeout string   `yaml:"file_timeout"`
	Profile     string   `yaml:"profile"`
}

// MarshalYAML writes durations in their human form
func (c Config) MarshalYAML() (interface{}, error) {
	return fileView{
		Format:      c.Format,
		Workers:     c.Workers,
		Exclude:     c.Exclude,
		Only:        c.Only,
		FailOnLow:   c.FailOnLow,
		FileTimeout: c.FileTimeout.String(),
		Profile:     c.Profile,
	}, nil
}
