package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aparna-bhatt/nodedetails"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration
type Config struct {
	// Feed is the path of the YAML or JSON feed document to read nodes from
	Feed string `mapstructure:"feed"`
	// LogDir is where resolved details are recorded (empty disables the render log)
	LogDir string `mapstructure:"log_dir"`
	// JSON switches output to JSON
	JSON bool `mapstructure:"json"`
	// Verbose enables debug logging
	Verbose bool `mapstructure:"verbose"`
	// PageSize is the number of parameters requested per list call
	PageSize int `mapstructure:"page_size"`
	// Retries is the number of times a recoverable fetch error is retried
	Retries int `mapstructure:"retries"`
	// RetryDelay is the pause between retries
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	// Timeout bounds a single command (0 disables it)
	Timeout time.Duration `mapstructure:"timeout"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Feed:       "feed.yaml",
		PageSize:   nodedetails.DefaultPageSize,
		Retries:    2,
		RetryDelay: 500 * time.Millisecond,
		Timeout:    30 * time.Second,
	}
}

// SetDefaults registers default values with v
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("feed", defaults.Feed)
	v.SetDefault("log_dir", defaults.LogDir)
	v.SetDefault("json", defaults.JSON)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("page_size", defaults.PageSize)
	v.SetDefault("retries", defaults.Retries)
	v.SetDefault("retry_delay", defaults.RetryDelay)
	v.SetDefault("timeout", defaults.Timeout)
}

// NewViper returns a viper instance reading NODEDETAILS_ environment variables
// and, if present, the given config file or the default one.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("NODEDETAILS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	explicit := configFile != ""
	if !explicit {
		configFile = ConfigFile()
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Feed) == "" {
		return fmt.Errorf("feed file required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must not be negative, got %d", c.Retries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "nodedetails")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nodedetails"
	}
	return filepath.Join(home, ".config", "nodedetails")
}

// ConfigFile returns the path to the default config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
