// Package config provides configuration management for the pricer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	apperrors "option-pricer/internal/errors"
	"option-pricer/internal/models"
)

const appName = "option-pricer"

// Config holds all application configuration.
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Store    StoreConfig    `mapstructure:"store"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
}

// DefaultsConfig holds the inputs used when a pricing flag is omitted.
type DefaultsConfig struct {
	Spot       float64 `mapstructure:"spot"`
	Strike     float64 `mapstructure:"strike"`
	Rate       float64 `mapstructure:"rate"`
	Expiry     float64 `mapstructure:"expiry"`
	Volatility float64 `mapstructure:"volatility"`
}

// PricingConfig holds pricing behaviour.
type PricingConfig struct {
	StrictValidation bool    `mapstructure:"strict_validation"`
	Workers          int     `mapstructure:"workers"`
	LadderStep       float64 `mapstructure:"ladder_step"`
	LadderCount      int     `mapstructure:"ladder_count"`
}

// StoreConfig holds quote journal configuration.
type StoreConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	BatchSize int    `mapstructure:"batch_size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// Load loads config.toml from configDir. If configDir is empty, uses the
// default config directory. A missing file is replaced by the template and
// the built-in defaults are used. PRICER_* environment variables override
// file values, e.g. PRICER_PRICING_STRICT_VALIDATION=true.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	v.SetEnvPrefix("PRICER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// Best effort: an unwritable config dir still runs on defaults.
		_ = createTemplateConfig(configDir)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	demo := models.DemoInputs()
	v.SetDefault("defaults.spot", demo.Spot)
	v.SetDefault("defaults.strike", demo.Strike)
	v.SetDefault("defaults.rate", demo.Rate)
	v.SetDefault("defaults.expiry", demo.Expiry)
	v.SetDefault("defaults.volatility", demo.Volatility)

	v.SetDefault("pricing.strict_validation", false)
	v.SetDefault("pricing.workers", 0)
	v.SetDefault("pricing.ladder_step", 5.0)
	v.SetDefault("pricing.ladder_count", 5)

	v.SetDefault("store.enabled", false)
	v.SetDefault("store.path", filepath.Join(configDir, "quotes.db"))
	v.SetDefault("store.batch_size", 50)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "pricer.log"))
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age", 30)

	v.SetDefault("ui.color_enabled", true)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: invalid log level: %s (must be debug, info, warn or error)", apperrors.ErrConfigInvalid, c.Logging.Level)
	}

	if c.Pricing.Workers < 0 {
		return fmt.Errorf("%w: pricing.workers must be non-negative", apperrors.ErrConfigInvalid)
	}
	if c.Pricing.LadderStep <= 0 {
		return fmt.Errorf("%w: pricing.ladder_step must be positive", apperrors.ErrConfigInvalid)
	}
	if c.Pricing.LadderCount < 0 {
		return fmt.Errorf("%w: pricing.ladder_count must be non-negative", apperrors.ErrConfigInvalid)
	}

	if c.Store.Enabled && c.Store.Path == "" {
		return fmt.Errorf("%w: store.path is required when the store is enabled", apperrors.ErrConfigInvalid)
	}
	if c.Store.BatchSize <= 0 {
		return fmt.Errorf("%w: store.batch_size must be positive", apperrors.ErrConfigInvalid)
	}

	return nil
}

// DefaultInputs returns the configured fallback pricing inputs.
func (c *Config) DefaultInputs() models.PricingInputs {
	return models.PricingInputs{
		Spot:       c.Defaults.Spot,
		Strike:     c.Defaults.Strike,
		Rate:       c.Defaults.Rate,
		Expiry:     c.Defaults.Expiry,
		Volatility: c.Defaults.Volatility,
	}
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	v := viper.New()
	setDefaults(v, DefaultConfigDir())

	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}
