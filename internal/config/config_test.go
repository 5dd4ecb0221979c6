package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "option-pricer/internal/errors"
	"option-pricer/internal/models"
)

func TestLoadMissingFileWritesTemplateAndUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, models.DemoInputs(), cfg.DefaultInputs())
	assert.False(t, cfg.Pricing.StrictValidation)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(dir, "quotes.db"), cfg.Store.Path)
	assert.FileExists(t, filepath.Join(dir, "config.toml"))

	// The written template parses back to the same defaults.
	again, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.DefaultInputs(), again.DefaultInputs())
	assert.Equal(t, cfg.Pricing, again.Pricing)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[defaults]
spot = 120.0
volatility = 0.35

[pricing]
strict_validation = true
ladder_step = 2.5

[store]
enabled = true
path = "/tmp/journal.db"

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 120.0, cfg.Defaults.Spot)
	assert.Equal(t, 100.0, cfg.Defaults.Strike)
	assert.Equal(t, 0.35, cfg.Defaults.Volatility)
	assert.True(t, cfg.Pricing.StrictValidation)
	assert.Equal(t, 2.5, cfg.Pricing.LadderStep)
	assert.True(t, cfg.Store.Enabled)
	assert.Equal(t, "/tmp/journal.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PRICER_PRICING_STRICT_VALIDATION", "true")
	t.Setenv("PRICER_DEFAULTS_RATE", "0.03")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Pricing.StrictValidation)
	assert.Equal(t, 0.03, cfg.Defaults.Rate)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[logging]\nlevel = \"loud\"\n"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfigInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Pricing.Workers = -1 }},
		{"zero ladder step", func(c *Config) { c.Pricing.LadderStep = 0 }},
		{"negative ladder count", func(c *Config) { c.Pricing.LadderCount = -1 }},
		{"store without path", func(c *Config) { c.Store.Enabled = true; c.Store.Path = "" }},
		{"zero batch size", func(c *Config) { c.Store.BatchSize = 0 }},
	}

	require.NoError(t, Default().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), apperrors.ErrConfigInvalid)
		})
	}
}
