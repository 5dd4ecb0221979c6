package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Option Pricer Configuration

[defaults]
# Inputs used when a pricing flag is omitted
spot = 100.0
strike = 100.0
# Continuously-compounded risk-free rate
rate = 0.05
# Time to expiry in years
expiry = 1.0
# Annualized volatility
volatility = 0.2

[pricing]
# Reject non-positive spot, strike, expiry or volatility instead of returning NaN
strict_validation = false
# Ladder worker count (0 = number of CPUs)
workers = 0
# Strike spacing and strikes either side of the centre for 'ladder'
ladder_step = 5.0
ladder_count = 5

[store]
# Journal priced quotes to SQLite
enabled = false
# path = "/home/you/.config/option-pricer/quotes.db"
batch_size = 50

[logging]
# Level: debug, info, warn, error
level = "info"
console = true
file = false
# file_path = "/home/you/.config/option-pricer/logs/pricer.log"
max_size = 100
max_backups = 7
max_age = 30

[ui]
color_enabled = true
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
