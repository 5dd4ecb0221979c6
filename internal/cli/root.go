// Package cli provides the command-line interface for the option pricer.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"option-pricer/internal/config"
	"option-pricer/internal/logging"
	"option-pricer/internal/pricing"
	"option-pricer/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-19"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Store     store.QuoteStore
	Validator *pricing.Validator
}

// NewLogger builds the application logger from configuration.
func NewLogger(cfg *config.Config) zerolog.Logger {
	return logging.NewLoggerWithConfig(logging.LogConfig{
		Level:      cfg.Logging.Level,
		Console:    cfg.Logging.Console,
		File:       cfg.Logging.File,
		FilePath:   cfg.Logging.FilePath,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Color:      cfg.UI.ColorEnabled,
	})
}

func newApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{
		Config:    cfg,
		Logger:    logger,
		Validator: pricing.NewValidator(cfg.Pricing.StrictValidation),
	}
}

// Execute runs the CLI and closes the quote journal however the command ends.
func Execute(cfg *config.Config, logger zerolog.Logger) error {
	app := newApp(cfg, logger)
	return app.run(newRootCmd(app))
}

// NewRootCmd creates the root command for the CLI. Run without a subcommand
// it prints the demonstration prices.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	return newRootCmd(newApp(cfg, logger))
}

func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "option-pricer",
		Short: "Black-Scholes European option pricer",
		Long: `Option Pricer computes closed-form European call and put prices under the
Black-Scholes model.

Run without a command to print the demonstration prices.
Use 'option-pricer help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, app)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/option-pricer)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addPricingCommands(rootCmd, app)

	return rootCmd
}

// setup resolves --config, --debug and the quote journal before a command runs.
func (app *App) setup(cmd *cobra.Command) error {
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}
		app.Config = cfg
		app.Logger = NewLogger(cfg)
		app.Validator = pricing.NewValidator(cfg.Pricing.StrictValidation)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		app.Logger = app.Logger.Level(zerolog.DebugLevel)
	}

	cmd.SetContext(logging.WithLogger(commandContext(cmd), app.Logger))

	if app.Config.Store.Enabled && app.Store == nil {
		dataStore, err := store.NewSQLiteStore(app.Config.Store.Path)
		if err != nil {
			app.Logger.Warn().Err(err).Str("path", app.Config.Store.Path).Msg("Failed to open quote journal, quotes will not be saved")
		} else {
			app.Store = dataStore
			app.Logger.Debug().Str("path", app.Config.Store.Path).Msg("Quote journal opened")
		}
	}

	return nil
}

// run executes cmd. PersistentPostRunE is skipped when a command fails, so
// the journal is also closed here.
func (app *App) run(cmd *cobra.Command) error {
	err := cmd.Execute()
	if closeErr := app.teardown(); closeErr != nil {
		app.Logger.Warn().Err(closeErr).Msg("Failed to close quote journal")
	}
	return err
}

func (app *App) teardown() error {
	if app.Store == nil {
		return nil
	}
	err := app.Store.Close()
	app.Store = nil
	return err
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Option Pricer v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			dir, _ := cmd.Flags().GetString("config")
			if dir == "" {
				dir = config.DefaultConfigDir()
			}
			if output.IsJSON() {
				output.JSON(map[string]string{"path": dir})
			} else {
				output.Println(dir)
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Default Inputs")
	output.Printf("  Spot:        %s\n", FormatPrice(cfg.Defaults.Spot))
	output.Printf("  Strike:      %s\n", FormatPrice(cfg.Defaults.Strike))
	output.Printf("  Rate:        %s\n", FormatRate(cfg.Defaults.Rate))
	output.Printf("  Expiry:      %s\n", FormatYears(cfg.Defaults.Expiry))
	output.Printf("  Volatility:  %s\n", FormatRate(cfg.Defaults.Volatility))
	output.Println()

	output.Bold("Pricing")
	output.Printf("  Strict validation: %v\n", cfg.Pricing.StrictValidation)
	output.Printf("  Workers:           %d\n", cfg.Pricing.Workers)
	output.Printf("  Ladder:            %d strikes each side, step %s\n", cfg.Pricing.LadderCount, FormatPrice(cfg.Pricing.LadderStep))
	output.Println()

	output.Bold("Quote Journal")
	output.Printf("  Enabled:     %v\n", cfg.Store.Enabled)
	output.Printf("  Path:        %s\n", cfg.Store.Path)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:       %s\n", cfg.Logging.Level)
	output.Printf("  File:        %v (%s)\n", cfg.Logging.File, cfg.Logging.FilePath)
}
