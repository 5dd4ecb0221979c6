package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"option-pricer/internal/logging"
	"option-pricer/internal/models"
	"option-pricer/internal/performance"
	"option-pricer/internal/pricing"
	"option-pricer/internal/store"
	"option-pricer/pkg/utils"
)

// addPricingCommands adds the pricing commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newDemoCmd(app))
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newParityCmd(app))
	rootCmd.AddCommand(newLadderCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
}

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print prices for the illustrative contract",
		Long:  "Prices a call and a put with s=100, k=100, r=0.05, t=1.0, sigma=0.2.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, app)
		},
	}
}

func runDemo(cmd *cobra.Command, app *App) error {
	quote := pricing.Price(models.DemoInputs())
	logging.LogQuote(app.Logger, quote)

	output := NewOutput(cmd, app.Config.UI.ColorEnabled)
	if output.IsJSON() {
		return output.JSON(quote)
	}

	output.Printf("European Call Option Price: %v\n", quote.Call)
	output.Printf("European Put Option Price: %v\n", quote.Put)
	return nil
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a European call and put",
		Long: `Price a European call and put under Black-Scholes.

Omitted inputs fall back to the [defaults] section of config.toml.
Without --strict (or pricing.strict_validation) invalid inputs yield NaN or Inf.`,
		Example: `  option-pricer price --spot 105 --strike 100 --vol 0.25
  option-pricer price --expiry 0.25 --rate 0.03 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			in, err := app.readInputs(cmd)
			if err != nil {
				output.Error("Invalid input: %v", err)
				return err
			}

			quote := pricing.Price(in)
			logging.LogQuote(app.Logger, quote)
			app.journal(commandContext(cmd), []models.OptionQuote{quote})

			if output.IsJSON() {
				return output.JSON(quote)
			}

			displayInputs(output, in)
			output.Printf("  Call:        %s\n", output.BoldText(FormatPrice(quote.Call)))
			output.Printf("  Put:         %s\n", output.BoldText(FormatPrice(quote.Put)))
			return nil
		},
	}

	addInputFlags(cmd, app.Config.DefaultInputs())
	return cmd
}

func newParityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parity",
		Short: "Check put-call parity for a contract",
		Long:  "Compares call - put against spot - strike*exp(-rate*expiry).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			in, err := app.readInputs(cmd)
			if err != nil {
				output.Error("Invalid input: %v", err)
				return err
			}

			quote := pricing.Price(in)
			logging.LogQuote(app.Logger, quote)
			forward := in.Spot - pricing.DiscountedStrike(in)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"quote":          quote,
					"call_minus_put": models.FiniteOrNil(quote.Call - quote.Put),
					"forward_value":  models.FiniteOrNil(forward),
				})
			}

			displayInputs(output, in)
			output.Printf("  Call - Put:         %s\n", FormatPrice(quote.Call-quote.Put))
			output.Printf("  S - K*exp(-rT):     %s\n", FormatPrice(forward))
			output.Printf("  Gap:                %s\n", output.GapText(quote.ParityGap, 1e-6))
			return nil
		},
	}

	addInputFlags(cmd, app.Config.DefaultInputs())
	return cmd
}

func newLadderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ladder",
		Short: "Price a ladder of strikes around --strike",
		Example: `  option-pricer ladder --spot 100 --strike 100 --step 5 --count 4
  option-pricer ladder --vol 0.35 --workers 8 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)
			ctx := commandContext(cmd)

			in, err := app.readInputs(cmd)
			if err != nil {
				output.Error("Invalid input: %v", err)
				return err
			}

			step, count, workers := app.ladderSettings(cmd)
			if step <= 0 {
				return fmt.Errorf("--step must be positive")
			}

			pool := performance.NewWorkerPool(workers)
			pool.Start()
			defer pool.Stop()

			start := time.Now()
			ladder, err := pricing.Ladder(ctx, in, pricing.StrikeGrid(in.Strike, step, count), pool)
			if err != nil {
				output.Error("Failed to price ladder: %v", err)
				return err
			}
			logger := logging.WithOperation(logging.FromContext(ctx), "ladder")
			logger.Debug().
				Int("strikes", len(ladder.Quotes)).
				Dur("duration", time.Since(start)).
				Interface("pool", pool.Stats()).
				Msg("Ladder priced")

			app.journal(ctx, ladder.Quotes)

			if output.IsJSON() {
				return output.JSON(ladder)
			}

			displayInputs(output, in)
			table := NewTable(output, "Strike", "Call", "Put", "Parity Gap")
			for _, q := range ladder.Quotes {
				strike := FormatPrice(q.Inputs.Strike)
				if q.Inputs.Strike == in.Strike {
					strike = output.BoldText(strike)
				}
				table.AddRow(strike, FormatPrice(q.Call), FormatPrice(q.Put), FormatGap(q.ParityGap))
			}
			table.Render()
			return nil
		},
	}

	addInputFlags(cmd, app.Config.DefaultInputs())
	cmd.Flags().Float64("step", app.Config.Pricing.LadderStep, "strike spacing")
	cmd.Flags().Int("count", app.Config.Pricing.LadderCount, "strikes either side of --strike")
	cmd.Flags().Int("workers", app.Config.Pricing.Workers, "pricing workers (0 = number of CPUs)")
	return cmd
}

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently journaled quotes",
		Long:  "Show quotes saved to the SQLite journal. Requires store.enabled = true.",
		Example: `  option-pricer history --limit 10
  option-pricer history --since 24h --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd, app.Config.UI.ColorEnabled)

			if app.Store == nil {
				output.Error("Quote journal not available. Set store.enabled = true in config.toml.")
				return fmt.Errorf("quote journal not configured")
			}

			limit, _ := cmd.Flags().GetInt("limit")
			since, _ := cmd.Flags().GetDuration("since")

			filter := models.QuoteFilter{Limit: limit}
			if since > 0 {
				filter.Since = time.Now().Add(-since).UTC()
			}

			quotes, err := app.Store.RecentQuotes(commandContext(cmd), filter)
			if err != nil {
				output.Error("Failed to read journal: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(quotes)
			}

			if len(quotes) == 0 {
				output.Dim("No quotes journaled yet")
				return nil
			}

			table := NewTable(output, "Priced At", "Spot", "Strike", "Rate", "Expiry", "Vol", "Call", "Put")
			for _, q := range quotes {
				in := q.Inputs
				table.AddRow(FormatDateTime(q.PricedAt), FormatPrice(in.Spot), FormatPrice(in.Strike),
					FormatRate(in.Rate), FormatYears(in.Expiry), FormatRate(in.Volatility),
					FormatPrice(q.Call), FormatPrice(q.Put))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum quotes to show")
	cmd.Flags().Duration("since", 0, "only show quotes newer than this (e.g. 24h)")
	return cmd
}

// addInputFlags registers the pricing input flags with defaults shown in help.
func addInputFlags(cmd *cobra.Command, defaults models.PricingInputs) {
	cmd.Flags().Float64("spot", defaults.Spot, "current price of the underlying")
	cmd.Flags().Float64("strike", defaults.Strike, "strike price")
	cmd.Flags().Float64("rate", defaults.Rate, "continuously-compounded risk-free rate")
	cmd.Flags().Float64("expiry", defaults.Expiry, "time to expiry in years")
	cmd.Flags().Float64("vol", defaults.Volatility, "annualized volatility")
	cmd.Flags().Bool("strict", false, "reject non-positive inputs instead of returning NaN")
}

// ladderSettings returns --step, --count and --workers, falling back to the
// [pricing] section of the loaded configuration for flags left unset.
func (app *App) ladderSettings(cmd *cobra.Command) (float64, int, int) {
	step := app.Config.Pricing.LadderStep
	count := app.Config.Pricing.LadderCount
	workers := app.Config.Pricing.Workers

	if cmd.Flags().Changed("step") {
		step, _ = cmd.Flags().GetFloat64("step")
	}
	if cmd.Flags().Changed("count") {
		count, _ = cmd.Flags().GetInt("count")
	}
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}
	return step, count, workers
}

// readInputs merges changed flags over the configured defaults and applies
// strict validation when enabled.
func (app *App) readInputs(cmd *cobra.Command) (models.PricingInputs, error) {
	in := app.Config.DefaultInputs()

	fields := []struct {
		flag string
		dst  *float64
	}{
		{"spot", &in.Spot},
		{"strike", &in.Strike},
		{"rate", &in.Rate},
		{"expiry", &in.Expiry},
		{"vol", &in.Volatility},
	}
	for _, f := range fields {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, err := cmd.Flags().GetFloat64(f.flag)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}

	validator := app.Validator
	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		validator = pricing.NewValidator(true)
	}
	if err := validator.Validate(in); err != nil {
		return in, err
	}

	return in, nil
}

// journal saves quotes when the journal is open, retrying while SQLite is
// busy. Failures are logged, not returned: pricing output does not depend on
// persistence.
func (app *App) journal(ctx context.Context, quotes []models.OptionQuote) {
	if app.Store == nil || len(quotes) == 0 {
		return
	}

	retry := utils.DefaultRetryConfig()
	retry.Retryable = store.IsBusy

	start := time.Now()
	batch := performance.NewBatchProcessor(app.Config.Store.BatchSize, func(b []models.OptionQuote) error {
		return utils.Retry(ctx, retry, func() error {
			return app.Store.SaveQuotes(ctx, b)
		})
	})

	var err error
	for _, q := range quotes {
		if err = batch.Add(q); err != nil {
			break
		}
	}
	if err == nil {
		err = batch.Flush()
	}

	logger := logging.WithOperation(app.Logger, "journal")
	logging.LogStoreWrite(logger, len(quotes), time.Since(start), err)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to journal quotes")
	}
}

func displayInputs(output *Output, in models.PricingInputs) {
	output.Bold("European Option (Black-Scholes)")
	output.Printf("  Spot:        %s\n", FormatPrice(in.Spot))
	output.Printf("  Strike:      %s\n", FormatPrice(in.Strike))
	output.Printf("  Rate:        %s\n", FormatRate(in.Rate))
	output.Printf("  Expiry:      %s\n", FormatYears(in.Expiry))
	output.Printf("  Volatility:  %s\n", FormatRate(in.Volatility))
	output.Println()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
