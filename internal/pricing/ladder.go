package pricing

import (
	"context"
	"sync"

	apperrors "option-pricer/internal/errors"
	"option-pricer/internal/models"
	"option-pricer/internal/performance"
)

// StrikeGrid returns count strikes either side of center spaced by step,
// in ascending order. Non-positive strikes are dropped.
func StrikeGrid(center, step float64, count int) []float64 {
	if count < 0 {
		count = 0
	}
	strikes := make([]float64, 0, 2*count+1)
	for i := -count; i <= count; i++ {
		k := center + float64(i)*step
		if k <= 0 {
			continue
		}
		strikes = append(strikes, k)
	}
	return strikes
}

// Ladder prices one quote per strike on the worker pool. Quotes come back in
// the order of strikes. The pool must already be started.
func Ladder(ctx context.Context, base models.PricingInputs, strikes []float64, pool *performance.WorkerPool) (*models.StrikeLadder, error) {
	quotes := make([]models.OptionQuote, len(strikes))

	var wg sync.WaitGroup
	for i, k := range strikes {
		i, k := i, k
		wg.Add(1)
		err := pool.SubmitContext(ctx, func() {
			defer wg.Done()
			quotes[i] = Price(base.WithStrike(k))
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, apperrors.Wrapf(err, "pricing strike %v", k)
		}
	}
	wg.Wait()

	return &models.StrikeLadder{Base: base, Quotes: quotes}, nil
}
