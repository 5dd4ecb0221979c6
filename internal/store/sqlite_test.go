package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "option-pricer/internal/errors"
	"option-pricer/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "quotes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func quoteAt(strike float64, at time.Time) models.OptionQuote {
	return models.OptionQuote{
		Inputs:    models.DemoInputs().WithStrike(strike),
		Call:      10 + strike/100,
		Put:       5 + strike/100,
		ParityGap: 1e-12,
		PricedAt:  at,
	}
}

func TestSaveAndReadQuotes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	quotes := []models.OptionQuote{
		quoteAt(90, base),
		quoteAt(100, base.Add(time.Minute)),
		quoteAt(110, base.Add(2*time.Minute)),
	}
	require.NoError(t, s.SaveQuotes(ctx, quotes))

	got, err := s.RecentQuotes(ctx, models.QuoteFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest first.
	assert.Equal(t, 110.0, got[0].Inputs.Strike)
	assert.Equal(t, 90.0, got[2].Inputs.Strike)
	assert.InDelta(t, quotes[2].Call, got[0].Call, 1e-12)
	assert.InDelta(t, quotes[2].Put, got[0].Put, 1e-12)
	assert.True(t, got[0].PricedAt.Equal(quotes[2].PricedAt))
	assert.NotZero(t, got[0].ID)
}

func TestRecentQuotesFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveQuotes(ctx, []models.OptionQuote{quoteAt(float64(100+i), base.Add(time.Duration(i)*time.Hour))}))
	}

	got, err := s.RecentQuotes(ctx, models.QuoteFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 104.0, got[0].Inputs.Strike)

	got, err = s.RecentQuotes(ctx, models.QuoteFilter{Since: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestRecentQuotesSinceIgnoresZone(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tokyo := time.FixedZone("JST", 9*60*60)
	newYork := time.FixedZone("EST", -5*60*60)
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	zones := []*time.Location{time.UTC, tokyo, newYork, tokyo, newYork}
	for i, loc := range zones {
		at := base.Add(time.Duration(i) * time.Hour).In(loc)
		require.NoError(t, s.SaveQuotes(ctx, []models.OptionQuote{quoteAt(float64(100+i), at)}))
	}

	for _, loc := range []*time.Location{time.UTC, tokyo, newYork} {
		got, err := s.RecentQuotes(ctx, models.QuoteFilter{Since: base.Add(3 * time.Hour).In(loc)})
		require.NoError(t, err)
		require.Len(t, got, 2, loc.String())
		assert.Equal(t, 104.0, got[0].Inputs.Strike)
		assert.Equal(t, 103.0, got[1].Inputs.Strike)
	}
}

func TestNonFiniteValuesRoundTripAsNaN(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	q := quoteAt(100, time.Now().UTC())
	q.Inputs.Volatility = 0
	q.Call = math.NaN()
	q.Put = math.Inf(1)
	q.ParityGap = math.NaN()
	require.NoError(t, s.SaveQuotes(ctx, []models.OptionQuote{q}))

	got, err := s.RecentQuotes(ctx, models.QuoteFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Inputs.Volatility)
	assert.True(t, math.IsNaN(got[0].Call))
	assert.True(t, math.IsNaN(got[0].Put))
}

func TestSaveQuotesEmpty(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.SaveQuotes(context.Background(), nil))
}

var _ QuoteStore = (*SQLiteStore)(nil)

func TestIsBusy(t *testing.T) {
	busy := sqlite3.Error{Code: sqlite3.ErrBusy}

	assert.True(t, IsBusy(busy))
	assert.True(t, IsBusy(apperrors.NewDataError("save_quotes", "failed to insert quote", busy)))
	assert.False(t, IsBusy(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.False(t, IsBusy(context.Canceled))
}
