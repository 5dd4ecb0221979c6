// Package store provides persistence for priced quotes.
package store

import (
	"context"

	"option-pricer/internal/models"
)

// QuoteStore defines the interface for the quote journal.
type QuoteStore interface {
	SaveQuotes(ctx context.Context, quotes []models.OptionQuote) error
	RecentQuotes(ctx context.Context, filter models.QuoteFilter) ([]models.OptionQuote, error)
	Close() error
}
