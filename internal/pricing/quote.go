package pricing

import (
	"math"
	"time"

	"option-pricer/internal/models"
)

// Price evaluates both formulas for in. Like the underlying functions it
// performs no validation; invalid inputs surface as NaN or ±Inf fields.
func Price(in models.PricingInputs) models.OptionQuote {
	call := CallOptionPrice(in.Spot, in.Strike, in.Rate, in.Expiry, in.Volatility)
	put := PutOptionPrice(in.Spot, in.Strike, in.Rate, in.Expiry, in.Volatility)

	return models.OptionQuote{
		Inputs:    in,
		Call:      call,
		Put:       put,
		ParityGap: call - put - (in.Spot - DiscountedStrike(in)),
		PricedAt:  time.Now().UTC(),
	}
}

// DiscountedStrike returns k*exp(-r*t).
func DiscountedStrike(in models.PricingInputs) float64 {
	return in.Strike * math.Exp(-in.Rate*in.Expiry)
}
