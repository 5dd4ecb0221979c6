// Package models defines the data types shared across the pricer.
package models

import "time"

// PricingInputs holds the Black-Scholes parameters for a single contract.
type PricingInputs struct {
	Spot       float64 `json:"spot"`
	Strike     float64 `json:"strike"`
	Rate       float64 `json:"rate"`
	Expiry     float64 `json:"expiry"` // years
	Volatility float64 `json:"volatility"`
}

// DemoInputs returns the illustrative parameter set printed by the demo command.
func DemoInputs() PricingInputs {
	return PricingInputs{
		Spot:       100,
		Strike:     100,
		Rate:       0.05,
		Expiry:     1.0,
		Volatility: 0.2,
	}
}

// WithStrike returns a copy of the inputs with a different strike.
func (in PricingInputs) WithStrike(strike float64) PricingInputs {
	in.Strike = strike
	return in
}

// OptionQuote is a priced call/put pair for one set of inputs.
type OptionQuote struct {
	ID        int64         `json:"id,omitempty"`
	Inputs    PricingInputs `json:"inputs"`
	Call      float64       `json:"call"`
	Put       float64       `json:"put"`
	ParityGap float64       `json:"parity_gap"` // call - put - (spot - discounted strike)
	PricedAt  time.Time     `json:"priced_at"`
}

// StrikeLadder is a set of quotes sharing everything but the strike.
type StrikeLadder struct {
	Base   PricingInputs `json:"base"`
	Quotes []OptionQuote `json:"quotes"`
}

// QuoteFilter narrows journal queries.
type QuoteFilter struct {
	Since time.Time
	Limit int
}
