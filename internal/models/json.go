package models

import (
	"encoding/json"
	"math"
	"time"
)

// FiniteOrNil returns nil for NaN and ±Inf so they encode as JSON null.
func FiniteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// MarshalJSON encodes non-finite inputs as null.
func (in PricingInputs) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Spot       *float64 `json:"spot"`
		Strike     *float64 `json:"strike"`
		Rate       *float64 `json:"rate"`
		Expiry     *float64 `json:"expiry"`
		Volatility *float64 `json:"volatility"`
	}{
		Spot:       FiniteOrNil(in.Spot),
		Strike:     FiniteOrNil(in.Strike),
		Rate:       FiniteOrNil(in.Rate),
		Expiry:     FiniteOrNil(in.Expiry),
		Volatility: FiniteOrNil(in.Volatility),
	})
}

// MarshalJSON encodes non-finite prices as null.
func (q OptionQuote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        int64         `json:"id,omitempty"`
		Inputs    PricingInputs `json:"inputs"`
		Call      *float64      `json:"call"`
		Put       *float64      `json:"put"`
		ParityGap *float64      `json:"parity_gap"`
		PricedAt  time.Time     `json:"priced_at"`
	}{
		ID:        q.ID,
		Inputs:    q.Inputs,
		Call:      FiniteOrNil(q.Call),
		Put:       FiniteOrNil(q.Put),
		ParityGap: FiniteOrNil(q.ParityGap),
		PricedAt:  q.PricedAt,
	})
}
