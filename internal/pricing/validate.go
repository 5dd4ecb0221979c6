package pricing

import (
	"math"

	apperrors "option-pricer/internal/errors"
	"option-pricer/internal/models"
)

// Validator applies the optional strict input contract. The pricing
// functions never call it; callers opt in.
type Validator struct {
	strictMode bool
}

// NewValidator creates a validator. A non-strict validator accepts everything.
func NewValidator(strictMode bool) *Validator {
	return &Validator{strictMode: strictMode}
}

// Validate returns the first rejected field, or nil.
func (v *Validator) Validate(in models.PricingInputs) error {
	if !v.strictMode {
		return nil
	}
	return ValidateInputs(in)
}

// ValidateInputs rejects inputs outside the domain where the formulas are defined:
// spot, strike, expiry and volatility must be finite and positive, rate finite.
func ValidateInputs(in models.PricingInputs) error {
	positive := []struct {
		field string
		value float64
	}{
		{"spot", in.Spot},
		{"strike", in.Strike},
		{"expiry", in.Expiry},
		{"volatility", in.Volatility},
	}

	for _, p := range positive {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return apperrors.NewValidationError(p.field, p.value, "must be finite")
		}
		if p.value <= 0 {
			return apperrors.NewValidationError(p.field, p.value, "must be positive")
		}
	}

	if math.IsNaN(in.Rate) || math.IsInf(in.Rate, 0) {
		return apperrors.NewValidationError("rate", in.Rate, "must be finite")
	}

	return nil
}
