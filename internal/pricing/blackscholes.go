// Package pricing provides closed-form European option pricing under Black-Scholes.
package pricing

import "math"

// Abramowitz and Stegun 7.1.26 coefficients.
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// erf approximates the Gauss error function with absolute error below 1.5e-7.
func erf(x float64) float64 {
	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	x = math.Abs(x)

	t := 1.0 / (1.0 + erfP*x)
	y := 1.0 - (((((erfA5*t+erfA4)*t)+erfA3)*t+erfA2)*t+erfA1)*t*math.Exp(-x*x)

	return sign * y
}

// normCDF returns P(Z <= x) for a standard normal Z.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + erf(x/math.Sqrt2))
}

// d1d2 returns the standardized distances shared by the call and put formulas.
func d1d2(s, k, r, t, sigma float64) (float64, float64) {
	volSqrtT := sigma * math.Sqrt(t)
	d1 := (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / volSqrtT
	return d1, d1 - volSqrtT
}

// CallOptionPrice returns the Black-Scholes price of a European call.
//
// Parameters:
//   - s: current price of the underlying
//   - k: strike price
//   - r: continuously-compounded risk-free rate
//   - t: time to expiry in years
//   - sigma: annualized volatility
//
// Inputs are not checked. Non-positive s, t or sigma produce NaN or ±Inf,
// which propagate to the result unchanged.
func CallOptionPrice(s, k, r, t, sigma float64) float64 {
	d1, d2 := d1d2(s, k, r, t, sigma)
	return s*normCDF(d1) - k*math.Exp(-r*t)*normCDF(d2)
}

// PutOptionPrice returns the Black-Scholes price of a European put.
// It takes the same parameters as CallOptionPrice and shares its unchecked contract.
func PutOptionPrice(s, k, r, t, sigma float64) float64 {
	d1, d2 := d1d2(s, k, r, t, sigma)
	return k*math.Exp(-r*t)*normCDF(-d2) - s*normCDF(-d1)
}
