package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newProperties(t *testing.T) *gopter.Properties {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())
	return gopter.NewProperties(parameters)
}

// erf is exactly odd because the sign is split off before evaluation.
func TestProperty_ErfOddSymmetry(t *testing.T) {
	properties := newProperties(t)

	properties.Property("erf(-x) == -erf(x)", prop.ForAll(
		func(x float64) bool {
			return erf(-x) == -erf(x)
		},
		gen.Float64Range(-10, 10),
	))

	properties.TestingRun(t)
}

func TestProperty_NormCDFIsAProbability(t *testing.T) {
	properties := newProperties(t)

	properties.Property("0 <= N(x) <= 1 and N(x) + N(-x) == 1", prop.ForAll(
		func(x float64) bool {
			p := normCDF(x)
			return p >= 0 && p <= 1 && math.Abs(p+normCDF(-x)-1) < 1e-15
		},
		gen.Float64Range(-40, 40),
	))

	properties.TestingRun(t)
}

func TestProperty_PutCallParity(t *testing.T) {
	properties := newProperties(t)

	properties.Property("call - put == s - k*exp(-r*t)", prop.ForAll(
		func(s, k, r, tt, vol float64) bool {
			call := CallOptionPrice(s, k, r, tt, vol)
			put := PutOptionPrice(s, k, r, tt, vol)
			return math.Abs((call-put)-(s-k*math.Exp(-r*tt))) < 1e-6
		},
		gen.Float64Range(1, 1000),
		gen.Float64Range(1, 1000),
		gen.Float64Range(-0.02, 0.15),
		gen.Float64Range(0.01, 5),
		gen.Float64Range(0.01, 1.5),
	))

	properties.TestingRun(t)
}

func TestProperty_CallMonotonicity(t *testing.T) {
	properties := newProperties(t)
	// Tolerance absorbs the erf approximation error scaled by spot.
	const k, r, tol = 100.0, 0.05, 1e-4

	properties.Property("call is non-decreasing in spot", prop.ForAll(
		func(s, bump, tt, vol float64) bool {
			lo := CallOptionPrice(s, k, r, tt, vol)
			hi := CallOptionPrice(s*(1+bump), k, r, tt, vol)
			return hi >= lo-tol
		},
		gen.Float64Range(50, 150),
		gen.Float64Range(0.01, 0.5),
		gen.Float64Range(0.1, 2),
		gen.Float64Range(0.1, 0.6),
	))

	properties.Property("call is non-decreasing in volatility", prop.ForAll(
		func(s, tt, vol, bump float64) bool {
			lo := CallOptionPrice(s, k, r, tt, vol)
			hi := CallOptionPrice(s, k, r, tt, vol+bump)
			return hi >= lo-tol
		},
		gen.Float64Range(50, 150),
		gen.Float64Range(0.1, 2),
		gen.Float64Range(0.1, 0.6),
		gen.Float64Range(0.01, 0.3),
	))

	properties.Property("prices are bounded by no-arbitrage limits", prop.ForAll(
		func(s, tt, vol float64) bool {
			call := CallOptionPrice(s, k, r, tt, vol)
			put := PutOptionPrice(s, k, r, tt, vol)
			disc := k * math.Exp(-r*tt)
			return call >= math.Max(0, s-disc)-tol && call <= s+tol &&
				put >= math.Max(0, disc-s)-tol && put <= disc+tol
		},
		gen.Float64Range(50, 150),
		gen.Float64Range(0.1, 2),
		gen.Float64Range(0.1, 0.6),
	))

	properties.TestingRun(t)
}
