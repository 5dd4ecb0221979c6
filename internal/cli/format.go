package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// nonFinite renders NaN and infinities, which decimal cannot represent.
func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "+Inf", true
	case math.IsInf(v, -1):
		return "-Inf", true
	}
	return "", false
}

// FormatPrice formats an option or underlying price: 2 places from 10 upward,
// 4 below.
func FormatPrice(price float64) string {
	if s, ok := nonFinite(price); ok {
		return s
	}
	places := int32(4)
	if math.Abs(price) >= 10 {
		places = 2
	}
	return decimal.NewFromFloat(price).StringFixed(places)
}

// FormatRate formats a decimal rate or volatility as a percentage.
func FormatRate(rate float64) string {
	if s, ok := nonFinite(rate); ok {
		return s
	}
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

// FormatYears formats a time to expiry in years with its day equivalent.
func FormatYears(years float64) string {
	if s, ok := nonFinite(years); ok {
		return s
	}
	days := decimal.NewFromFloat(years).Mul(decimal.NewFromInt(365)).Round(0)
	return fmt.Sprintf("%sy (%sd)", decimal.NewFromFloat(years).StringFixed(4), days.String())
}

// FormatGap formats a parity gap in scientific notation.
func FormatGap(gap float64) string {
	if s, ok := nonFinite(gap); ok {
		return s
	}
	return fmt.Sprintf("%+.2e", gap)
}

// FormatDateTime formats a journal timestamp in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format("02-Jan-2006 15:04:05")
}
