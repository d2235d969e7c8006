package rating

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds a float64 amount to whole cents, half-up, and returns it as
// a decimal. Every premium goes through here.
//
// The explicit float64 conversion keeps x*100 from being fused into the
// addition, so results match a plain IEEE multiply-then-round on every
// architecture.
func Round2(x float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Floor(float64(x*100)+0.5) / 100)
}

// premiumOf is the rating formula evaluated in float64, left to right:
// (revenue / 1000) * stateRate * businessMultiplier. Quote consumers
// recompute premiums this way, so the service must round the same product.
func premiumOf(revenue float64, stateRate, multiplier decimal.Decimal) decimal.Decimal {
	return Round2(revenue / 1000 * stateRate.InexactFloat64() * multiplier.InexactFloat64())
}
