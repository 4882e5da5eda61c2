package calculator

import "github.com/shopspring/decimal"

// Round2 rounds to 2 decimal places, half away from zero. This is the
// single rounding rule for every percentage and statistic the engine
// reports; renderers must not re-round.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
