package expression

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept by Format and Round.
const Places = 2

// Format renders v rounded half away from zero to two decimal places, with
// trailing zeros removed and no exponent: 4, 2.5, 2.71, -99999980000001.
// Non-finite values are rendered as +Inf, -Inf or NaN.
func Format(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(Places).String()
}

// Round returns v rounded the same way Format rounds it.
func Round(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	r, _ := decimal.NewFromFloat(v).Round(Places).Float64()
	return r
}
