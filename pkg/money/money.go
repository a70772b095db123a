package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds a currency amount to two decimal places using half-up
// semantics on the minor unit. Every EMI, interest and balance figure in the
// system goes through this one routine so that the schedule recursion stays
// reproducible.
func Round2(value float64) float64 {
	d := decimal.NewFromFloat(value).Mul(hundred).Round(0).Div(hundred)
	f, _ := d.Float64()
	return f
}

// Cents returns the amount expressed in minor units, rounded half-up.
func Cents(value float64) int64 {
	return decimal.NewFromFloat(value).Mul(hundred).Round(0).IntPart()
}
