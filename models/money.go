package models

import "github.com/shopspring/decimal"

// Sum adds amounts with decimal arithmetic so two-decimal inputs do not drift.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func ratio(part, whole float64) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole)).Mul(decimal.NewFromInt(100))
}

// Percent returns part/whole*100 rounded to two places, or 0 when whole is 0.
func Percent(part, whole float64) float64 {
	return ratio(part, whole).Round(2).InexactFloat64()
}

// Ratio is Percent without the rounding, for threshold comparisons.
func Ratio(part, whole float64) float64 {
	return ratio(part, whole).InexactFloat64()
}

// Accumulator is a running decimal total.
type Accumulator struct {
	total decimal.Decimal
}

func (a *Accumulator) Add(v float64) {
	a.total = a.total.Add(decimal.NewFromFloat(v))
}

func (a *Accumulator) Value() float64 {
	return a.total.InexactFloat64()
}
