// Package currency converts amounts between the supported currencies.
package currency

import (
	"time"

	"github.com/UmangSachdeva/BudgetX/models"
)

// RateProvider supplies exchange rates. A live feed can replace StaticRates
// without touching the conversion rules in Converter.
type RateProvider interface {
	Rate(from, to models.Currency) (float64, bool)
	UpdatedAt() time.Time
}

type pair struct {
	from, to models.Currency
}

// StaticRates is a fixed rate table.
type StaticRates struct {
	rates     map[pair]float64
	updatedAt time.Time
}

func NewStaticRates(updatedAt time.Time) *StaticRates {
	return &StaticRates{rates: make(map[pair]float64), updatedAt: updatedAt}
}

// DefaultRates is the reference table used by the service.
func DefaultRates() *StaticRates {
	return NewStaticRates(time.Now().UTC()).
		Set(models.USD, models.INR, 83.12).
		Set(models.INR, models.USD, 0.012)
}

func (s *StaticRates) Set(from, to models.Currency, rate float64) *StaticRates {
	s.rates[pair{from, to}] = rate
	return s
}

func (s *StaticRates) Rate(from, to models.Currency) (float64, bool) {
	r, ok := s.rates[pair{from, to}]
	return r, ok
}

func (s *StaticRates) UpdatedAt() time.Time {
	return s.updatedAt
}

type Converter struct {
	provider RateProvider
	base     models.Currency
}

func NewConverter(provider RateProvider, base models.Currency) *Converter {
	return &Converter{provider: provider, base: base.OrDefault()}
}

func (c *Converter) Base() models.Currency {
	return c.base
}

// Rate returns the multiplier from one currency to another. Pairs without a
// direct rate go through the base currency. When no rate can be found the
// multiplier is 1.0 so callers get an approximate amount instead of an error.
func (c *Converter) Rate(from, to models.Currency) float64 {
	if from == to {
		return 1.0
	}
	if r, ok := c.provider.Rate(from, to); ok {
		return r
	}
	toBase, ok1 := c.baseLeg(from, c.base)
	fromBase, ok2 := c.baseLeg(c.base, to)
	if ok1 && ok2 {
		return toBase * fromBase
	}
	return 1.0
}

func (c *Converter) baseLeg(from, to models.Currency) (float64, bool) {
	if from == to {
		return 1.0, true
	}
	return c.provider.Rate(from, to)
}

// Convert returns amount expressed in the target currency, rounded to 2 places.
func (c *Converter) Convert(amount float64, from, to models.Currency) float64 {
	if from == to {
		return amount
	}
	return models.Round2(amount * c.Rate(from, to))
}

func (c *Converter) Rates() models.RatesSnapshot {
	return models.RatesSnapshot{
		USDToINR:     c.Rate(models.USD, models.INR),
		INRToUSD:     c.Rate(models.INR, models.USD),
		BaseCurrency: c.base,
		LastUpdated:  c.provider.UpdatedAt(),
	}
}

func (c *Converter) Quote(amount float64, from, to models.Currency) models.ConversionResult {
	return models.ConversionResult{
		OriginalAmount:  amount,
		FromCurrency:    from,
		ToCurrency:      to,
		ConvertedAmount: c.Convert(amount, from, to),
		Rate:            c.Rate(from, to),
	}
}
