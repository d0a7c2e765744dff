package models

import "time"

type Currency string

const (
	INR Currency = "INR"
	USD Currency = "USD"
)

var Currencies = []Currency{INR, USD}

func (c Currency) Valid() bool {
	return c == INR || c == USD
}

// OrDefault returns INR for an empty currency.
func (c Currency) OrDefault() Currency {
	if c == "" {
		return INR
	}
	return c
}

type RatesSnapshot struct {
	USDToINR     float64   `json:"USD_to_INR"`
	INRToUSD     float64   `json:"INR_to_USD"`
	BaseCurrency Currency  `json:"base_currency"`
	LastUpdated  time.Time `json:"last_updated"`
}

type ConversionRequest struct {
	Amount       float64  `json:"amount"`
	FromCurrency Currency `json:"from_currency"`
	ToCurrency   Currency `json:"to_currency"`
}

type ConversionResult struct {
	OriginalAmount  float64  `json:"original_amount"`
	FromCurrency    Currency `json:"from_currency"`
	ToCurrency      Currency `json:"to_currency"`
	ConvertedAmount float64  `json:"converted_amount"`
	Rate            float64  `json:"rate"`
}
