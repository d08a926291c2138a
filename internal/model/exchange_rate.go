package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a stored conversion rate for one currency pair on one date.
// Rates are metadata stamped onto transaction legs; the ledger never converts
// aggregate totals between currencies.
type ExchangeRate struct {
	ID           string          `json:"id"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Date         time.Time       `json:"date"`
}
