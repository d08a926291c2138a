package request

import "github.com/shopspring/decimal"

// CreateTransferRequest moves quantity from a holding to the same asset's
// holding in another portfolio.
type CreateTransferRequest struct {
	HoldingID              string           `json:"holdingId"`
	DestinationPortfolioID string           `json:"destinationPortfolioId"`
	PlatformID             string           `json:"platformId"`
	Quantity               decimal.Decimal  `json:"quantity"`
	Date                   string           `json:"date"`
	Currency               string           `json:"currency"`
	ExchangeRate           *decimal.Decimal `json:"exchangeRate,omitempty"`
}
