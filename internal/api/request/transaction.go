package request

import "github.com/shopspring/decimal"

// CreateBuyRequest records a purchase against a (asset, portfolio) pair.
type CreateBuyRequest struct {
	PlatformID   string           `json:"platformId"`
	AssetID      string           `json:"assetId"`
	PortfolioID  string           `json:"portfolioId"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Price        decimal.Decimal  `json:"price"`
	Date         string           `json:"date"`
	Currency     string           `json:"currency"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
}

// CreateSellRequest records a sale from an existing holding.
type CreateSellRequest struct {
	PlatformID   string           `json:"platformId"`
	HoldingID    string           `json:"holdingId"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Price        decimal.Decimal  `json:"price"`
	Date         string           `json:"date"`
	Currency     string           `json:"currency"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
}

// UpdateTransactionRequest edits an existing transaction. All fields are
// optional; absent fields are left unchanged.
type UpdateTransactionRequest struct {
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	PlatformID  *string          `json:"platformId,omitempty"`
	PortfolioID *string          `json:"portfolioId,omitempty"`
	Date        *string          `json:"date,omitempty"`
}
